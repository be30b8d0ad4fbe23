package metrics

import "fmt"

// InvalidWindowError reports a ComputeMetrics call with a window of
// less than one month. This is a contract violation, not a data gap,
// so it fails fast instead of defaulting.
type InvalidWindowError struct {
	Months int
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("analysis window must be at least 1 month, got %d", e.Months)
}
