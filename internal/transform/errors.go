package transform

import "fmt"

// ConfigurationError reports a transformation parameter outside its
// documented range, for the parameters that are validated eagerly
// (dimensions, tolerance). Factor parameters are documented as unclamped
// and never produce this error.
type ConfigurationError struct {
	Param  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}
