package tax

import "fmt"

// ConfigurationError reports a tax or adjustment setting that cannot produce
// a finite, meaningful result.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("invalid tax configuration [%s]: %s", e.Field, e.Reason)
}
