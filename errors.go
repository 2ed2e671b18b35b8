package gravatar

import "fmt"

// ConfigurationError reports a configuration mapping that cannot be applied.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return "gravatar: invalid configuration"
	}
	reason := e.Reason
	if reason == "" {
		reason = "invalid value"
	}
	return fmt.Sprintf("gravatar: %s: %s", reason, e.Key)
}

// Is enables errors.Is matching on ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	_, ok := target.(*ConfigurationError)
	return ok
}

// ErrConfiguration is the sentinel for configuration failures.
var ErrConfiguration = &ConfigurationError{}

func errNoSuchOption(key string) error {
	return &ConfigurationError{Key: key, Reason: "no such option"}
}

func errInvalidValue(key string, value any) error {
	return &ConfigurationError{Key: key, Reason: fmt.Sprintf("invalid value %T", value)}
}
