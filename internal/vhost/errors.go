package vhost

import "fmt"

// ConfigError is returned when a virtual host configuration file can not be
// parsed into a VirtualHostConfig or violates one of its fixed constraints.
type ConfigError struct {
	FilePath  string
	Directive string
	Message   string
}

func (e ConfigError) Error() string {
	if e.Directive != "" {
		return fmt.Sprintf("invalid config %s: directive %s: %s", e.FilePath, e.Directive, e.Message)
	}

	return fmt.Sprintf("invalid config %s: %s", e.FilePath, e.Message)
}

func newConfigError(filePath, directive, message string, args ...any) ConfigError {
	return ConfigError{
		FilePath:  filePath,
		Directive: directive,
		Message:   fmt.Sprintf(message, args...),
	}
}
