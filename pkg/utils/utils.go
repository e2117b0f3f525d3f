package utils

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// RetryConfig configures retry behavior for operations
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryConfig returns sensible retry defaults
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// RetryWithBackoff executes a function with exponential backoff
func RetryWithBackoff(config *RetryConfig, operation func() error) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error
	delay := config.InitialDelay

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't sleep on the last attempt
		if attempt < config.MaxAttempts {
			time.Sleep(delay)

			delay = time.Duration(float64(delay) * config.Multiplier)
			if delay > config.MaxDelay {
				delay = config.MaxDelay
			}
		}
	}

	return errors.Wrapf(lastErr, "operation failed after %d attempts", config.MaxAttempts)
}

// FilterByPattern returns the names containing pattern as a substring,
// preserving input order. An empty pattern matches everything.
func FilterByPattern(names []string, pattern string) []string {
	if pattern == "" {
		return names
	}
	var result []string
	for _, name := range names {
		if strings.Contains(name, pattern) {
			result = append(result, name)
		}
	}
	return result
}
