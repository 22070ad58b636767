package config

import (
	"errors"
	"strings"

	"github.com/nibzard/tasker-go/internal/logging"
	"github.com/nibzard/tasker-go/internal/storage"
)

// Validate checks every value and returns the problems joined. Each problem
// is a *storage.ConfigurationError naming the key.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Kind(); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.StorageFile) == "" {
		errs = append(errs, &storage.ConfigurationError{Key: "storage_file", Value: c.StorageFile, Err: storage.ErrEmptyPath})
	}
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, &storage.ConfigurationError{Key: "log_level", Value: c.LogLevel, Err: ErrInvalidLogLevel})
	}
	if !logging.ValidFormat(c.LogFormat) {
		errs = append(errs, &storage.ConfigurationError{Key: "log_format", Value: c.LogFormat, Err: ErrInvalidLogFormat})
	}
	return errors.Join(errs...)
}
