package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks cross-field constraints that tag-level validation
// cannot express.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Database.MaxConns < c.Database.MinConns {
		errs = append(errs, fmt.Errorf("database.max_conns %d < min_conns %d",
			c.Database.MaxConns, c.Database.MinConns))
	}
	if c.Anthropic.ExtractModel == "" {
		errs = append(errs, errors.New("anthropic.extract_model is empty"))
	}
	if c.Anthropic.WritingModel == "" {
		errs = append(errs, errors.New("anthropic.writing_model is empty"))
	}
	if c.Anthropic.Timeout <= 0 {
		errs = append(errs, errors.New("anthropic.timeout must be positive"))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not json or text", c.Log.Format))
	}

	// Storage is optional, but partial credentials are a misconfiguration.
	if (c.Storage.AccessKey == "") != (c.Storage.SecretKey == "") {
		errs = append(errs, errors.New("storage.access_key and storage.secret_key must be set together"))
	}

	return errors.Join(errs...)
}
