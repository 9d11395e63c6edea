package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput indicates a required mapping table path is missing
	ErrEmptyInput = errors.New("empty input path")

	// ErrIncompleteOverlay indicates some but not all overlay tables are configured
	ErrIncompleteOverlay = errors.New("incomplete overlay configuration")

	// ErrEmptyDatabasePath indicates the serialized database path is missing
	ErrEmptyDatabasePath = errors.New("empty database path")

	// ErrInvalidWorkers indicates a negative worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidCacheSize indicates a negative descriptor cache size
	ErrInvalidCacheSize = errors.New("invalid descriptor cache size")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateInputs(&cfg.Inputs); err != nil {
		errs = append(errs, err)
	}

	if err := validateOverlay(&cfg.Overlay); err != nil {
		errs = append(errs, err)
	}

	if strings.TrimSpace(cfg.Database.Path) == "" {
		errs = append(errs, fmt.Errorf("%w: database.path is required", ErrEmptyDatabasePath))
	}

	if err := validateImport(&cfg.Import); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateInputs(cfg *InputsConfig) error {
	var errs []error

	required := []struct{ key, value string }{
		{"inputs.mappings", cfg.Mappings},
		{"inputs.statics", cfg.Statics},
		{"inputs.constructors", cfg.Constructors},
	}
	for _, input := range required {
		if strings.TrimSpace(input.value) == "" {
			errs = append(errs, fmt.Errorf("%w: %s is required", ErrEmptyInput, input.key))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateOverlay(cfg *OverlayConfig) error {
	// All three or none: the overlay joins fields, methods and params by id.
	if !cfg.Enabled() {
		return nil
	}
	var missing []string
	if cfg.Fields == "" {
		missing = append(missing, "overlay.fields")
	}
	if cfg.Methods == "" {
		missing = append(missing, "overlay.methods")
	}
	if cfg.Params == "" {
		missing = append(missing, "overlay.params")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteOverlay, strings.Join(missing, ", "))
	}
	return nil
}

func validateImport(cfg *ImportConfig) error {
	var errs []error

	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: import.workers cannot be negative, got %d", ErrInvalidWorkers, cfg.Workers))
	}

	if cfg.DescriptorCacheSize < 0 {
		errs = append(errs, fmt.Errorf("%w: import.descriptor_cache_size cannot be negative, got %d", ErrInvalidCacheSize, cfg.DescriptorCacheSize))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
// Each error stays reachable through errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return &validationError{
		msg:  fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - ")),
		errs: errs,
	}
}

type validationError struct {
	msg  string
	errs []error
}

func (e *validationError) Error() string   { return e.msg }
func (e *validationError) Unwrap() []error { return e.errs }
