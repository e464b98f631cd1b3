package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Mr-XX23/quiz-agentic/internal/types"
)

// Validate checks struct tags plus the cross-field rules the tags cannot
// express.
func Validate(cfg *Config) error {
	if cfg == nil {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "configuration is nil")
	}

	if err := validator.New().Struct(cfg); err != nil {
		validationErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return types.WrapError(types.CONFIG_VALIDATION_FAILED, "validating config", err)
		}
		messages := make([]string, 0, len(validationErrs))
		for _, e := range validationErrs {
			messages = append(messages, formatFieldError(e))
		}
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			"configuration validation failed:\n  - "+strings.Join(messages, "\n  - "))
	}

	if cfg.A2A.Enabled {
		if err := validatePort("a2a.port", cfg.A2A.Port); err != nil {
			return err
		}
	}
	if cfg.MCP.Enabled {
		if err := validatePort("mcp.port", cfg.MCP.Port); err != nil {
			return err
		}
	}
	if cfg.A2A.Enabled && cfg.MCP.Enabled && cfg.A2A.Port == cfg.MCP.Port {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("a2a and mcp cannot share port %d", cfg.A2A.Port))
	}
	return nil
}

func validatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("%s must be between 1 and 65535 (got: %d)", field, port))
	}
	return nil
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Namespace())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got: %v)", e.Namespace(), e.Param(), e.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s (got: %v)", e.Namespace(), e.Param(), e.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s (got: %v)", e.Namespace(), e.Param(), e.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", e.Namespace(), e.Tag())
	}
}
