package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/alaqidah-service/internal/i18n"
)

var validate = newValidator()

// newValidator reports fields by their koanf key, so a message names the
// YAML key to fix, and adds the locale tag for language codes.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
		_, ok := i18n.ParseLang(fl.Field().String())
		return ok
	})

	return v
}

// Validate validates the configuration and returns an error if invalid.
// Validation fails fast - the service should not start with invalid config.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	lines := make([]string, len(fieldErrs))
	for i, e := range fieldErrs {
		lines[i] = formatFieldError(e)
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(lines, "\n  "))
}

// formatFieldError renders one failure as "<key> <problem>", followed by the
// APP_ variable that overrides the key when there is one.
func formatFieldError(e validator.FieldError) string {
	key := configKey(e.Namespace())

	var problem string
	switch e.Tag() {
	case "required":
		problem = "is required"
	case "required_if":
		problem = "is required when " + strings.ToLower(e.Param())
	case "min":
		problem = "must be at least " + e.Param()
	case "max":
		problem = "must be at most " + e.Param()
	case "oneof":
		problem = "must be one of: " + e.Param()
	case "url":
		problem = "must be a valid URL"
	case "locale":
		problem = fmt.Sprintf("must be a supported language code, got %q", e.Value())
	default:
		problem = "failed validation: " + e.Tag()
	}

	if env := envVar(key); env != "" {
		return fmt.Sprintf("%s %s (env %s)", key, problem, env)
	}

	return key + " " + problem
}

// configKey turns a validator namespace such as
// "Config.share_card.cache.max_entries" into the koanf key
// "share_card.cache.max_entries".
func configKey(namespace string) string {
	_, key, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	return key
}

// envVar returns the environment variable that overrides key, or "" for
// list elements, which cannot be set one by one.
func envVar(key string) string {
	if strings.ContainsRune(key, '[') {
		return ""
	}

	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
