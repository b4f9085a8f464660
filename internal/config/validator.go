package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the loaded values and reports every offending field at once
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	problems := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		if e.Param() != "" {
			problems = append(problems, fmt.Sprintf(ErrMsgFieldFmt, e.Namespace(), e.Tag(), e.Param()))
		} else {
			problems = append(problems, fmt.Sprintf(ErrMsgFieldNoParam, e.Namespace(), e.Tag()))
		}
	}
	return fmt.Errorf(ErrMsgInvalidFmt, strings.Join(problems, ", "))
}

// Warnings returns non-fatal issues worth logging at startup
func (c *Config) Warnings() []string {
	var warnings []string

	if c.APIKey == "" {
		warnings = append(warnings, WarnMsgNoAPIKey)
	}
	if len(c.AdminIDs) == 0 {
		warnings = append(warnings, WarnMsgNoAdmins)
	}
	if c.DiscordDisabled {
		warnings = append(warnings, WarnMsgDiscordOffline)
		return warnings
	}
	if c.DiscordToken == ExampleDiscordToken {
		warnings = append(warnings, WarnMsgExampleToken)
	}
	if c.DiscordAppID == "" {
		warnings = append(warnings, WarnMsgNoAppID)
	}

	return warnings
}
