package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationError is one problem found in the profile document.
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate checks the parsed config: schema shape first, then the
// semantic rules the schema cannot express.
func Validate(config *Config) []ValidationError {
	var errors []ValidationError

	if schemaErr := validateSchema(config); schemaErr != nil {
		errors = append(errors, *schemaErr)
	}

	if len(config.Profiles) == 0 {
		errors = append(errors, ValidationError{
			Path:    "profiles",
			Message: "at least one profile is required",
		})
	}

	for name, profile := range config.Profiles {
		if profile.URL == "" && profile.Socket == "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("profiles.%s", name),
				Message: "either url or socket is required",
			})
		}
		if profile.URL != "" && profile.Socket != "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("profiles.%s", name),
				Message: "url and socket are mutually exclusive",
			})
		}
		if profile.URL != "" && !strings.Contains(profile.URL, "://") {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("profiles.%s.url", name),
				Message: "url must be of the form scheme://host[:port]",
			})
		}
		if profile.Timeout != "" {
			if _, err := time.ParseDuration(profile.Timeout); err != nil {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("profiles.%s.timeout", name),
					Message: fmt.Sprintf("invalid duration %q", profile.Timeout),
				})
			}
		}
	}

	return errors
}

// validateSchema runs the embedded JSON schema over the document. The
// config is round-tripped through JSON so YAML input is validated too.
func validateSchema(config *Config) *ValidationError {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("profiles.json", strings.NewReader(profileSchema)); err != nil {
		return &ValidationError{Path: "$", Message: err.Error()}
	}
	schema, err := compiler.Compile("profiles.json")
	if err != nil {
		return &ValidationError{Path: "$", Message: err.Error()}
	}

	raw, err := json.Marshal(config)
	if err != nil {
		return &ValidationError{Path: "$", Message: err.Error()}
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ValidationError{Path: "$", Message: err.Error()}
	}

	if err := schema.Validate(doc); err != nil {
		return &ValidationError{Path: "$", Message: err.Error()}
	}
	return nil
}
