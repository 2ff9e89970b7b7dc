// File: pkg/formatter/config_formatter.go
package formatter

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Renders any configuration value (a struct with yaml tags or a settings map) as YAML
func FormatYAML(v any) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("error encoding configuration: %w", err)
	}
	return string(out), nil
}
