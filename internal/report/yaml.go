package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/testlogs/internal/model"
)

// YAML writes res as a YAML document with the same structure as JSON.
func YAML(w io.Writer, res model.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to write YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to write YAML report: %w", err)
	}
	return nil
}
