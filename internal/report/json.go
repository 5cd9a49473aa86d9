package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/AndreyAkinshin/testlogs/internal/model"
	"github.com/AndreyAkinshin/testlogs/internal/schema"
)

// JSON writes res as an indented JSON document. The document is checked
// against the embedded report schema before anything is written to w.
func JSON(w io.Writer, res model.Result) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}

	if err := schema.ValidateReport(buf.Bytes()); err != nil {
		return err
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}
