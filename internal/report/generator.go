// Package report renders the ledger overview as JSON, YAML or a PDF statement.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"fjacquet/misi/internal/ledger"
	"fjacquet/misi/internal/logging"

	"gopkg.in/yaml.v3"
)

// Supported report formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatPDF  = "pdf"
)

// Generator renders ledger overviews in various formats.
type Generator struct {
	logger     logging.Logger
	currency   string
	dateFormat string
}

// NewGenerator creates a Generator. currency labels PDF amounts and
// dateFormat is the Go layout used for PDF dates.
func NewGenerator(logger logging.Logger, currency, dateFormat string) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Generator{logger: logger, currency: currency, dateFormat: dateFormat}
}

// Generate renders overview in the given format (json, yaml or pdf).
func (g *Generator) Generate(overview ledger.Overview, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return g.generateJSON(overview)
	case FormatYAML:
		return g.generateYAML(overview)
	case FormatPDF:
		return g.generatePDF(overview)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// ContentType returns the MIME type of a report format.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func (g *Generator) generateJSON(overview ledger.Overview) ([]byte, error) {
	out, err := json.MarshalIndent(overview, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (g *Generator) generateYAML(overview ledger.Overview) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(overview); err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return buf.Bytes(), nil
}
