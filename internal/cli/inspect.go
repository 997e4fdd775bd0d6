package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/chatgraph"
	"github.com/aretw0/chatgraph/internal/config"
	"github.com/aretw0/chatgraph/internal/presentation/graph"
	"github.com/aretw0/chatgraph/internal/validator"
	"github.com/aretw0/chatgraph/pkg/adapters/file"
	"github.com/aretw0/chatgraph/pkg/builder"
	"github.com/aretw0/chatgraph/pkg/definition"
	"github.com/aretw0/chatgraph/pkg/domain"
)

// Graph export formats.
const (
	FormatMermaid    = "mermaid"
	FormatJSON       = "json"
	FormatDefinition = "definition"
)

// ErrValidationWarnings is returned by Validate in strict mode.
var ErrValidationWarnings = errors.New("graph has warnings")

// LoadGraph reads and builds the configured definition without the avatar.
func LoadGraph(cfg config.Config) (*definition.Definition, *domain.Graph, error) {
	def, err := chatgraph.ReadDefinition(file.NewDefinitionSource(cfg.Definition))
	if err != nil {
		return nil, nil, err
	}
	g, err := builder.BuildGraph(def)
	if err != nil {
		return nil, nil, err
	}
	return def, g, nil
}

// Validate builds the configured graph, loads the avatar and prints the
// validator findings. Construction failures are returned as-is; warnings
// only fail the call when strict is set.
func Validate(w io.Writer, cfg config.Config, strict bool) error {
	_, g, err := LoadGraph(cfg)
	if err != nil {
		return err
	}
	avatar, err := chatgraph.LoadAvatar(file.NewAvatarSource(cfg.Avatar))
	if err != nil {
		return err
	}

	report := validator.ValidateGraph(g)
	fmt.Fprintf(w, "%s: %d nodes, %d edges, root %d\n", cfg.Definition, g.NodeCount(), g.EdgeCount(), g.Root().ID())
	fmt.Fprintf(w, "%s: %s, %d bytes\n", avatar.Name(), avatar.MediaType(), avatar.Size())
	for _, f := range report.Findings {
		fmt.Fprintln(w, f.String())
	}

	if strict && report.Warnings() > 0 {
		return fmt.Errorf("%w: %d", ErrValidationWarnings, report.Warnings())
	}
	return nil
}

// ExportGraph writes the configured graph in format. overlay is only used
// by the mermaid format.
func ExportGraph(w io.Writer, cfg config.Config, format string, overlay *graph.GraphOverlay) error {
	def, g, err := LoadGraph(cfg)
	if err != nil {
		return err
	}

	switch format {
	case FormatMermaid:
		_, err = io.WriteString(w, graph.GenerateMermaid(g, overlay))
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(graph.NewView(g))
	case FormatDefinition:
		err = definition.Encode(w, def)
	default:
		err = fmt.Errorf("unknown format %q (use %s, %s or %s)", format, FormatMermaid, FormatJSON, FormatDefinition)
	}
	return err
}
