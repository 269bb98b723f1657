package reporting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"vehicle-market-lab/internal/dashboard"
	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/observability"
)

// ViewComputer computes dashboard views.
type ViewComputer interface {
	Compute(ctx context.Context, params domain.FilterParams, opts dashboard.Options) (*domain.Dashboard, error)
}

// Generator writes report files for a filter selection.
type Generator struct {
	views ViewComputer
}

// NewGenerator creates a new report generator.
func NewGenerator(views ViewComputer) *Generator {
	return &Generator{views: views}
}

// Generate computes the view for params and writes report.md plus one CSV
// per table into outputDir. Returns the paths written.
func (g *Generator) Generate(ctx context.Context, params domain.FilterParams, outputDir string) ([]string, error) {
	d, err := g.views.Compute(ctx, params, dashboard.Options{})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var written []string

	mdPath := filepath.Join(outputDir, "report.md")
	if err := os.WriteFile(mdPath, []byte(RenderMarkdown(d)), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", mdPath, err)
	}
	observability.RecordReport("markdown")
	written = append(written, mdPath)

	for _, table := range Tables() {
		content, err := RenderCSV(table, d)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(outputDir, string(table)+".csv")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		observability.RecordReport("csv")
		written = append(written, path)
	}

	return written, nil
}
