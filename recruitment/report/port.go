package report

import (
	"context"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
)

// Exported describes a written export file
type Exported struct {
	Format   Format `json:"format"`
	Path     string `json:"path"`
	Location string `json:"location"`
	Rows     int    `json:"rows"`
}

// Exporter writes the analysis results of a position to storage
type Exporter interface {
	Export(ctx context.Context, id kernel.PositionID, format Format) (*Exported, error)
}
