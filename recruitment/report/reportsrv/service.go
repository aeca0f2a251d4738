package reportsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/fsx"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
	"github.com/Abraxas-365/aikyuu/recruitment/position"
	"github.com/Abraxas-365/aikyuu/recruitment/report"
)

type Service struct {
	positions position.Getter
	fs        fsx.FileSystem
	notifier  storex.Notifier
	prefix    string
	now       func() time.Time
}

var _ report.Exporter = (*Service)(nil)

// NewService writes exports below prefix on fs
func NewService(positions position.Getter, fs fsx.FileSystem, notifier storex.Notifier, prefix string) *Service {
	return &Service{
		positions: positions,
		fs:        fs,
		notifier:  notifier,
		prefix:    prefix,
		now:       time.Now,
	}
}

// Export fetches the position, ranks its resumes and writes the file. Only
// completed positions can be exported.
func (s *Service) Export(ctx context.Context, id kernel.PositionID, format report.Format) (*report.Exported, error) {
	p, err := s.positions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsCompleted() {
		s.notify(storex.LevelWarning, "Analysis has not completed yet")
		return nil, report.ErrNotCompleted().WithDetail("status", string(p.Status))
	}

	r := report.Build(p, s.now())
	data, err := report.Encode(r, format)
	if err != nil {
		s.notify(storex.LevelError, "Failed to export results")
		return nil, err
	}

	path := s.fs.Join(s.prefix, r.FileName(format))
	if err := s.fs.WriteFile(ctx, path, data); err != nil {
		s.notify(storex.LevelError, "Failed to export results")
		return nil, err
	}

	out := &report.Exported{
		Format:   format,
		Path:     path,
		Location: s.fs.Location(path),
		Rows:     len(r.Rows),
	}
	logx.Infof("exported %d results of position %s to %s", out.Rows, id, out.Location)
	s.notify(storex.LevelSuccess, fmt.Sprintf("Results exported to %s", out.Location))
	return out, nil
}

func (s *Service) notify(level storex.Level, msg string) {
	if s.notifier != nil {
		s.notifier.Notify(level, msg)
	}
}
