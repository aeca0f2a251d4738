package analysissrv

import (
	"context"

	"github.com/Abraxas-365/aikyuu/pkg/apix"
	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
	"github.com/Abraxas-365/aikyuu/recruitment/analysis"
	"github.com/Abraxas-365/aikyuu/recruitment/position"
	"github.com/Abraxas-365/aikyuu/ui"
)

// Service runs the start-analysis flow: guards, the analyzing flag, the
// trigger and the status polling.
type Service struct {
	positions position.Getter
	analysis  analysis.Store
	prefs     *ui.Preferences
	notifier  storex.Notifier
	cfg       Config
}

func NewService(positions position.Getter, store analysis.Store, prefs *ui.Preferences, notifier storex.Notifier, cfg Config) *Service {
	if prefs == nil {
		prefs = ui.NewPreferences()
	}
	return &Service{
		positions: positions,
		analysis:  store,
		prefs:     prefs,
		notifier:  notifier,
		cfg:       cfg,
	}
}

// Start checks that the position has criteria and resumes, then triggers
// the analysis. Guard failures never reach the network.
func (s *Service) Start(ctx context.Context, id kernel.PositionID) (*position.Position, error) {
	p, err := s.positions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := analysis.CheckReady(p); err != nil {
		if s.notifier != nil {
			s.notifier.Notify(storex.LevelWarning, apix.Message(err, err.Error()))
		}
		return p, err
	}

	s.prefs.SetIsAnalyzing(true)
	defer s.prefs.SetIsAnalyzing(false)

	if err := s.analysis.StartProcessing(ctx, id); err != nil {
		return p, err
	}
	logx.Infof("analysis started for position %s (%d criteria, %d resumes)", id, len(p.Criterias), len(p.Resumes))
	return p, nil
}

// Watch polls the position until it completes and returns it
func (s *Service) Watch(ctx context.Context, id kernel.PositionID, hooks Hooks) (*position.Position, error) {
	return NewCoordinator(s.positions, s.cfg, hooks).Run(ctx, id)
}

// Analyze is Start followed by Watch
func (s *Service) Analyze(ctx context.Context, id kernel.PositionID, hooks Hooks) (*position.Position, error) {
	if _, err := s.Start(ctx, id); err != nil {
		return nil, err
	}
	return s.Watch(ctx, id, hooks)
}
