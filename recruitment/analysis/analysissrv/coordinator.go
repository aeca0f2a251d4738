package analysissrv

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Abraxas-365/aikyuu/pkg/kernel"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/recruitment/analysis"
	"github.com/Abraxas-365/aikyuu/recruitment/position"
)

// Phase is the coordinator's state
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhasePolling     Phase = "polling"
	PhaseRedirecting Phase = "redirecting"
	PhaseDone        Phase = "done"
	PhaseIdleError   Phase = "idle-error"
	PhaseStopped     Phase = "stopped"
)

type Config struct {
	StatusInterval   time.Duration
	ProgressInterval time.Duration
	RedirectDelay    time.Duration

	ProgressStart   float64
	ProgressCeiling float64
	MaxIncrement    float64

	// MaxAttempts and MaxDuration bound polling; zero means unbounded
	MaxAttempts int
	MaxDuration time.Duration
}

func DefaultConfig() Config {
	return Config{
		StatusInterval:   3 * time.Second,
		ProgressInterval: 200 * time.Millisecond,
		RedirectDelay:    time.Second,
		ProgressStart:    55,
		ProgressCeiling:  90,
		MaxIncrement:     1.5,
	}
}

// Hooks receive coordinator events. Any of them may be nil.
type Hooks struct {
	// OnProgress receives the cosmetic percentage
	OnProgress func(percent float64)
	// OnStatus receives every successfully fetched position
	OnStatus func(p *position.Position)
	// OnRedirect fires once, after the redirect delay, when the position
	// has completed
	OnRedirect func(id kernel.PositionID)
}

// Coordinator polls a position until its analysis completes. The cosmetic
// progress it reports has no bearing on when polling stops.
type Coordinator struct {
	positions position.Getter
	cfg       Config
	hooks     Hooks
	rand      func() float64

	mu       sync.Mutex
	phase    Phase
	progress float64
	attempts int
}

func NewCoordinator(positions position.Getter, cfg Config, hooks Hooks) *Coordinator {
	def := DefaultConfig()
	if cfg.StatusInterval <= 0 {
		cfg.StatusInterval = def.StatusInterval
	}
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = def.ProgressInterval
	}
	if cfg.RedirectDelay < 0 {
		cfg.RedirectDelay = 0
	}
	if cfg.ProgressCeiling <= 0 {
		cfg.ProgressCeiling = def.ProgressCeiling
	}
	if cfg.MaxIncrement <= 0 {
		cfg.MaxIncrement = def.MaxIncrement
	}
	if cfg.ProgressStart > cfg.ProgressCeiling {
		cfg.ProgressStart = cfg.ProgressCeiling
	}

	return &Coordinator{
		positions: positions,
		cfg:       cfg,
		hooks:     hooks,
		rand:      rand.Float64,
		phase:     PhaseIdle,
		progress:  cfg.ProgressStart,
	}
}

// WithRand replaces the random source of the progress animation
func (c *Coordinator) WithRand(fn func() float64) *Coordinator {
	c.rand = fn
	return c
}

func (c *Coordinator) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Coordinator) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

func (c *Coordinator) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

func (c *Coordinator) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}

// Run polls until the position completes, ctx is cancelled or a bound is
// exceeded. No status check is issued after Run returns.
func (c *Coordinator) Run(ctx context.Context, id kernel.PositionID) (*position.Position, error) {
	if id.IsEmpty() {
		return nil, position.ErrMissingID()
	}

	c.setPhase(PhasePolling)
	started := time.Now()

	stopProgress := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.animate(ctx, stopProgress)
	}()
	halt := func() {
		close(stopProgress)
		wg.Wait()
	}

	ticker := time.NewTicker(c.cfg.StatusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			halt()
			c.setPhase(PhaseStopped)
			return nil, ctx.Err()

		case <-ticker.C:
			p, done := c.check(ctx, id)
			if done {
				ticker.Stop()
				halt()
				return c.redirect(ctx, p)
			}
			if c.exceeded(started) {
				ticker.Stop()
				halt()
				c.setPhase(PhaseIdleError)
				logx.Warnf("analysis of position %s did not complete after %d checks", id, c.Attempts())
				return nil, analysis.ErrAnalysisTimeout(c.Attempts())
			}
		}
	}
}

// check fetches the position once. A failed fetch is already notified by
// the store and polling carries on.
func (c *Coordinator) check(ctx context.Context, id kernel.PositionID) (*position.Position, bool) {
	c.mu.Lock()
	c.attempts++
	c.mu.Unlock()

	p, err := c.positions.GetByID(ctx, id)
	if err != nil {
		if ctx.Err() == nil {
			logx.Debugf("status check for %s failed: %v", id, err)
		}
		return nil, false
	}
	if c.hooks.OnStatus != nil {
		c.hooks.OnStatus(p)
	}
	return p, p.IsCompleted()
}

func (c *Coordinator) exceeded(started time.Time) bool {
	if c.cfg.MaxAttempts > 0 && c.Attempts() >= c.cfg.MaxAttempts {
		return true
	}
	return c.cfg.MaxDuration > 0 && time.Since(started) >= c.cfg.MaxDuration
}

func (c *Coordinator) redirect(ctx context.Context, p *position.Position) (*position.Position, error) {
	c.mu.Lock()
	c.phase = PhaseRedirecting
	c.progress = 100
	c.mu.Unlock()
	if c.hooks.OnProgress != nil {
		c.hooks.OnProgress(100)
	}

	timer := time.NewTimer(c.cfg.RedirectDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		c.setPhase(PhaseStopped)
		return p, ctx.Err()
	case <-timer.C:
	}

	c.setPhase(PhaseDone)
	if c.hooks.OnRedirect != nil {
		c.hooks.OnRedirect(p.ID)
	}
	return p, nil
}

func (c *Coordinator) animate(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(c.cfg.ProgressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.progress >= c.cfg.ProgressCeiling {
				c.mu.Unlock()
				continue
			}
			c.progress = min(c.progress+c.rand()*c.cfg.MaxIncrement, c.cfg.ProgressCeiling)
			current := c.progress
			c.mu.Unlock()

			if c.hooks.OnProgress != nil {
				c.hooks.OnProgress(current)
			}
		}
	}
}
