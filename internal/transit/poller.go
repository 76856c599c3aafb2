package transit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

const defaultPollInterval = 30 * time.Second

// Result is one completed fetch.
type Result struct {
	Arrival string
	Err     error
	At      time.Time
}

// Poller runs FetchArrival on a fixed cadence while enabled. It is Idle until
// Enable and returns to Idle on Disable. Results are delivered on Results();
// a run never overlaps the previous one.
type Poller struct {
	ctx      context.Context
	fetcher  ArrivalFetcher
	interval time.Duration
	logger   *slog.Logger

	scheduler gocron.Scheduler
	results   chan Result

	mu    sync.Mutex
	jobID uuid.UUID
}

// NewPoller builds an idle poller. fetcher may be nil when transit is not
// configured; runs then report ErrNotConfigured.
func NewPoller(ctx context.Context, fetcher ArrivalFetcher, interval time.Duration, logger *slog.Logger) (*Poller, error) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create transit scheduler: %w", err)
	}
	s.Start()

	return &Poller{
		ctx:       ctx,
		fetcher:   fetcher,
		interval:  interval,
		logger:    logger,
		scheduler: s,
		results:   make(chan Result, 1),
	}, nil
}

// Results delivers completed fetches.
func (p *Poller) Results() <-chan Result {
	return p.results
}

// Polling reports whether the poller is enabled.
func (p *Poller) Polling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.jobID != uuid.Nil
}

// Enable starts polling with an immediate first fetch. Enabling an already
// polling poller is a no-op.
func (p *Poller) Enable() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.jobID != uuid.Nil {
		return nil
	}

	job, err := p.scheduler.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(p.run),
		gocron.WithName("transit-poll"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule transit poll: %w", err)
	}
	p.jobID = job.ID()
	p.logger.Info("transit polling enabled", "interval", p.interval.String())
	return nil
}

// Disable stops polling. A fetch already in flight still delivers its result.
func (p *Poller) Disable() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.jobID == uuid.Nil {
		return nil
	}
	id := p.jobID
	p.jobID = uuid.Nil
	if err := p.scheduler.RemoveJob(id); err != nil {
		return fmt.Errorf("remove transit poll: %w", err)
	}
	p.logger.Info("transit polling disabled")
	return nil
}

// Sync enables or disables to match want.
func (p *Poller) Sync(want bool) error {
	if want {
		return p.Enable()
	}
	return p.Disable()
}

// Close stops the scheduler.
func (p *Poller) Close() error {
	return p.scheduler.Shutdown()
}

func (p *Poller) run() {
	res := Result{At: time.Now()}
	if p.fetcher == nil {
		res.Err = ErrNotConfigured
	} else {
		start := time.Now()
		res.Arrival, res.Err = p.fetcher.FetchArrival(p.ctx)
		p.logger.Debug("transit fetch", "duration", time.Since(start).String(), "ok", res.Err == nil)
	}

	select {
	case p.results <- res:
	case <-p.ctx.Done():
	}
}
