package api

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	apierrors "github.com/diogo/wallchat/internal/errors"
	"github.com/diogo/wallchat/internal/models"
)

// WallFetcher fetches the current wall
type WallFetcher interface {
	FetchWall(ctx context.Context) (string, error)
}

// WallUpdate is the result of one poll tick
type WallUpdate struct {
	Seq     uint64
	Content string
	Err     error
	At      time.Time
}

// Poller refetches the wall on a fixed interval until stopped.
// Fetches never overlap, so updates are delivered in request order.
type Poller struct {
	fetcher  WallFetcher
	interval time.Duration
	logger   zerolog.Logger
	updates  chan WallUpdate

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	group   *errgroup.Group
	seq     uint64
}

// PollerOption configures a Poller
type PollerOption func(*Poller)

// WithPollerLogger sets the logger used for poll failures
func WithPollerLogger(logger zerolog.Logger) PollerOption {
	return func(p *Poller) {
		p.logger = logger
	}
}

// NewPoller creates a poller; a non-positive interval uses models.DefaultPollInterval
func NewPoller(fetcher WallFetcher, interval time.Duration, opts ...PollerOption) *Poller {
	if interval <= 0 {
		interval = models.DefaultPollInterval
	}

	p := &Poller{
		fetcher:  fetcher,
		interval: interval,
		logger:   zerolog.Nop(),
		updates:  make(chan WallUpdate, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the poll period
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Updates delivers poll results. Only the newest undelivered update is kept.
func (p *Poller) Updates() <-chan WallUpdate {
	return p.updates
}

// Running reports whether the poll loop is active
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Start begins polling; the first fetch happens immediately
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return apierrors.ErrPollerRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		p.loop(gctx)
		p.finish(group)
		cancel()
		return nil
	})

	p.running = true
	p.cancel = cancel
	p.group = group
	return nil
}

// Stop halts polling and waits for an in-flight fetch to return
func (p *Poller) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	cancel := p.cancel
	group := p.group
	p.cancel = nil
	p.group = nil
	p.mu.Unlock()

	cancel()
	return group.Wait()
}

// finish marks the poller stopped when the loop of run g ended on its own,
// e.g. because the parent context was cancelled.
func (p *Poller) finish(g *errgroup.Group) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.group != g {
		return
	}
	p.running = false
	p.cancel = nil
	p.group = nil
}

func (p *Poller) loop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	content, err := p.fetcher.FetchWall(ctx)
	if ctx.Err() != nil {
		return
	}

	if err != nil {
		p.logger.Debug().Err(err).Msg("wall poll failed")
	}

	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	p.publish(WallUpdate{
		Seq:     seq,
		Content: content,
		Err:     err,
		At:      time.Now(),
	})
}

// publish hands u to the consumer, replacing a stale undelivered update
func (p *Poller) publish(u WallUpdate) {
	for {
		select {
		case p.updates <- u:
			return
		default:
		}
		select {
		case <-p.updates:
		default:
		}
	}
}
