package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/diogo/wallchat/internal/api"
	apierrors "github.com/diogo/wallchat/internal/errors"
	"github.com/diogo/wallchat/internal/models"
)

// Client is the part of the service API the widget talks to
type Client interface {
	api.WallFetcher
	PostMessage(ctx context.Context, text string) error
	Rename(ctx context.Context, name string) error
}

// Widget owns the input value, the wall and the poll loop.
// All methods are safe for concurrent use.
type Widget struct {
	client   Client
	interval time.Duration
	logger   zerolog.Logger

	mu     sync.Mutex
	input  string
	wall   string
	poller *api.Poller
	done   chan struct{}
	wg     sync.WaitGroup
}

// Option configures a Widget
type Option func(*Widget)

// WithInterval sets the poll period
func WithInterval(d time.Duration) Option {
	return func(w *Widget) {
		w.interval = d
	}
}

// WithLogger sets the widget logger
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Widget) {
		w.logger = logger
	}
}

// NewWidget creates a stopped widget
func NewWidget(client Client, opts ...Option) *Widget {
	w := &Widget{
		client:   client,
		interval: models.DefaultPollInterval,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Widget) SetInput(s string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = s
}

func (w *Widget) Input() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

func (w *Widget) Wall() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.wall
}

// SetWall replaces the wall wholesale
func (w *Widget) SetWall(s string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.wall = s
}

// Prepare parses the current input. For a message or rename it clears the
// input and appends the optimistic entry to the wall. Empty input leaves
// everything unchanged and returns false.
func (w *Widget) Prepare() (Action, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	action := ParseInput(w.input)
	if action.Kind == ActionNone {
		return action, false
	}

	w.input = ""
	w.wall += models.OptimisticEntry(action.Text)
	return action, true
}

// Dispatch sends a prepared action to the server
func (w *Widget) Dispatch(ctx context.Context, action Action) error {
	switch action.Kind {
	case ActionRename:
		w.logger.Debug().Str("name", action.Name).Msg("rename")
		if err := w.client.Rename(ctx, action.Name); err != nil {
			return fmt.Errorf("rename to %q: %w", action.Name, err)
		}
	case ActionMessage:
		w.logger.Debug().Int("len", len(action.Text)).Msg("post message")
		if err := w.client.PostMessage(ctx, action.Text); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}
	return nil
}

// Submit prepares and dispatches the current input
func (w *Widget) Submit(ctx context.Context) (Action, error) {
	action, ok := w.Prepare()
	if !ok {
		return action, nil
	}
	return action, w.Dispatch(ctx, action)
}

// Running reports whether the poll loop is active
func (w *Widget) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.poller != nil
}

// Start begins polling the wall. Successful updates replace the wall before
// onWall (which may be nil) sees them; failed ones leave it untouched.
func (w *Widget) Start(ctx context.Context, onWall func(api.WallUpdate)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.poller != nil {
		return apierrors.ErrWidgetStarted
	}

	poller := api.NewPoller(w.client, w.interval, api.WithPollerLogger(w.logger))
	if err := poller.Start(ctx); err != nil {
		return err
	}

	w.poller = poller
	w.done = make(chan struct{})
	w.wg.Add(1)
	go w.consume(poller.Updates(), w.done, onWall)
	return nil
}

func (w *Widget) consume(updates <-chan api.WallUpdate, done <-chan struct{}, onWall func(api.WallUpdate)) {
	defer w.wg.Done()
	for {
		select {
		case <-done:
			return
		case u := <-updates:
			if u.Err == nil {
				w.SetWall(u.Content)
			}
			if onWall != nil {
				onWall(u)
			}
		}
	}
}

// Stop ends polling and waits for the consumer to exit. Safe to call more
// than once.
func (w *Widget) Stop() error {
	w.mu.Lock()
	poller := w.poller
	done := w.done
	w.poller = nil
	w.done = nil
	w.mu.Unlock()

	if poller == nil {
		return nil
	}

	err := poller.Stop()
	close(done)
	w.wg.Wait()
	return err
}
