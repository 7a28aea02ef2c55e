package usecase

import (
	"context"
	"sync"
	"time"

	"ecogrid/internal/domain/models"
	xlogger "ecogrid/pkg/logger"
)

// Poller refreshes the grid snapshot on a fixed interval and fans the result
// out to registered listeners. One refresh is issued immediately on Start so
// listeners never wait a full interval for their first snapshot.
type Poller struct {
	acq      *GridAcquisition
	interval time.Duration
	logger   *xlogger.Logger

	mu        sync.Mutex
	listeners []func(*models.GridSnapshot)
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewPoller creates a snapshot poller.
func NewPoller(acq *GridAcquisition, interval time.Duration, logger *xlogger.Logger) *Poller {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Poller{
		acq:      acq,
		interval: interval,
		logger:   logger,
	}
}

// Subscribe registers a listener for every refreshed snapshot. Listeners are
// invoked from the polling goroutine and must not block.
func (p *Poller) Subscribe(fn func(*models.GridSnapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Start launches the polling loop. The loop stops when Stop is called or the
// parent context is cancelled. Starting an already-running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	snap := p.acq.Refresh(ctx)
	p.logger.Info("snapshot refreshed",
		xlogger.String("source", string(snap.DataSource)),
		xlogger.Int("demandMW", snap.TotalDemandMW))

	p.mu.Lock()
	listeners := make([]func(*models.GridSnapshot), len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// Stop halts the loop and waits for the in-flight cycle to finish. Stopping
// an idle poller is a no-op, and a stopped poller can be started again.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
