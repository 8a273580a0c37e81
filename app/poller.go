package app

import (
	"context"
	"time"

	"kuesioner/internal"
)

// DefaultPollInterval is used when a poller is created without a positive interval
const DefaultPollInterval = 30 * time.Second

// Poller recomputes the tally on an interval and publishes changes
type Poller struct {
	service  *TallyService
	interval time.Duration
	publish  func(Snapshot)
	logger   *internal.Logger

	last      *Snapshot
	published int
}

// NewPoller creates a poller; publish is called from the poller goroutine
func NewPoller(service *TallyService, interval time.Duration, publish func(Snapshot), logger *internal.Logger) *Poller {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		service:  service,
		interval: interval,
		publish:  publish,
		logger:   logger,
	}
}

// Run polls immediately and then every interval until ctx is cancelled
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("[Poller] Polling every %s", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("[Poller] Stopped after %d publishes", p.published)
			return nil
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll computes one snapshot and publishes it if the aggregate changed.
// It reports whether a publish happened.
func (p *Poller) Poll(ctx context.Context) bool {
	snapshot := p.service.Current(ctx)
	if ctx.Err() != nil {
		return false
	}

	if p.last != nil && p.last.Result.Equal(snapshot.Result) {
		p.logger.Trace("[Poller] No change (%d responses)", snapshot.Result.TotalResponses)
		return false
	}

	p.last = &snapshot
	p.published++
	p.logger.Debug("[Poller] Publishing %d responses", snapshot.Result.TotalResponses)
	if p.publish != nil {
		p.publish(snapshot)
	}
	return true
}
