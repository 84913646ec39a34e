package helpdesk

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/drojas/deskmetrics/internal/contract"
	"github.com/drojas/deskmetrics/schema"
)

// Poller refreshes the ticket feed on a fixed interval. Every fetch is
// stamped with a monotonically increasing epoch; a response whose epoch is
// no longer current, or older than one already delivered, is discarded, so
// a slow fetch can never overwrite the result of a newer one.
type Poller struct {
	client   contract.TicketClient
	interval time.Duration
	epoch    atomic.Uint64
	onUpdate func([]schema.Ticket)

	// mu serializes delivery; delivered is the highest epoch handed to
	// onUpdate so far and is only touched under mu.
	mu        sync.Mutex
	delivered uint64
}

// NewPoller creates a poller that invokes onUpdate with each fresh feed.
func NewPoller(client contract.TicketClient, interval time.Duration, onUpdate func([]schema.Ticket)) *Poller {
	return &Poller{
		client:   client,
		interval: interval,
		onUpdate: onUpdate,
	}
}

// Run polls until the context is cancelled. The first fetch happens
// immediately, then one per interval tick. Failed fetches are logged and
// the previous state stays on screen.
func (p *Poller) Run(ctx context.Context) {
	p.fetchOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchOnce(ctx)
		}
	}
}

// fetchOnce launches one epoch-stamped fetch in its own goroutine so a
// stalled request never blocks the tick loop.
func (p *Poller) fetchOnce(ctx context.Context) {
	epoch := p.epoch.Add(1)
	go func() {
		tickets, err := p.client.FetchTickets(ctx)
		if err != nil {
			if ctx.Err() == nil && p.epoch.Load() == epoch {
				contract.LogWarn("polling ticket feed, keeping previous data", err)
			}
			return
		}
		p.deliver(ctx, epoch, tickets)
	}()
}

// deliver hands one fetch result to the callback. The staleness check and
// the callback run under the same lock, so two fetches can never interleave
// and an older epoch can never land after a newer one has been delivered.
// Nothing is delivered once the context is cancelled.
func (p *Poller) deliver(ctx context.Context, epoch uint64, tickets []schema.Ticket) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	if epoch <= p.delivered || p.epoch.Load() != epoch {
		// Superseded by a newer fetch, in flight or already delivered.
		return
	}
	p.delivered = epoch
	p.onUpdate(tickets)
}
