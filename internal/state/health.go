package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"ticketboard/internal/models"
)

const DefaultHealthInterval = 30 * time.Second

type HealthService interface {
	Backend(ctx context.Context) error
	Database(ctx context.Context) error
}

// Health tracks backend and database reachability.
type Health struct {
	svc HealthService
	now func() time.Time

	mu     sync.Mutex
	status models.HealthStatus
}

func NewHealth(svc HealthService) *Health {
	return &Health{
		svc:    svc,
		now:    time.Now,
		status: models.HealthStatus{Backend: models.HealthChecking, Database: models.HealthChecking},
	}
}

func (h *Health) Snapshot() models.HealthStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

func stateOf(err error) models.HealthState {
	if err != nil {
		return models.HealthUnhealthy
	}
	return models.HealthHealthy
}

// Check runs both probes concurrently and records the result. Either
// failure marks both statuses unhealthy. A check cut short by ctx is
// not recorded and the previous status is returned.
func (h *Health) Check(ctx context.Context) models.HealthStatus {
	var backendErr, dbErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); backendErr = h.svc.Backend(ctx) }()
	go func() { defer wg.Done(); dbErr = h.svc.Database(ctx) }()
	wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	if ctx.Err() != nil {
		return h.status
	}
	overall := stateOf(errors.Join(backendErr, dbErr))
	h.status = models.HealthStatus{Backend: overall, Database: overall, CheckedAt: h.now()}
	return h.status
}

// Poll is a running health check loop.
type Poll struct {
	cancel  context.CancelFunc
	done    chan struct{}
	updates chan models.HealthStatus
	once    sync.Once
}

// Start probes immediately and then every interval until the returned
// handle is stopped or ctx ends.
func (h *Health) Start(ctx context.Context, interval time.Duration) *Poll {
	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	p := &Poll{
		cancel:  cancel,
		done:    make(chan struct{}),
		updates: make(chan models.HealthStatus, 1),
	}
	go p.run(ctx, h, interval)
	return p
}

func (p *Poll) run(ctx context.Context, h *Health, interval time.Duration) {
	defer close(p.done)
	defer close(p.updates)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		st := h.Check(ctx)
		if ctx.Err() != nil {
			return
		}
		p.publish(st)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// publish keeps only the latest status when the reader lags.
func (p *Poll) publish(st models.HealthStatus) {
	select {
	case p.updates <- st:
		return
	default:
	}
	select {
	case <-p.updates:
	default:
	}
	select {
	case p.updates <- st:
	default:
	}
}

// Updates yields each completed check. It is closed after Stop.
func (p *Poll) Updates() <-chan models.HealthStatus { return p.updates }

// Stop cancels the loop and waits for it to exit. Safe to call twice.
func (p *Poll) Stop() {
	p.once.Do(p.cancel)
	<-p.done
}
