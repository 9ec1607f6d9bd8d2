// Package monitor follows a running deployment by polling the Asgard API.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/yz4230/asgard-console/internal/asgard"
	"github.com/yz4230/asgard-console/internal/entity"
)

const DefaultInterval = time.Second

type Options struct {
	// Interval between two polls. Defaults to DefaultInterval.
	Interval time.Duration
	// MaxFailures stops Run after that many consecutive failed polls. Zero polls forever.
	MaxFailures int
	// MaxBackoff doubles the delay after every consecutive failure up to this cap.
	// Zero keeps the fixed interval.
	MaxBackoff time.Duration
	Logger     zerolog.Logger
	// OnUpdate is called with every snapshot that replaced the local state.
	OnUpdate func(*entity.Deployment)
}

type Monitor struct {
	client asgard.Client
	id     string
	opts   Options

	issued atomic.Uint64

	mu         sync.Mutex
	applied    uint64
	deployment *entity.Deployment
	logText    string
}

func New(client asgard.Client, id string, opts Options) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Monitor{client: client, id: id, opts: opts}
}

func (m *Monitor) ID() string { return m.id }

// Refresh fetches the current snapshot. A response that arrives after the response of
// a later fetch is dropped and the newer state is returned instead.
func (m *Monitor) Refresh(ctx context.Context) (*entity.Deployment, error) {
	ticket := m.issued.Add(1)
	d, err := m.client.ShowDeployment(ctx, m.id)
	if err != nil {
		return nil, fmt.Errorf("refresh deployment %s: %w", m.id, err)
	}

	m.mu.Lock()
	if ticket <= m.applied {
		current := m.deployment
		m.mu.Unlock()
		m.opts.Logger.Debug().Str("id", m.id).Uint64("ticket", ticket).Msg("stale snapshot dropped")
		return current, nil
	}
	m.applied = ticket
	m.deployment = d
	m.logText = LogText(d)
	m.mu.Unlock()

	if m.opts.OnUpdate != nil {
		m.opts.OnUpdate(d)
	}
	return d, nil
}

// Run polls right away and then every Interval until a snapshot reports done or ctx
// ends. Failed polls are logged and retried on the next tick.
func (m *Monitor) Run(ctx context.Context) error {
	failures := 0
	for {
		d, err := m.Refresh(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failures++
			m.opts.Logger.Warn().Err(err).Str("id", m.id).Int("failures", failures).Msg("poll failed")
			if m.opts.MaxFailures > 0 && failures >= m.opts.MaxFailures {
				return fmt.Errorf("giving up on deployment %s after %d failed polls: %w", m.id, failures, err)
			}
		} else {
			failures = 0
			if d.Done {
				m.opts.Logger.Debug().Str("id", m.id).Str("status", string(d.Status)).Msg("deployment done")
				return nil
			}
		}

		timer := time.NewTimer(m.delay(failures))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (m *Monitor) delay(failures int) time.Duration {
	d := m.opts.Interval
	if m.opts.MaxBackoff <= 0 {
		return d
	}
	for i := 0; i < failures && d < m.opts.MaxBackoff; i++ {
		d *= 2
	}
	return min(d, max(m.opts.MaxBackoff, m.opts.Interval))
}

// Deployment returns the latest applied snapshot, nil before the first successful poll.
func (m *Monitor) Deployment() *entity.Deployment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deployment
}

func (m *Monitor) LogText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logText
}

func (m *Monitor) CurrentStep() int {
	return CurrentStep(m.Deployment())
}

func (m *Monitor) StepStatus(index int) entity.StepStatus {
	return StepStatusOf(m.Deployment(), index)
}

func (m *Monitor) StepStatuses() []entity.StepStatus {
	return StepStatuses(m.Deployment())
}

func (m *Monitor) Proceed(ctx context.Context) error {
	return m.judge(ctx, entity.JudgmentProceed)
}

func (m *Monitor) Rollback(ctx context.Context) error {
	return m.judge(ctx, entity.JudgmentRollback)
}

// judge sends the token of the latest snapshot. Stale tokens are rejected by the server.
func (m *Monitor) judge(ctx context.Context, judgment entity.Judgment) error {
	d := m.Deployment()
	if d == nil {
		return fmt.Errorf("%s deployment %s: %w: no snapshot yet", judgment, m.id, entity.ErrInvalid)
	}
	if err := m.client.JudgeDeployment(ctx, judgment, m.id, d.Token); err != nil {
		return fmt.Errorf("%s deployment %s: %w", judgment, m.id, err)
	}
	m.opts.Logger.Info().Str("id", m.id).Str("judgment", string(judgment)).Msg("judgment sent")
	return nil
}

func (m *Monitor) Cancel(ctx context.Context) error {
	if err := m.client.CancelDeployment(ctx, m.id); err != nil {
		return fmt.Errorf("cancel deployment %s: %w", m.id, err)
	}
	m.opts.Logger.Info().Str("id", m.id).Msg("cancel sent")
	return nil
}

// ExecutionReference returns the workflow reference of the latest snapshot.
func (m *Monitor) ExecutionReference() string {
	d := m.Deployment()
	if d == nil {
		return ExecutionReference(entity.WorkflowExecution{})
	}
	return ExecutionReference(d.WorkflowExecution)
}
