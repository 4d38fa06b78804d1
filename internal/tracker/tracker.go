// Package tracker drives a data export job to a terminal state by
// polling the Chronicle API on a fixed interval.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	chronicle "github.com/c-mac49/secops-export/sdk"
)

// ErrPollTimeout is returned when a job does not reach a terminal
// state within the tracker's maximum wait. The remote job keeps
// running; tracking can be re-invoked later with the same identifier.
var ErrPollTimeout = errors.New("tracker: export did not reach a terminal state before the deadline")

// StatusFetcher fetches the current state of an export job.
// *chronicle.Client satisfies it.
type StatusFetcher interface {
	GetExport(ctx context.Context, id string) (*chronicle.DataExport, error)
}

const (
	defaultInterval = 30 * time.Second
	defaultMaxWait  = 2 * time.Hour
)

// Tracker polls a single export job until it settles. It holds no
// state between calls; an interrupted tracking session is resumed by
// calling Track again with the same identifier.
type Tracker struct {
	client   StatusFetcher
	inst     chronicle.Instance
	interval time.Duration
	maxWait  time.Duration
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithInterval sets the delay between polls.
func WithInterval(d time.Duration) Option {
	return func(t *Tracker) {
		t.interval = d
	}
}

// WithMaxWait sets the maximum wall-clock time Track will spend before
// giving up with ErrPollTimeout.
func WithMaxWait(d time.Duration) Option {
	return func(t *Tracker) {
		t.maxWait = d
	}
}

func New(client StatusFetcher, inst chronicle.Instance, opts ...Option) *Tracker {
	t := &Tracker{
		client:   client,
		inst:     inst,
		interval: defaultInterval,
		maxWait:  defaultMaxWait,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Track polls the job identified by id (short ID or resource name)
// until it reaches a terminal stage, the maximum wait elapses, or ctx
// is cancelled. Each non-terminal observation is passed to progress
// before the next sleep. A terminal FINISHED_FAILURE or CANCELLED is a
// legitimate outcome, returned with a nil error; the caller inspects
// the record's stage. An error from a single poll aborts tracking
// without retry.
func (t *Tracker) Track(ctx context.Context, id string, progress func(*chronicle.DataExport)) (*chronicle.DataExport, error) {
	name, err := t.inst.ExportName(id)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(t.maxWait)
	timer := time.NewTimer(0) // first poll happens immediately
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}

		export, err := t.client.GetExport(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("tracker: poll %s: %w", name, err)
		}
		if export.Status.Stage.Terminal() {
			return export, nil
		}
		if progress != nil {
			progress(export)
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w (waited %s)", ErrPollTimeout, t.maxWait)
		}
		timer.Reset(t.interval)
	}
}
