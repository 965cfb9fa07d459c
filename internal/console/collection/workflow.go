package collection

import (
	"context"
	"errors"
	"sync"
)

// ActionKind identifies a row-level mutation.
type ActionKind string

const (
	// ActionChangeStatus is the idempotent status flip.
	ActionChangeStatus ActionKind = "changeStatus"
	// ActionDelete removes the row.
	ActionDelete ActionKind = "delete"
)

// Workflow states.
type WorkflowState int

const (
	StateIdle WorkflowState = iota
	// StateConfirmPending holds a captured (row, action) intent while the
	// confirmation dialog is open. No network call has happened yet.
	StateConfirmPending
	// StateSubmitting covers the single mutation attempt.
	StateSubmitting
)

var (
	// ErrNoPendingIntent is returned by Cancel/Confirm outside CONFIRM_PENDING.
	ErrNoPendingIntent = errors.New("no pending row action")
	// ErrBusy is returned by Request while a previous intent is unresolved.
	ErrBusy = errors.New("a row action is already in progress")
)

// Notifier receives the transient user-visible outcome of a mutation.
// Implementations are fire-and-forget; nothing is read back.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Mutator performs the remote mutation for one row, returning the message
// line to surface on success.
type Mutator[T any] func(ctx context.Context, row T, kind ActionKind) (string, error)

// Workflow drives one row-level mutation from captured intent through
// confirmation to completion. Whatever the outcome, the owning collection is
// refetched: displayed state is always re-derived from the server rather
// than patched optimistically.
type Workflow[T any] struct {
	mu    sync.Mutex
	state WorkflowState
	row   T
	kind  ActionKind

	coll   *Client[T]
	mutate Mutator[T]
	notify Notifier
}

// NewWorkflow creates a Workflow bound to the given collection client.
func NewWorkflow[T any](coll *Client[T], mutate Mutator[T], notify Notifier) *Workflow[T] {
	return &Workflow[T]{coll: coll, mutate: mutate, notify: notify}
}

// State returns the current workflow state.
func (w *Workflow[T]) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Request captures a (row, action) intent and opens the confirmation step.
func (w *Workflow[T]) Request(row T, kind ActionKind) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateIdle {
		return ErrBusy
	}
	w.state = StateConfirmPending
	w.row = row
	w.kind = kind
	return nil
}

// Cancel discards the captured intent with no side effects.
func (w *Workflow[T]) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateConfirmPending {
		return ErrNoPendingIntent
	}
	w.reset()
	return nil
}

// Confirm performs the captured mutation: exactly one request, never
// retried. On success and on failure alike the collection is refetched with
// its current query, and the outcome is pushed to the notifier. The intent
// is discarded either way.
func (w *Workflow[T]) Confirm(ctx context.Context) error {
	w.mu.Lock()
	if w.state != StateConfirmPending {
		w.mu.Unlock()
		return ErrNoPendingIntent
	}
	w.state = StateSubmitting
	row := w.row
	kind := w.kind
	w.mu.Unlock()

	msg, err := w.mutate(ctx, row, kind)

	w.mu.Lock()
	w.reset()
	w.mu.Unlock()

	if err != nil {
		if w.notify != nil {
			w.notify.Error(err.Error())
		}
	} else if w.notify != nil {
		w.notify.Success(msg)
	}

	if w.coll != nil {
		w.coll.Refetch()
	}
	return err
}

// reset returns the workflow to IDLE. The caller holds w.mu.
func (w *Workflow[T]) reset() {
	var zero T
	w.state = StateIdle
	w.row = zero
	w.kind = ""
}
