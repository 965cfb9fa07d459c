package collection

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errs      []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errs = append(n.errs, msg)
}

func newWorkflowFixture(t *testing.T, mutate Mutator[row]) (*Workflow[row], *recordingFetcher, *recordingNotifier) {
	t.Helper()
	f := newRecordingFetcher()
	c := newTestClient(t, f)
	n := &recordingNotifier{}
	return NewWorkflow(c, mutate, n), f, n
}

func TestWorkflow_RequestCancelLeavesNoTrace(t *testing.T) {
	var mutations int
	w, f, n := newWorkflowFixture(t, func(context.Context, row, ActionKind) (string, error) {
		mutations++
		return "done", nil
	})

	if err := w.Request(row{ID: 7}, ActionDelete); err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if got := w.State(); got != StateConfirmPending {
		t.Fatalf("state = %v, want StateConfirmPending", got)
	}

	if err := w.Cancel(); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if got := w.State(); got != StateIdle {
		t.Errorf("state = %v, want StateIdle after cancel", got)
	}
	if mutations != 0 {
		t.Errorf("mutations = %d, want 0 (cancel must not touch the backend)", mutations)
	}
	if f.count() != 0 {
		t.Errorf("fetch count = %d, want 0 (cancel must not refetch)", f.count())
	}
	if len(n.successes)+len(n.errs) != 0 {
		t.Error("cancel must not notify")
	}
}

func TestWorkflow_ConfirmSuccessMutatesOnceAndRefetches(t *testing.T) {
	var mu sync.Mutex
	var mutated []ActionKind
	w, f, n := newWorkflowFixture(t, func(_ context.Context, r row, kind ActionKind) (string, error) {
		mu.Lock()
		mutated = append(mutated, kind)
		mu.Unlock()
		if r.ID != 7 {
			t.Errorf("mutator row ID = %d, want captured row 7", r.ID)
		}
		return "user deactivated", nil
	})

	if err := w.Request(row{ID: 7}, ActionChangeStatus); err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if err := w.Confirm(context.Background()); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	mu.Lock()
	if len(mutated) != 1 || mutated[0] != ActionChangeStatus {
		t.Errorf("mutations = %v, want exactly one changeStatus", mutated)
	}
	mu.Unlock()

	if got := w.State(); got != StateIdle {
		t.Errorf("state = %v, want StateIdle after confirm", got)
	}
	if len(n.successes) != 1 || n.successes[0] != "user deactivated" {
		t.Errorf("success notifications = %v, want the mutator's message", n.successes)
	}

	waitFor(t, func() bool { return f.count() == 1 })
}

func TestWorkflow_ConfirmFailureStillRefetches(t *testing.T) {
	w, f, n := newWorkflowFixture(t, func(context.Context, row, ActionKind) (string, error) {
		return "", errors.New("wallet still holds funds")
	})

	if err := w.Request(row{ID: 3}, ActionDelete); err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	err := w.Confirm(context.Background())
	if err == nil || err.Error() != "wallet still holds funds" {
		t.Fatalf("Confirm() error = %v, want the mutator's error", err)
	}

	if got := w.State(); got != StateIdle {
		t.Errorf("state = %v, want StateIdle (failed mutation is not retried)", got)
	}
	if len(n.errs) != 1 || n.errs[0] != "wallet still holds funds" {
		t.Errorf("error notifications = %v, want the failure message", n.errs)
	}
	// The list is refetched even on failure so the view reflects the server.
	waitFor(t, func() bool { return f.count() == 1 })
}

func TestWorkflow_RequestWhileBusy(t *testing.T) {
	w, _, _ := newWorkflowFixture(t, func(context.Context, row, ActionKind) (string, error) {
		return "ok", nil
	})

	if err := w.Request(row{ID: 1}, ActionDelete); err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if err := w.Request(row{ID: 2}, ActionDelete); !errors.Is(err, ErrBusy) {
		t.Errorf("second Request() error = %v, want ErrBusy", err)
	}
}

func TestWorkflow_ConfirmAndCancelRequirePendingIntent(t *testing.T) {
	w, _, _ := newWorkflowFixture(t, func(context.Context, row, ActionKind) (string, error) {
		return "ok", nil
	})

	if err := w.Cancel(); !errors.Is(err, ErrNoPendingIntent) {
		t.Errorf("Cancel() error = %v, want ErrNoPendingIntent", err)
	}
	if err := w.Confirm(context.Background()); !errors.Is(err, ErrNoPendingIntent) {
		t.Errorf("Confirm() error = %v, want ErrNoPendingIntent", err)
	}
}
