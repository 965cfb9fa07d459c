package collection

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
)

type row struct {
	ID   uint
	Name string
}

// recordingFetcher captures every request and serves canned pages.
type recordingFetcher struct {
	mu       sync.Mutex
	requests []Request
	respond  func(req Request) (*domain.PageResult[row], error)
}

func newRecordingFetcher() *recordingFetcher {
	return &recordingFetcher{
		respond: func(req Request) (*domain.PageResult[row], error) {
			return pageOf(req.Page, req.Limit, 100), nil
		},
	}
}

func (f *recordingFetcher) fetch(_ context.Context, req Request) (*domain.PageResult[row], error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	respond := f.respond
	f.mu.Unlock()
	return respond(req)
}

func (f *recordingFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *recordingFetcher) last() Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

// pageOf builds a server-shaped page result for the given 1-based page.
func pageOf(page, limit int, total int64) *domain.PageResult[row] {
	pageCount := int((total + int64(limit) - 1) / int64(limit))
	return &domain.PageResult[row]{
		Items: []row{{ID: uint(page), Name: "row"}},
		Meta: domain.PageMeta{
			Page:            page,
			Limit:           limit,
			Total:           total,
			PageCount:       pageCount,
			HasPreviousPage: page > 1,
			HasNextPage:     page < pageCount,
		},
	}
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func newTestClient(t *testing.T, f *recordingFetcher, opts ...Option[row]) *Client[row] {
	t.Helper()
	base := []Option[row]{WithDebounce[row](0)}
	c := New(f.fetch, append(base, opts...)...)
	t.Cleanup(c.Close)
	return c
}

func TestClient_FirstFetchIsPageOne(t *testing.T) {
	f := newRecordingFetcher()
	c := newTestClient(t, f)

	c.Refetch()
	waitFor(t, func() bool { return f.count() == 1 && !c.Snapshot().Loading })

	req := f.last()
	if req.Page != 1 {
		t.Errorf("wire page = %d, want 1 for local index 0", req.Page)
	}
	if req.Limit != 10 {
		t.Errorf("wire limit = %d, want default page size 10", req.Limit)
	}
}

func TestClient_PageIndexTranslation(t *testing.T) {
	f := newRecordingFetcher()
	c := newTestClient(t, f)

	c.Refetch()
	waitFor(t, func() bool { return f.count() == 1 && !c.Snapshot().Loading })

	c.SetPageIndex(2)
	waitFor(t, func() bool { return f.count() == 2 && !c.Snapshot().Loading })

	if req := f.last(); req.Page != 3 {
		t.Errorf("wire page = %d, want 3 for local index 2", req.Page)
	}
	if snap := c.Snapshot(); snap.Query.PageIndex != 2 {
		t.Errorf("PageIndex = %d, want 2 after server confirms", snap.Query.PageIndex)
	}
}

func TestClient_PageIndexClampedToLastPage(t *testing.T) {
	f := newRecordingFetcher() // total 100, limit 10 → 10 pages
	c := newTestClient(t, f)

	c.Refetch()
	waitFor(t, func() bool { return !c.Snapshot().Loading && c.Snapshot().HasMeta })

	c.SetPageIndex(42)
	waitFor(t, func() bool { return f.count() == 2 && !c.Snapshot().Loading })

	if req := f.last(); req.Page != 10 {
		t.Errorf("wire page = %d, want clamped last page 10", req.Page)
	}
}

func TestClient_NegativePageIndexClampsToZero(t *testing.T) {
	f := newRecordingFetcher()
	c := newTestClient(t, f)

	c.Refetch()
	waitFor(t, func() bool { return !c.Snapshot().Loading })

	// Already on page 0; clamping makes this a no-op, so no new fetch.
	c.PreviousPage()
	time.Sleep(20 * time.Millisecond)
	if f.count() != 1 {
		t.Errorf("fetch count = %d, want 1 (previous page from page 0 is a no-op)", f.count())
	}
}

func TestClient_SetPageSize(t *testing.T) {
	f := newRecordingFetcher()
	c := newTestClient(t, f)

	c.SetPageSize(20)
	waitFor(t, func() bool { return f.count() == 1 && !c.Snapshot().Loading })
	if req := f.last(); req.Limit != 20 {
		t.Errorf("wire limit = %d, want 20", req.Limit)
	}

	// Sizes outside the allowed set are ignored entirely.
	c.SetPageSize(25)
	time.Sleep(20 * time.Millisecond)
	if f.count() != 1 {
		t.Errorf("fetch count = %d, want 1 (disallowed size ignored)", f.count())
	}
	if snap := c.Snapshot(); snap.Query.PageSize != 20 {
		t.Errorf("PageSize = %d, want unchanged 20", snap.Query.PageSize)
	}
}

func TestClient_SetPageSizeClampsDeepPageIndex(t *testing.T) {
	f := newRecordingFetcher() // total 100, limit 10 → 10 pages
	c := newTestClient(t, f)

	c.Refetch()
	waitFor(t, func() bool { return c.Snapshot().HasMeta })
	c.SetPageIndex(9)
	waitFor(t, func() bool { return f.count() == 2 && !c.Snapshot().Loading })

	// Enlarging the size shrinks the result to 2 pages; the deep index must
	// be pulled back so we never request past the end.
	c.SetPageSize(50)
	waitFor(t, func() bool { return f.count() == 3 && !c.Snapshot().Loading })

	req := f.last()
	if req.Limit != 50 {
		t.Errorf("wire limit = %d, want 50", req.Limit)
	}
	if req.Page != 2 {
		t.Errorf("wire page = %d, want 2 (last page of 100 rows at size 50)", req.Page)
	}
}

func TestClient_SearchDebounceCollapsesBurst(t *testing.T) {
	f := newRecordingFetcher()
	c := newTestClient(t, f, WithDebounce[row](30*time.Millisecond))

	c.SetSearch("a")
	c.SetSearch("al")
	c.SetSearch("alice")

	waitFor(t, func() bool { return f.count() == 1 && !c.Snapshot().Loading })
	time.Sleep(60 * time.Millisecond)

	if f.count() != 1 {
		t.Fatalf("fetch count = %d, want 1 (burst must collapse)", f.count())
	}
	if req := f.last(); req.Search != "alice" {
		t.Errorf("wire search = %q, want final term %q", req.Search, "alice")
	}
}

func TestClient_SearchResetsPageIndex(t *testing.T) {
	f := newRecordingFetcher()
	c := newTestClient(t, f)

	c.Refetch()
	waitFor(t, func() bool { return !c.Snapshot().Loading && c.Snapshot().HasMeta })
	c.SetPageIndex(4)
	waitFor(t, func() bool { return f.count() == 2 && !c.Snapshot().Loading })

	c.SetSearch("bob")
	waitFor(t, func() bool { return f.count() == 3 && !c.Snapshot().Loading })

	req := f.last()
	if req.Page != 1 {
		t.Errorf("wire page = %d, want 1 (search resets page)", req.Page)
	}
	if req.Search != "bob" {
		t.Errorf("wire search = %q, want %q", req.Search, "bob")
	}
}

func TestClient_SameSearchTermDoesNotRefetch(t *testing.T) {
	f := newRecordingFetcher()
	c := newTestClient(t, f)

	c.SetSearch("alice")
	waitFor(t, func() bool { return f.count() == 1 && !c.Snapshot().Loading })

	c.SetSearch("alice")
	time.Sleep(20 * time.Millisecond)
	if f.count() != 1 {
		t.Errorf("fetch count = %d, want 1 (unchanged term is a no-op)", f.count())
	}
}

func TestClient_FilterLifecycle(t *testing.T) {
	f := newRecordingFetcher()
	c := newTestClient(t, f)

	// Clearing an absent filter is a no-op.
	c.SetFilter("isActive", "")
	time.Sleep(20 * time.Millisecond)
	if f.count() != 0 {
		t.Fatalf("fetch count = %d, want 0", f.count())
	}

	c.SetFilter("isActive", "true")
	waitFor(t, func() bool { return f.count() == 1 && !c.Snapshot().Loading })
	if req := f.last(); req.Filters["isActive"] != "true" {
		t.Errorf("wire filters = %v, want isActive=true", req.Filters)
	}

	// Setting the same value again is a no-op.
	c.SetFilter("isActive", "true")
	time.Sleep(20 * time.Millisecond)
	if f.count() != 1 {
		t.Fatalf("fetch count = %d, want 1", f.count())
	}

	// Empty value clears the filter.
	c.SetFilter("isActive", "")
	waitFor(t, func() bool { return f.count() == 2 && !c.Snapshot().Loading })
	if req := f.last(); len(req.Filters) != 0 {
		t.Errorf("wire filters = %v, want empty after clearing", req.Filters)
	}
}

func TestClient_ClearFilters(t *testing.T) {
	f := newRecordingFetcher()
	c := newTestClient(t, f)

	c.SetSearch("alice")
	waitFor(t, func() bool { return f.count() == 1 && !c.Snapshot().Loading })
	c.SetFilter("kycStatus", "pending")
	waitFor(t, func() bool { return f.count() == 2 && !c.Snapshot().Loading })

	c.ClearFilters()
	waitFor(t, func() bool { return f.count() == 3 && !c.Snapshot().Loading })

	req := f.last()
	if req.Search != "" || len(req.Filters) != 0 || req.Page != 1 {
		t.Errorf("wire request after clear = %+v, want empty search/filters and page 1", req)
	}
}

func TestClient_ErrorKeepsPreviousItems(t *testing.T) {
	f := newRecordingFetcher()
	c := newTestClient(t, f)

	c.Refetch()
	waitFor(t, func() bool { return !c.Snapshot().Loading && len(c.Snapshot().Items) == 1 })

	f.mu.Lock()
	f.respond = func(Request) (*domain.PageResult[row], error) {
		return nil, errors.New("backend unavailable")
	}
	f.mu.Unlock()

	c.Refetch()
	waitFor(t, func() bool {
		snap := c.Snapshot()
		return !snap.Loading && snap.Err != nil
	})

	snap := c.Snapshot()
	if len(snap.Items) != 1 {
		t.Errorf("items = %d rows, want previous page retained on error", len(snap.Items))
	}
}

func TestClient_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex

	fetch := func(_ context.Context, req Request) (*domain.PageResult[row], error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			// First request stalls until after the second completes.
			<-release
			p := pageOf(req.Page, req.Limit, 100)
			p.Items = []row{{ID: 1, Name: "stale"}}
			return p, nil
		}
		p := pageOf(req.Page, req.Limit, 100)
		p.Items = []row{{ID: 2, Name: "fresh"}}
		return p, nil
	}

	c := New(fetch, WithDebounce[row](0))
	defer c.Close()

	c.Refetch()
	waitFor(t, func() bool { mu.Lock(); defer mu.Unlock(); return calls == 1 })

	c.Refetch()
	waitFor(t, func() bool {
		snap := c.Snapshot()
		return !snap.Loading && len(snap.Items) == 1 && snap.Items[0].Name == "fresh"
	})

	// Now let the first, superseded response land.
	close(release)
	time.Sleep(30 * time.Millisecond)

	if snap := c.Snapshot(); snap.Items[0].Name != "fresh" {
		t.Errorf("items = %v, stale response must not overwrite the newer one", snap.Items)
	}
}

func TestClient_ServerMetaIsAuthoritative(t *testing.T) {
	f := newRecordingFetcher()
	// The server clamps every request to page 2 of 2.
	f.respond = func(req Request) (*domain.PageResult[row], error) {
		return pageOf(2, req.Limit, 15), nil
	}
	c := newTestClient(t, f)

	c.Refetch()
	waitFor(t, func() bool { return !c.Snapshot().Loading && c.Snapshot().HasMeta })

	snap := c.Snapshot()
	if snap.Query.PageIndex != 1 {
		t.Errorf("PageIndex = %d, want 1 (reconciled from server meta page 2)", snap.Query.PageIndex)
	}
	if snap.Meta.HasNextPage {
		t.Error("HasNextPage should be false on the last page")
	}
	if !snap.Meta.HasPreviousPage {
		t.Error("HasPreviousPage should be true on page 2")
	}
}

func TestClient_OnChangeDeliversSnapshot(t *testing.T) {
	f := newRecordingFetcher()

	var mu sync.Mutex
	var got []Snapshot[row]
	c := newTestClient(t, f, WithOnChange(func(s Snapshot[row]) {
		mu.Lock()
		got = append(got, s)
		mu.Unlock()
	}))

	c.Refetch()
	waitFor(t, func() bool { mu.Lock(); defer mu.Unlock(); return len(got) == 1 })

	mu.Lock()
	defer mu.Unlock()
	if got[0].Loading {
		t.Error("snapshot delivered to onChange should be settled")
	}
	if !got[0].HasMeta {
		t.Error("snapshot should carry server meta")
	}
}

func TestDebouncer_ZeroDelayRunsSynchronously(t *testing.T) {
	d := NewDebouncer(0)
	ran := false
	d.Arm(func() { ran = true })
	if !ran {
		t.Error("zero-delay Arm should run synchronously")
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var mu sync.Mutex
	ran := false
	d.Arm(func() { mu.Lock(); ran = true; mu.Unlock() })
	d.Stop()

	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if ran {
		t.Error("stopped debouncer should not fire")
	}
}
