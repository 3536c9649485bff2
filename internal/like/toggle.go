// Package like holds the per-entity like control state machine.
//
// A Toggle starts Unknown with the count its list payload carried, is reconciled once against
// the server, and from then on only ever reflects server truth: there are no optimistic
// updates. At most one toggle request is in flight per instance.
package like

import (
	"context"
	"log/slog"
	"sync"

	"datescore-cli/internal/model"
)

type Phase int

const (
	Unknown Phase = iota
	Synced
	Toggling
)

func (p Phase) String() string {
	switch p {
	case Synced:
		return "synced"
	case Toggling:
		return "toggling"
	default:
		return "unknown"
	}
}

// Service is the part of the API client a Toggle talks to.
type Service interface {
	LikeStatus(ctx context.Context, kind model.LikeKind, id int64, deviceID string) (model.LikeState, error)
	ToggleLike(ctx context.Context, kind model.LikeKind, id int64, deviceID string) (model.LikeState, error)
}

// Change is emitted after a successful toggle so the owning collection can patch its copy.
type Change struct {
	Kind  model.LikeKind
	ID    int64
	Liked bool
	Count int
}

type Toggle struct {
	kind model.LikeKind
	id   int64

	// call serializes Toggle so concurrent activations share one request.
	call sync.Mutex

	mu     sync.Mutex
	phase  Phase
	prior  Phase
	liked  bool
	count  int
	logger *slog.Logger
}

func New(kind model.LikeKind, id int64, initialCount int) *Toggle {
	return &Toggle{
		kind:   kind,
		id:     id,
		count:  initialCount,
		logger: slog.Default(),
	}
}

// WithLogger sets the logger used for failure diagnostics.
func (t *Toggle) WithLogger(l *slog.Logger) *Toggle {
	if l != nil {
		t.logger = l
	}
	return t
}

func (t *Toggle) Kind() model.LikeKind { return t.kind }
func (t *Toggle) ID() int64            { return t.id }

func (t *Toggle) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

// View returns what the control renders.
func (t *Toggle) View() (liked bool, count int, busy bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.liked, t.count, t.phase == Toggling
}

// Reconcile fetches the server state once. On failure the toggle stays Unknown and keeps
// rendering its initial values. A result that lands while a toggle is in flight is dropped.
func (t *Toggle) Reconcile(ctx context.Context, svc Service, deviceID string) error {
	st, err := svc.LikeStatus(ctx, t.kind, t.id, deviceID)
	if err != nil {
		t.logger.Warn("like status failed", "kind", t.kind, "id", t.id, "error", err)
		return err
	}
	t.Apply(st)
	return nil
}

// Apply records a fetched status unless a toggle is in flight.
func (t *Toggle) Apply(st model.LikeState) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.phase == Toggling {
		return false
	}
	t.phase = Synced
	t.liked = st.Liked
	t.count = st.LikeCount
	return true
}

// Begin enters Toggling. It returns false when a toggle is already in flight.
func (t *Toggle) Begin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.phase == Toggling {
		return false
	}
	t.prior = t.phase
	t.phase = Toggling
	return true
}

// Finish completes a toggle started with Begin. On success the new server state is adopted and
// a Change is returned; on failure the prior state is restored untouched.
func (t *Toggle) Finish(st model.LikeState, err error) (Change, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.phase != Toggling {
		return Change{}, false
	}
	if err != nil {
		t.phase = t.prior
		t.logger.Warn("like toggle failed", "kind", t.kind, "id", t.id, "error", err)
		return Change{}, false
	}
	t.phase = Synced
	t.liked = st.Liked
	t.count = st.LikeCount
	return Change{Kind: t.kind, ID: t.id, Liked: st.Liked, Count: st.LikeCount}, true
}

// Toggle performs Begin, the request and Finish. Callers that arrive while a request is in
// flight return immediately with ok=false and no request of their own.
func (t *Toggle) Toggle(ctx context.Context, svc Service, deviceID string) (Change, bool, error) {
	if !t.call.TryLock() {
		return Change{}, false, nil
	}
	defer t.call.Unlock()

	if !t.Begin() {
		return Change{}, false, nil
	}
	st, err := svc.ToggleLike(ctx, t.kind, t.id, deviceID)
	ch, ok := t.Finish(st, err)
	return ch, ok, err
}

// Glyph renders the liked marker.
func Glyph(liked, ascii bool) string {
	switch {
	case ascii && liked:
		return "<3"
	case ascii:
		return "</3"
	case liked:
		return "❤️"
	default:
		return "🤍"
	}
}

func (t *Toggle) Glyph(ascii bool) string {
	liked, _, _ := t.View()
	return Glyph(liked, ascii)
}

// Set keys toggles by entity so a view can keep one per row across refreshes.
type Set struct {
	mu      sync.Mutex
	toggles map[key]*Toggle
	logger  *slog.Logger
}

type key struct {
	kind model.LikeKind
	id   int64
}

func NewSet(logger *slog.Logger) *Set {
	return &Set{toggles: map[key]*Toggle{}, logger: logger}
}

// Get returns the toggle for (kind, id), creating it with initialCount. created reports
// whether it is new and still needs a Reconcile.
func (s *Set) Get(kind model.LikeKind, id int64, initialCount int) (t *Toggle, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{kind, id}
	if t, ok := s.toggles[k]; ok {
		return t, false
	}
	t = New(kind, id, initialCount).WithLogger(s.logger)
	s.toggles[k] = t
	return t, true
}

// Lookup returns an existing toggle.
func (s *Set) Lookup(kind model.LikeKind, id int64) (*Toggle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.toggles[key{kind, id}]
	return t, ok
}

// Reset drops every toggle (view teardown).
func (s *Set) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toggles = map[key]*Toggle{}
}
