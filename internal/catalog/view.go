package catalog

import (
	"context"
	"sync"

	"sweetshop-web/internal/api"
	"sweetshop-web/internal/models"
	"sweetshop-web/pkg/errors"

	"go.uber.org/zap"
)

// View is the browsable catalog one browser session sees: its own snapshot of
// the inventory, the active filter criteria, and any pending notice. Views
// never share snapshots with each other; every view refetches independently
// after each of its own mutations.
type View struct {
	mu     sync.Mutex
	client api.Client
	token  string
	logger *zap.Logger

	snapshot []models.Sweet
	criteria FilterCriteria
	loaded   bool
	loadErr  *errors.UIError
	notice   string

	// Request sequencing: a response from an older Load must not overwrite
	// the snapshot installed by a newer one.
	issuedSeq  uint64
	appliedSeq uint64
}

// NewView creates a catalog view bound to one session's token
func NewView(client api.Client, token string, logger *zap.Logger) *View {
	return &View{
		client: client,
		token:  token,
		logger: logger,
	}
}

// EnsureLoaded fetches the snapshot on first display. Later displays render
// whatever the view last installed; only mutations trigger refetches.
func (v *View) EnsureLoaded(ctx context.Context) {
	v.mu.Lock()
	loaded := v.loaded
	v.mu.Unlock()
	if !loaded {
		v.Load(ctx)
	}
}

// Load requests the full sweet list and installs it as the authoritative
// snapshot. Stale responses are dropped by sequence number.
func (v *View) Load(ctx context.Context) {
	v.mu.Lock()
	v.issuedSeq++
	seq := v.issuedSeq
	v.mu.Unlock()

	sweets, err := v.client.ListSweets(ctx, v.token)

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq <= v.appliedSeq {
		v.logger.Debug("Dropping stale catalog load", zap.Uint64("seq", seq), zap.Uint64("applied", v.appliedSeq))
		return
	}
	v.appliedSeq = seq
	v.loaded = true

	if err != nil {
		v.logger.Warn("Failed to fetch sweets", zap.Error(err))
		v.loadErr = errors.NewLoadFailure(err)
		return
	}

	v.loadErr = nil
	v.snapshot = sweets
}

// Purchase delegates to the sweets API and refetches the snapshot on success
// so displayed quantities always reflect server truth. No local decrement is
// applied; on failure local state is left unchanged and a generic notice is
// queued.
func (v *View) Purchase(ctx context.Context, id string, quantity int) error {
	if err := v.client.PurchaseSweet(ctx, v.token, id, quantity); err != nil {
		v.logger.Warn("Purchase failed", zap.String("sweet_id", id), zap.Int("quantity", quantity), zap.Error(err))
		uiErr := errors.NewMutationFailure(errors.MsgPurchaseFailed, "", err)
		v.setNotice(uiErr.Message)
		return uiErr
	}

	v.logger.Info("Purchase succeeded", zap.String("sweet_id", id), zap.Int("quantity", quantity))
	v.Load(ctx)
	return nil
}

// SetCriteria replaces the filter criteria. Filtering itself is pure and
// recomputed on render.
func (v *View) SetCriteria(c FilterCriteria) {
	v.mu.Lock()
	v.criteria = c
	v.mu.Unlock()
}

// ClearFilters resets all criteria, restoring the full snapshot as the view
func (v *View) ClearFilters() {
	v.SetCriteria(FilterCriteria{})
}

// Criteria returns the active filter criteria
func (v *View) Criteria() FilterCriteria {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria
}

// Snapshot returns the full item list from the most recent fetch
func (v *View) Snapshot() []models.Sweet {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot
}

// Visible derives the filtered view from the snapshot and criteria
func (v *View) Visible() []models.Sweet {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Filter(v.snapshot, v.criteria)
}

// Categories returns the filter choices derived from the snapshot
func (v *View) Categories() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Categories(v.snapshot)
}

// Find returns the snapshot item with the given ID, if present
func (v *View) Find(id string) (models.Sweet, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, s := range v.snapshot {
		if s.ID == id {
			return s, true
		}
	}
	return models.Sweet{}, false
}

// LoadError returns the persistent load-failure banner, if any
func (v *View) LoadError() *errors.UIError {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loadErr
}

// Notice returns and clears the pending one-shot notice
func (v *View) Notice() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	notice := v.notice
	v.notice = ""
	return notice
}

// SetNotice queues a one-shot notice for the next render
func (v *View) SetNotice(notice string) {
	v.setNotice(notice)
}

func (v *View) setNotice(notice string) {
	v.mu.Lock()
	v.notice = notice
	v.mu.Unlock()
}
