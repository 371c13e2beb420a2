package admin

import (
	"context"
	"sync"

	"sweetshop-web/internal/api"
	"sweetshop-web/internal/models"
	"sweetshop-web/pkg/errors"

	"go.uber.org/zap"
)

// Metrics are the at-a-glance inventory health numbers shown above the
// management table
type Metrics struct {
	Total      int
	LowStock   int
	OutOfStock int
}

// ComputeMetrics derives the health metrics from a snapshot. The thresholds
// come from the same predicates as the per-row status labels, so the two
// cannot drift apart.
func ComputeMetrics(snapshot []models.Sweet) Metrics {
	m := Metrics{Total: len(snapshot)}
	for _, s := range snapshot {
		switch {
		case s.IsOutOfStock():
			m.OutOfStock++
		case s.IsLowStock():
			m.LowStock++
		}
	}
	return m
}

// View is the management table one admin session sees: its own snapshot,
// the restock state machine, and the add/edit modal pointers. Like the
// catalog, it owns its copy of the inventory and refetches after every
// mutation.
type View struct {
	mu     sync.Mutex
	client api.Client
	token  string
	logger *zap.Logger

	snapshot []models.Sweet
	loaded   bool
	loadErr  *errors.UIError
	notice   string

	restock   RestockState
	editingID string // single "currently editing" pointer for the edit form
	adding    bool

	issuedSeq  uint64
	appliedSeq uint64
}

// NewView creates an admin view bound to one session's token
func NewView(client api.Client, token string, logger *zap.Logger) *View {
	return &View{
		client: client,
		token:  token,
		logger: logger,
	}
}

// EnsureLoaded fetches the snapshot on first display
func (v *View) EnsureLoaded(ctx context.Context) {
	v.mu.Lock()
	loaded := v.loaded
	v.mu.Unlock()
	if !loaded {
		v.Load(ctx)
	}
}

// Load requests the full sweet list, dropping stale responses by sequence
// number
func (v *View) Load(ctx context.Context) {
	v.mu.Lock()
	v.issuedSeq++
	seq := v.issuedSeq
	v.mu.Unlock()

	sweets, err := v.client.ListSweets(ctx, v.token)

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq <= v.appliedSeq {
		v.logger.Debug("Dropping stale admin load", zap.Uint64("seq", seq), zap.Uint64("applied", v.appliedSeq))
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

// Delete removes a sweet. The interactive confirmation happens in the page
// before this is ever called. On success the snapshot is refetched; on
// failure the server message (or the generic fallback) is queued as a notice.
func (v *View) Delete(ctx context.Context, id string) error {
	if err := v.client.DeleteSweet(ctx, v.token, id); err != nil {
		v.logger.Warn("Delete failed", zap.String("sweet_id", id), zap.Error(err))
		uiErr := errors.NewMutationFailure(errors.MsgDeleteFailed, api.ServerMessage(err), err)
		v.setNotice(uiErr.Message)
		return uiErr
	}

	v.logger.Info("Sweet deleted", zap.String("sweet_id", id))
	v.Load(ctx)
	return nil
}

// BeginRestock opens the inline restock input for one row, implicitly
// cancelling any other row's edit
func (v *View) BeginRestock(id string) {
	v.mu.Lock()
	v.restock.Begin(id)
	v.mu.Unlock()
}

// CancelRestock exits restock-edit mode
func (v *View) CancelRestock() {
	v.mu.Lock()
	v.restock.Cancel()
	v.mu.Unlock()
}

// RestockEditing reports whether the given row is in restock-edit mode
func (v *View) RestockEditing(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.restock.Editing(id)
}

// RestockDraft returns the pending quantity input for re-rendering after a
// failed submission
func (v *View) RestockDraft() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.restock.Draft()
}

// Restock submits the inline restock input. Invalid quantities are rejected
// here with no request sent and the row stays in edit mode; server failures
// also keep the row editing so the admin can retry. Success exits edit mode
// and refetches the snapshot.
func (v *View) Restock(ctx context.Context, id, rawQuantity string) error {
	v.mu.Lock()
	v.restock.SetDraft(rawQuantity)
	v.mu.Unlock()

	quantity, err := ParseQuantity(rawQuantity)
	if err != nil {
		v.setNotice(err.Error())
		return err
	}

	if err := v.client.RestockSweet(ctx, v.token, id, quantity); err != nil {
		v.logger.Warn("Restock failed", zap.String("sweet_id", id), zap.Int("quantity", quantity), zap.Error(err))
		uiErr := errors.NewMutationFailure(errors.MsgRestockFailed, api.ServerMessage(err), err)
		v.setNotice(uiErr.Message)
		return uiErr
	}

	v.logger.Info("Sweet restocked", zap.String("sweet_id", id), zap.Int("quantity", quantity))
	v.CancelRestock()
	v.Load(ctx)
	return nil
}

// StartEdit points the edit form at one sweet; only one may be edited at a
// time
func (v *View) StartEdit(id string) {
	v.mu.Lock()
	v.editingID = id
	v.adding = false
	v.mu.Unlock()
}

// CloseEdit dismisses the edit form
func (v *View) CloseEdit() {
	v.mu.Lock()
	v.editingID = ""
	v.mu.Unlock()
}

// Editing returns the sweet currently being edited, if any
func (v *View) Editing() (models.Sweet, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.editingID == "" {
		return models.Sweet{}, false
	}
	for _, s := range v.snapshot {
		if s.ID == v.editingID {
			return s, true
		}
	}
	return models.Sweet{}, false
}

// StartAdd opens the add form (no associated item)
func (v *View) StartAdd() {
	v.mu.Lock()
	v.adding = true
	v.editingID = ""
	v.mu.Unlock()
}

// CloseAdd dismisses the add form
func (v *View) CloseAdd() {
	v.mu.Lock()
	v.adding = false
	v.mu.Unlock()
}

// Adding reports whether the add form is open
func (v *View) Adding() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.adding
}

// Create submits a new sweet; on success the add form closes and the
// snapshot is refetched
func (v *View) Create(ctx context.Context, fields models.SweetFields) error {
	if _, err := v.client.CreateSweet(ctx, v.token, fields); err != nil {
		v.logger.Warn("Create failed", zap.String("name", fields.Name), zap.Error(err))
		uiErr := errors.NewMutationFailure("Failed to save sweet", api.ServerMessage(err), err)
		v.setNotice(uiErr.Message)
		return uiErr
	}

	v.logger.Info("Sweet created", zap.String("name", fields.Name))
	v.CloseAdd()
	v.Load(ctx)
	return nil
}

// Update overwrites a sweet's attributes; on success the edit form closes
// and the snapshot is refetched
func (v *View) Update(ctx context.Context, id string, fields models.SweetFields) error {
	if _, err := v.client.UpdateSweet(ctx, v.token, id, fields); err != nil {
		v.logger.Warn("Update failed", zap.String("sweet_id", id), zap.Error(err))
		uiErr := errors.NewMutationFailure("Failed to save sweet", api.ServerMessage(err), err)
		v.setNotice(uiErr.Message)
		return uiErr
	}

	v.logger.Info("Sweet updated", zap.String("sweet_id", id))
	v.CloseEdit()
	v.Load(ctx)
	return nil
}

// Snapshot returns the full item list from the most recent fetch
func (v *View) Snapshot() []models.Sweet {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot
}

// Metrics recomputes the health metrics from the current snapshot
func (v *View) Metrics() Metrics {
	v.mu.Lock()
	defer v.mu.Unlock()
	return ComputeMetrics(v.snapshot)
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
