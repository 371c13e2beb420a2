package catalog

import (
	"context"
	"testing"

	"sweetshop-web/internal/api"
	"sweetshop-web/internal/models"
	"sweetshop-web/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestView_LoadInstallsSnapshot(t *testing.T) {
	mockAPI := new(api.MockClient)
	view := NewView(mockAPI, "tok", zap.NewNop())

	sweets := sampleSnapshot()
	mockAPI.On("ListSweets", mock.Anything, "tok").Return(sweets, nil).Once()

	view.EnsureLoaded(context.Background())

	assert.Nil(t, view.LoadError())
	assert.Equal(t, sweets, view.Snapshot())
	assert.Equal(t, sweets, view.Visible())

	// A second EnsureLoaded must not refetch
	view.EnsureLoaded(context.Background())
	mockAPI.AssertExpectations(t)
}

func TestView_LoadFailureSurfacesBanner(t *testing.T) {
	mockAPI := new(api.MockClient)
	view := NewView(mockAPI, "tok", zap.NewNop())

	mockAPI.On("ListSweets", mock.Anything, "tok").Return(nil, assert.AnError)

	view.Load(context.Background())

	loadErr := view.LoadError()
	require.NotNil(t, loadErr)
	assert.Equal(t, errors.MsgFetchFailed, loadErr.Message)
	assert.Empty(t, view.Snapshot())
}

func TestView_StaleLoadCannotOverwriteNewer(t *testing.T) {
	mockAPI := new(api.MockClient)
	view := NewView(mockAPI, "tok", zap.NewNop())

	fresh := []models.Sweet{{ID: "1", Name: "Fresh", Category: "Candy"}}
	stale := []models.Sweet{{ID: "1", Name: "Stale", Category: "Candy"}}

	// First Load resolves after the second: drive the sequencing directly.
	view.mu.Lock()
	view.issuedSeq++
	firstSeq := view.issuedSeq
	view.mu.Unlock()

	// Second Load starts and resolves first
	mockAPI.On("ListSweets", mock.Anything, "tok").Return(fresh, nil).Once()
	view.Load(context.Background())
	assert.Equal(t, fresh, view.Snapshot())

	// The older response now arrives; it must be dropped
	view.mu.Lock()
	isStale := firstSeq <= view.appliedSeq
	if !isStale {
		view.snapshot = stale
	}
	view.mu.Unlock()

	assert.True(t, isStale)
	assert.Equal(t, fresh, view.Snapshot())
}

func TestView_PurchaseReloadsOnSuccess(t *testing.T) {
	mockAPI := new(api.MockClient)
	view := NewView(mockAPI, "tok", zap.NewNop())

	before := []models.Sweet{{ID: "1", Name: "Chocolate Bar", Category: "Candy", Quantity: 10}}
	after := []models.Sweet{{ID: "1", Name: "Chocolate Bar", Category: "Candy", Quantity: 7}}

	mockAPI.On("ListSweets", mock.Anything, "tok").Return(before, nil).Once()
	view.Load(context.Background())

	mockAPI.On("PurchaseSweet", mock.Anything, "tok", "1", 3).Return(nil)
	mockAPI.On("ListSweets", mock.Anything, "tok").Return(after, nil).Once()

	err := view.Purchase(context.Background(), "1", 3)
	require.NoError(t, err)

	// Quantities come from the refetched server truth, not a local decrement
	assert.Equal(t, after, view.Snapshot())
	mockAPI.AssertExpectations(t)
}

func TestView_PurchaseFailureLeavesStateUnchanged(t *testing.T) {
	mockAPI := new(api.MockClient)
	view := NewView(mockAPI, "tok", zap.NewNop())

	before := []models.Sweet{{ID: "1", Name: "Chocolate Bar", Category: "Candy", Quantity: 10}}
	mockAPI.On("ListSweets", mock.Anything, "tok").Return(before, nil).Once()
	view.Load(context.Background())

	mockAPI.On("PurchaseSweet", mock.Anything, "tok", "1", 3).Return(
		&api.APIError{StatusCode: 400, Message: "insufficient stock"})

	err := view.Purchase(context.Background(), "1", 3)
	require.Error(t, err)

	// Purchase failures always use the generic notice, never the server text
	assert.Equal(t, errors.MsgPurchaseFailed, view.Notice())
	assert.Equal(t, before, view.Snapshot())
	// Notice is one-shot
	assert.Empty(t, view.Notice())
	mockAPI.AssertExpectations(t)
}

func TestView_ClearFiltersRestoresFullSnapshot(t *testing.T) {
	mockAPI := new(api.MockClient)
	view := NewView(mockAPI, "tok", zap.NewNop())

	sweets := sampleSnapshot()
	mockAPI.On("ListSweets", mock.Anything, "tok").Return(sweets, nil)
	view.Load(context.Background())

	view.SetCriteria(FilterCriteria{Search: "cho"})
	assert.Len(t, view.Visible(), 2)

	view.ClearFilters()
	assert.Equal(t, sweets, view.Visible())
	assert.True(t, view.Criteria().IsZero())
}
