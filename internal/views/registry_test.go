package views

import (
	"testing"
	"time"

	"sweetshop-web/internal/api"
	"sweetshop-web/internal/session"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRegistry_ViewsAreSessionScoped(t *testing.T) {
	registry := NewRegistry(new(api.MockClient), zap.NewNop(), time.Hour)

	alice := &session.Session{ID: "s1", Token: "tok-a"}
	bob := &session.Session{ID: "s2", Token: "tok-b"}

	// Same session gets the same view back; different sessions never share
	assert.Same(t, registry.CatalogFor(alice), registry.CatalogFor(alice))
	assert.NotSame(t, registry.CatalogFor(alice), registry.CatalogFor(bob))

	// Catalog and admin views of one session are independent instances
	assert.NotNil(t, registry.AdminFor(alice))
}

func TestRegistry_DropDiscardsViews(t *testing.T) {
	registry := NewRegistry(new(api.MockClient), zap.NewNop(), time.Hour)

	sess := &session.Session{ID: "s1", Token: "tok"}
	first := registry.CatalogFor(sess)

	registry.Drop("s1")

	assert.NotSame(t, first, registry.CatalogFor(sess))
}

func TestRegistry_NewTokenReplacesViews(t *testing.T) {
	registry := NewRegistry(new(api.MockClient), zap.NewNop(), time.Hour)

	before := registry.CatalogFor(&session.Session{ID: "s1", Token: "old"})
	after := registry.CatalogFor(&session.Session{ID: "s1", Token: "new"})

	assert.NotSame(t, before, after)
}
