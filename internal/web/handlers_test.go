package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"sweetshop-web/internal/api"
	"sweetshop-web/internal/config"
	"sweetshop-web/internal/models"
	"sweetshop-web/internal/session"
	"sweetshop-web/internal/views"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCookie = "sweetshop_session"

type testServer struct {
	router   *gin.Engine
	sessions *session.Manager
	client   *api.MockClient
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client := new(api.MockClient)
	log := zap.NewNop()
	cfg := &config.Config{
		Environment:   "test",
		SessionCookie: testCookie,
	}
	sessions := session.NewManager(session.NewInMemoryStore(log), client, log, time.Hour)
	registry := views.NewRegistry(client, log, time.Hour)

	return &testServer{
		router:   NewRouter(cfg, log, sessions, registry),
		sessions: sessions,
		client:   client,
	}
}

// authenticate establishes a session directly through the manager and returns
// the cookie to attach to requests
func (ts *testServer) authenticate(t *testing.T, role string) *http.Cookie {
	t.Helper()
	ts.client.On("Login", mock.Anything, "user@example.com", "pw").Return(&api.AuthResult{
		Token: "tok",
		User:  api.User{Username: "user", Email: "user@example.com", Role: role},
	}, nil).Once()

	sess, err := ts.sessions.Login(context.Background(), "user@example.com", "pw")
	require.NoError(t, err)
	return &http.Cookie{Name: testCookie, Value: sess.ID}
}

func (ts *testServer) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) post(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func sampleSweets() []models.Sweet {
	return []models.Sweet{
		{ID: "1", Name: "Chocolate Bar", Category: "Chocolate", Price: 2.5, Quantity: 50},
		{ID: "2", Name: "Gummy Bears", Category: "Candy", Price: 1.99, Quantity: 15},
		{ID: "3", Name: "Fudge", Category: "Bakery", Price: 4.0, Quantity: 0},
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	w := ts.get("/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestHome_RedirectsByAuthState(t *testing.T) {
	ts := newTestServer(t)

	w := ts.get("/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cookie := ts.authenticate(t, "user")
	w = ts.get("/", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestDashboard_RequiresSession(t *testing.T) {
	ts := newTestServer(t)

	w := ts.get("/dashboard", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestDashboard_RendersCatalog(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.authenticate(t, "user")
	ts.client.On("ListSweets", mock.Anything, "tok").Return(sampleSweets(), nil)

	w := ts.get("/dashboard", cookie)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Chocolate Bar")
	assert.Contains(t, body, "Gummy Bears")
	assert.Contains(t, body, "Out of Stock")
	assert.Contains(t, body, "Welcome, user")
	assert.NotContains(t, body, "Admin Panel")
}

func TestDashboard_AdminSeesPanelLink(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.authenticate(t, "admin")
	ts.client.On("ListSweets", mock.Anything, "tok").Return(sampleSweets(), nil)

	w := ts.get("/dashboard", cookie)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Admin Panel")
}

func TestDashboard_FilterNarrowsAndClearRestores(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.authenticate(t, "user")
	ts.client.On("ListSweets", mock.Anything, "tok").Return(sampleSweets(), nil)

	w := ts.post("/dashboard/filter", url.Values{"search": {"gummy"}}, cookie)
	require.Equal(t, http.StatusFound, w.Code)

	body := ts.get("/dashboard", cookie).Body.String()
	assert.Contains(t, body, "Gummy Bears")
	assert.NotContains(t, body, "Chocolate Bar")

	w = ts.post("/dashboard/clear", nil, cookie)
	require.Equal(t, http.StatusFound, w.Code)

	body = ts.get("/dashboard", cookie).Body.String()
	assert.Contains(t, body, "Chocolate Bar")
}

func TestDashboard_LoadFailureShowsBanner(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.authenticate(t, "user")
	ts.client.On("ListSweets", mock.Anything, "tok").Return(nil,
		&api.APIError{StatusCode: 500})

	w := ts.get("/dashboard", cookie)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch sweets")
}

func TestPurchase_SuccessRefetches(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.authenticate(t, "user")

	ts.client.On("ListSweets", mock.Anything, "tok").Return(sampleSweets(), nil).Once()
	ts.get("/dashboard", cookie)

	ts.client.On("PurchaseSweet", mock.Anything, "tok", "1", 2).Return(nil)
	ts.client.On("ListSweets", mock.Anything, "tok").Return(sampleSweets(), nil).Once()

	w := ts.post("/sweets/1/purchase", url.Values{"quantity": {"2"}}, cookie)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	ts.client.AssertExpectations(t)
}

func TestPurchase_InvalidQuantityNeverCallsAPI(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.authenticate(t, "user")

	ts.client.On("ListSweets", mock.Anything, "tok").Return(sampleSweets(), nil).Once()
	ts.get("/dashboard", cookie)

	// Exceeds stock of Gummy Bears (15)
	w := ts.post("/sweets/2/purchase", url.Values{"quantity": {"100"}}, cookie)
	require.Equal(t, http.StatusFound, w.Code)

	body := ts.get("/dashboard", cookie).Body.String()
	assert.Contains(t, body, "Please enter a valid quantity")
	ts.client.AssertNotCalled(t, "PurchaseSweet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchase_FailureShowsGenericNoticeOnce(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.authenticate(t, "user")

	ts.client.On("ListSweets", mock.Anything, "tok").Return(sampleSweets(), nil)
	ts.get("/dashboard", cookie)

	ts.client.On("PurchaseSweet", mock.Anything, "tok", "1", 1).Return(
		&api.APIError{StatusCode: 400, Message: "insufficient stock"})

	ts.post("/sweets/1/purchase", url.Values{"quantity": {"1"}}, cookie)

	// The generic notice is shown regardless of the server's message, and
	// only on the next render
	body := ts.get("/dashboard", cookie).Body.String()
	assert.Contains(t, body, "Purchase failed.")
	assert.NotContains(t, body, "insufficient stock")

	body = ts.get("/dashboard", cookie).Body.String()
	assert.NotContains(t, body, "Purchase failed.")
}
