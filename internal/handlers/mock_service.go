package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"invoice_idor/internal/models"
	"invoice_idor/internal/repository"
	"invoice_idor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockEventLog struct {
	resp     []models.AccessEvent
	err      error
	recorded []models.AccessEvent
	lastFrom time.Time
	lastTo   time.Time
	lastType string
	calls    int
}

func (m *mockEventLog) Record(_ context.Context, e models.AccessEvent) error {
	m.recorded = append(m.recorded, e)
	return nil
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.AccessEvent, error) {
	m.calls++
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

func (m *mockEventLog) Prune(context.Context, time.Time) (int64, error) { return 0, nil }

// ---- Shared Test Helpers ----

func newTestService() *service.Service {
	return service.NewService(repository.NewMemoryRepository(), service.Options{
		SessionSecret:   "test-secret",
		RetentionPeriod: time.Hour,
	})
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil).InitRoutes()
}

// testClient replays the session cookie the way a browser would.
type testClient struct {
	t      *testing.T
	router http.Handler
	cookie *http.Cookie
}

func newTestClient(t *testing.T, router http.Handler) *testClient {
	t.Helper()
	return &testClient{t: t, router: router}
}

func (tc *testClient) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	tc.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if tc.cookie != nil {
		req.AddCookie(tc.cookie)
	}

	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name != sessionCookieName {
			continue
		}
		if ck.MaxAge < 0 || ck.Value == "" {
			tc.cookie = nil
		} else {
			tc.cookie = ck
		}
	}
	return w
}

func (tc *testClient) get(path string) *httptest.ResponseRecorder {
	tc.t.Helper()
	return tc.do(http.MethodGet, path, nil)
}

func (tc *testClient) login(username, password string) *httptest.ResponseRecorder {
	tc.t.Helper()
	return tc.do(http.MethodPost, "/login", url.Values{"username": {username}, "password": {password}})
}

func (tc *testClient) mustLogin(username, password string) {
	tc.t.Helper()
	w := tc.login(username, password)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/my-invoices" {
		tc.t.Fatalf("login %s: status=%d location=%q body=%s", username, w.Code, w.Header().Get("Location"), w.Body.String())
	}
}
