package handlers

import (
	"net/http"
	"testing"
)

func TestSessionMiddleware_IssuesCookieOnce(t *testing.T) {
	c := newTestClient(t, newTestRouter(newTestService()))

	w := c.get("/")
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionCookieName {
		t.Fatalf("expected one %s cookie, got %+v", sessionCookieName, cookies)
	}
	ck := cookies[0]
	if !ck.HttpOnly || ck.Secure || ck.MaxAge != 0 || ck.Path != "/" {
		t.Fatalf("unexpected cookie attributes: %+v", ck)
	}

	if w := c.get("/login"); len(w.Result().Cookies()) != 0 {
		t.Fatalf("existing session should be reused, got new cookie")
	}
}

func TestSessionMiddleware_ForgedCookieGetsNewSession(t *testing.T) {
	c := newTestClient(t, newTestRouter(newTestService()))
	c.cookie = &http.Cookie{Name: sessionCookieName, Value: "not-a-token"}

	w := c.get("/")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if c.cookie == nil || c.cookie.Value == "not-a-token" {
		t.Fatalf("forged cookie should be replaced")
	}
}

func TestRequireAuth_RedirectsAnonymous(t *testing.T) {
	c := newTestClient(t, newTestRouter(newTestService()))

	for _, path := range []string{"/my-invoices", "/invoice/1", "/invoice/-1", "/api/max-invoice", "/api/access-log", "/ws/access-log"} {
		w := c.get(path)
		if w.Code != http.StatusFound {
			t.Fatalf("%s: status=%d, want 302", path, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/login" {
			t.Fatalf("%s: location=%q", path, loc)
		}
	}
}

func TestRequireAuth_SessionsAreIsolated(t *testing.T) {
	r := newTestRouter(newTestService())
	alice := newTestClient(t, r)
	alice.mustLogin("alice", "alicepass")

	stranger := newTestClient(t, r)
	if w := stranger.get("/my-invoices"); w.Code != http.StatusFound {
		t.Fatalf("stranger: status=%d, want 302", w.Code)
	}
	if w := alice.get("/my-invoices"); w.Code != http.StatusOK {
		t.Fatalf("alice: status=%d, want 200", w.Code)
	}
}
