package pkgrouter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgauth"
)

func TestNewAPIKeyAuthRejectsInvalidRole(t *testing.T) {
	_, err := NewAPIKeyAuth(true, map[string]string{"key-1": "root"})
	if err == nil {
		t.Fatal("expected error for invalid role name")
	}
}

func TestRequireDisabledRunsAsAdmin(t *testing.T) {
	auth, err := NewAPIKeyAuth(false, nil)
	if err != nil {
		t.Fatalf("NewAPIKeyAuth: %v", err)
	}

	var gotRole pkgauth.Role
	wrapped := auth.Require((pkgauth.Role).CanViewActivity)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole, _ = pkgauth.RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/activity", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if gotRole != pkgauth.RoleAdmin {
		t.Fatalf("expected admin role, got %v", gotRole)
	}
}

func TestRequireUnknownKey(t *testing.T) {
	auth, err := NewAPIKeyAuth(true, map[string]string{"key-1": "analyst"})
	if err != nil {
		t.Fatalf("NewAPIKeyAuth: %v", err)
	}

	wrapped := auth.Require((pkgauth.Role).CanView)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/sessions/abc", nil)
	req.Header.Set(HeaderAPIKey, "key-2")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireMissingKey(t *testing.T) {
	auth, err := NewAPIKeyAuth(true, map[string]string{"key-1": "analyst"})
	if err != nil {
		t.Fatalf("NewAPIKeyAuth: %v", err)
	}

	wrapped := auth.Require((pkgauth.Role).CanView)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/sessions/abc", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireInsufficientRole(t *testing.T) {
	auth, err := NewAPIKeyAuth(true, map[string]string{"key-1": "viewer"})
	if err != nil {
		t.Fatalf("NewAPIKeyAuth: %v", err)
	}

	wrapped := auth.Require((pkgauth.Role).CanUpload)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodPost, "http://example.com/sessions", nil)
	req.Header.Set(HeaderAPIKey, "key-1")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireAllowsSufficientRole(t *testing.T) {
	auth, err := NewAPIKeyAuth(true, map[string]string{"key-1": "analyst"})
	if err != nil {
		t.Fatalf("NewAPIKeyAuth: %v", err)
	}

	var gotRole pkgauth.Role
	wrapped := auth.Require((pkgauth.Role).CanUpload)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole, _ = pkgauth.RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "http://example.com/sessions", nil)
	req.Header.Set(HeaderAPIKey, "key-1")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if gotRole != pkgauth.RoleAnalyst {
		t.Fatalf("expected analyst role, got %v", gotRole)
	}
}
