package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
)

func TestKeyAuthenticator_ValidKey(t *testing.T) {
	a := NewKeyAuthenticator(KeyConfig{}, map[string]string{
		"ci":  "ci-key-value",
		"ops": "ops-key-value",
	})

	req := httptest.NewRequest("GET", "/api/snippets", nil)
	req.Header.Set(DefaultKeyHeader, "ops-key-value")

	identity, err := a.Authenticate(req)
	if err != nil {
		t.Fatalf("Authenticate() failed: %v", err)
	}
	if identity.Principal != "ops" {
		t.Errorf("Principal = %q, want ops", identity.Principal)
	}
	if identity.Method != MethodKey {
		t.Errorf("Method = %q, want %q", identity.Method, MethodKey)
	}
}

func TestKeyAuthenticator_KeyWithSurroundingSpace(t *testing.T) {
	a := NewKeyAuthenticator(KeyConfig{}, map[string]string{"ci": "ci-key-value"})

	req := httptest.NewRequest("GET", "/api/snippets", nil)
	req.Header.Set(DefaultKeyHeader, "  ci-key-value  ")

	identity, err := a.Authenticate(req)
	if err != nil {
		t.Fatalf("Authenticate() failed: %v", err)
	}
	if identity.Principal != "ci" {
		t.Errorf("Principal = %q, want ci", identity.Principal)
	}
}

func TestKeyAuthenticator_InvalidKey(t *testing.T) {
	a := NewKeyAuthenticator(KeyConfig{}, map[string]string{"ci": "ci-key-value"})

	req := httptest.NewRequest("GET", "/api/snippets", nil)
	req.Header.Set(DefaultKeyHeader, "wrong-key")

	_, err := a.Authenticate(req)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Authenticate() error = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestKeyAuthenticator_MissingKey(t *testing.T) {
	a := NewKeyAuthenticator(KeyConfig{}, map[string]string{"ci": "ci-key-value"})

	req := httptest.NewRequest("GET", "/api/snippets", nil)

	_, err := a.Authenticate(req)
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("Authenticate() error = %v, want %v", err, ErrMissingCredentials)
	}
}

func TestKeyAuthenticator_CustomHeader(t *testing.T) {
	a := NewKeyAuthenticator(KeyConfig{Header: "X-Snippet-Key"}, map[string]string{"ci": "k"})

	req := httptest.NewRequest("GET", "/api/snippets", nil)
	req.Header.Set("X-Snippet-Key", "k")

	if !a.Supports(req) {
		t.Error("Supports() = false, want true for custom header")
	}

	identity, err := a.Authenticate(req)
	if err != nil {
		t.Fatalf("Authenticate() failed: %v", err)
	}
	if identity.Principal != "ci" {
		t.Errorf("Principal = %q, want ci", identity.Principal)
	}
}

func TestKeyAuthenticator_Supports(t *testing.T) {
	a := NewKeyAuthenticator(KeyConfig{}, map[string]string{"ci": "k"})

	plain := httptest.NewRequest("GET", "/", nil)
	if a.Supports(plain) {
		t.Error("Supports() = true for request without key header")
	}

	keyed := httptest.NewRequest("GET", "/", nil)
	keyed.Header.Set(DefaultKeyHeader, "anything")
	if !a.Supports(keyed) {
		t.Error("Supports() = false for request with key header")
	}
}

func TestHashKey_Deterministic(t *testing.T) {
	if HashKey("abc") != HashKey("abc") {
		t.Error("HashKey should be deterministic")
	}
	if HashKey("abc") == HashKey("abd") {
		t.Error("HashKey should differ for different inputs")
	}
	if len(HashKey("abc")) != 64 {
		t.Errorf("HashKey length = %d, want 64 hex chars", len(HashKey("abc")))
	}
}
