package apikey

import (
	"context"
	"crypto/sha256"
	"net/http"
	"strings"
	"testing"

	"github.com/rhuss/duckgate/pkg/auth"
)

func newTestAuth() *Authenticator {
	return New([]string{"sk-test-key-1", "sk-test-key-2"})
}

func TestValidKey(t *testing.T) {
	a := newTestAuth()
	r, _ := http.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer sk-test-key-1")

	result := a.Authenticate(context.Background(), r)

	if result.Decision != auth.Yes {
		t.Fatalf("Decision = %d, want Yes", result.Decision)
	}
	want := Fingerprint(sha256.Sum256([]byte("sk-test-key-1")))
	if result.Identity.Subject != want {
		t.Errorf("Subject = %q, want %q", result.Identity.Subject, want)
	}
	if strings.Contains(result.Identity.Subject, "sk-test") {
		t.Error("subject must not contain the key")
	}
}

func TestSecondKey(t *testing.T) {
	a := newTestAuth()
	r, _ := http.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer sk-test-key-2")

	if result := a.Authenticate(context.Background(), r); result.Decision != auth.Yes {
		t.Errorf("Decision = %d, want Yes", result.Decision)
	}
}

func TestInvalidKey(t *testing.T) {
	a := newTestAuth()
	r, _ := http.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer sk-wrong-key")

	result := a.Authenticate(context.Background(), r)

	if result.Decision != auth.No {
		t.Fatalf("Decision = %d, want No", result.Decision)
	}
	if result.Err != auth.ErrInvalidKey {
		t.Errorf("Err = %v, want ErrInvalidKey", result.Err)
	}
}

func TestEmptyBearerToken(t *testing.T) {
	a := newTestAuth()
	r, _ := http.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer ")

	if result := a.Authenticate(context.Background(), r); result.Decision != auth.No {
		t.Errorf("Decision = %d, want No", result.Decision)
	}
}

func TestNoHeaderAbstains(t *testing.T) {
	a := newTestAuth()
	r, _ := http.NewRequest("GET", "/", nil)

	if result := a.Authenticate(context.Background(), r); result.Decision != auth.Abstain {
		t.Errorf("Decision = %d, want Abstain", result.Decision)
	}
}

func TestNonBearerAbstains(t *testing.T) {
	tests := []string{"Basic dXNlcjpwYXNz", "bearer sk-test-key-1", "Token sk-test-key-1"}
	a := newTestAuth()
	for _, header := range tests {
		t.Run(header, func(t *testing.T) {
			r, _ := http.NewRequest("GET", "/", nil)
			r.Header.Set("Authorization", header)
			if result := a.Authenticate(context.Background(), r); result.Decision != auth.Abstain {
				t.Errorf("Decision = %d, want Abstain", result.Decision)
			}
		})
	}
}

func TestEmptyAllowListRejectsAll(t *testing.T) {
	chain := NewChain(nil)
	for _, header := range []string{"", "Bearer ", "Bearer anything"} {
		r, _ := http.NewRequest("POST", "/v1/chat/completions", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		if result := chain.Authenticate(context.Background(), r); result.Decision != auth.No {
			t.Errorf("header %q: Decision = %d, want No", header, result.Decision)
		}
	}
}

func TestEmptyKeysIgnored(t *testing.T) {
	a := New([]string{"", "sk-1", ""})
	if a.Len() != 1 {
		t.Errorf("Len() = %d, want 1", a.Len())
	}
}

func TestNewChainAcceptsKnownKey(t *testing.T) {
	chain := NewChain([]string{"sk-1"})
	r, _ := http.NewRequest("GET", "/v1/models", nil)
	r.Header.Set("Authorization", "Bearer sk-1")

	if result := chain.Authenticate(context.Background(), r); result.Decision != auth.Yes {
		t.Errorf("Decision = %d, want Yes", result.Decision)
	}
}
