// Package apikey provides an API key authenticator that validates
// bearer tokens against a static allow-list using SHA-256 hashing
// and constant-time comparison.
package apikey

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/rhuss/duckgate/pkg/auth"
)

// KeyEntry maps a key hash to an identity.
type KeyEntry struct {
	KeyHash  [32]byte
	Identity auth.Identity
}

// Authenticator validates bearer tokens against a static key store.
type Authenticator struct {
	keys []KeyEntry
}

// New creates an API key authenticator from the allow-list.
// Keys are hashed immediately; plaintext keys are not stored. Empty keys
// are ignored, so an empty allow-list accepts nothing.
func New(keys []string) *Authenticator {
	a := &Authenticator{}
	for _, k := range keys {
		if k == "" {
			continue
		}
		hash := sha256.Sum256([]byte(k))
		a.keys = append(a.keys, KeyEntry{
			KeyHash:  hash,
			Identity: auth.Identity{Subject: Fingerprint(hash)},
		})
	}
	return a
}

// Len returns the number of keys in the allow-list.
func (a *Authenticator) Len() int {
	return len(a.keys)
}

// Fingerprint returns a log-safe identifier for a key hash.
func Fingerprint(hash [32]byte) string {
	return "key:" + hex.EncodeToString(hash[:4])
}

// Authenticate extracts the bearer token and validates it.
// Returns Yes if valid, No if bearer token present but invalid,
// Abstain if no Authorization header or not a Bearer token.
func (a *Authenticator) Authenticate(_ context.Context, r *http.Request) auth.AuthResult {
	header := r.Header.Get("Authorization")
	if header == "" {
		return auth.AuthResult{Decision: auth.Abstain}
	}

	if !strings.HasPrefix(header, "Bearer ") {
		return auth.AuthResult{Decision: auth.Abstain}
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return auth.AuthResult{Decision: auth.No, Err: auth.ErrInvalidKey}
	}

	tokenHash := sha256.Sum256([]byte(token))

	for _, entry := range a.keys {
		if subtle.ConstantTimeCompare(tokenHash[:], entry.KeyHash[:]) == 1 {
			// Copy identity to avoid shared state.
			id := entry.Identity
			return auth.AuthResult{Decision: auth.Yes, Identity: &id}
		}
	}

	return auth.AuthResult{Decision: auth.No, Err: auth.ErrInvalidKey}
}

// NewChain returns the chain used by the server. Requests without a bearer
// token abstain here and are rejected by the chain.
func NewChain(keys []string) *auth.AuthChain {
	return &auth.AuthChain{
		Authenticators: []auth.Authenticator{New(keys)},
	}
}
