package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// Store interface for state and token storage
type Store interface {
	Set(key string, value string, expiration time.Duration)
	Get(key string) (string, bool)
	Delete(key string)
}

// StateManager manages OAuth state tokens for CSRF protection. Each state is
// bound to the browser session that started the login.
type StateManager struct {
	store      Store
	provider   string
	expiration time.Duration
}

// NewStateManager creates a new state manager for provider
func NewStateManager(store Store, provider string) *StateManager {
	return &StateManager{
		store:      store,
		provider:   provider,
		expiration: 15 * time.Minute,
	}
}

// GenerateState generates a random state token bound to sessionID
func (sm *StateManager) GenerateState(sessionID string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	state := base64.URLEncoding.EncodeToString(b)
	sm.store.Set(sm.key(state), sessionID, sm.expiration)
	return state, nil
}

// ValidateState consumes a state token (one-time use) and returns its session
func (sm *StateManager) ValidateState(state string) (string, bool) {
	if state == "" {
		return "", false
	}
	key := sm.key(state)
	sessionID, exists := sm.store.Get(key)
	if !exists || sessionID == "" {
		return "", false
	}
	sm.store.Delete(key)
	return sessionID, true
}

func (sm *StateManager) key(state string) string {
	return fmt.Sprintf("oauth:%s:state:%s", sm.provider, state)
}

// TokenStore keeps provider tokens per session
type TokenStore struct {
	store    Store
	provider string
	ttl      time.Duration
}

// NewTokenStore creates a token store; tokens are dropped after ttl
func NewTokenStore(store Store, provider string, ttl time.Duration) *TokenStore {
	return &TokenStore{store: store, provider: provider, ttl: ttl}
}

// Save stores token for sessionID
func (ts *TokenStore) Save(sessionID string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	ts.store.Set(ts.key(sessionID), string(data), ts.ttl)
	return nil
}

// Load returns the token of sessionID
func (ts *TokenStore) Load(sessionID string) (*oauth2.Token, bool) {
	data, ok := ts.store.Get(ts.key(sessionID))
	if !ok {
		return nil, false
	}
	var token oauth2.Token
	if err := json.Unmarshal([]byte(data), &token); err != nil {
		return nil, false
	}
	return &token, true
}

// Delete forgets the token of sessionID
func (ts *TokenStore) Delete(sessionID string) {
	ts.store.Delete(ts.key(sessionID))
}

func (ts *TokenStore) key(sessionID string) string {
	return fmt.Sprintf("oauth:%s:token:%s", ts.provider, sessionID)
}
