package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/johnquangdev/legalmind/internal/infrastructure/external/oauth"
	usecaseErrors "github.com/johnquangdev/legalmind/internal/usecase/errors"
)

// ZoomProvider is the subset of the Zoom client the service needs
type ZoomProvider interface {
	Configured() bool
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	ListMeetings(ctx context.Context, token *oauth2.Token) (*oauth.ZoomMeetingList, *oauth2.Token, error)
}

// ZoomService handles the Zoom login flow and meeting listing
type ZoomService struct {
	zoom         ZoomProvider
	stateManager *oauth.StateManager
	tokens       *oauth.TokenStore
	logger       *zap.Logger
}

// NewZoomService creates a new Zoom OAuth service
func NewZoomService(
	zoom ZoomProvider,
	stateManager *oauth.StateManager,
	tokens *oauth.TokenStore,
	logger *zap.Logger,
) *ZoomService {
	return &ZoomService{
		zoom:         zoom,
		stateManager: stateManager,
		tokens:       tokens,
		logger:       logger,
	}
}

// AuthURLResponse represents the response for auth URL request
type AuthURLResponse struct {
	URL       string `json:"url"`
	State     string `json:"state"`
	SessionID string `json:"session_id"`
}

// GetAuthURL starts a login for sessionID, creating a session when it is empty
func (s *ZoomService) GetAuthURL(_ context.Context, sessionID string) (*AuthURLResponse, error) {
	if !s.zoom.Configured() {
		return nil, usecaseErrors.ErrOAuthNotConfigured
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	state, err := s.stateManager.GenerateState(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	return &AuthURLResponse{
		URL:       s.zoom.GetAuthURL(state),
		State:     state,
		SessionID: sessionID,
	}, nil
}

// HandleCallback validates state, exchanges code and stores the token. It
// returns the session the token belongs to.
func (s *ZoomService) HandleCallback(ctx context.Context, code, state string) (string, error) {
	if !s.zoom.Configured() {
		return "", usecaseErrors.ErrOAuthNotConfigured
	}
	sessionID, ok := s.stateManager.ValidateState(state)
	if !ok {
		return "", usecaseErrors.ErrOAuthStateMismatch
	}
	if code == "" {
		return "", fmt.Errorf("%w: authorization code is required", usecaseErrors.ErrInvalidInput)
	}

	token, err := s.zoom.ExchangeCode(ctx, code)
	if err != nil {
		return "", err
	}
	if err := s.tokens.Save(sessionID, token); err != nil {
		return "", err
	}

	if s.logger != nil {
		s.logger.Info("🔐 Zoom account connected", zap.String("session_id", sessionID))
	}
	return sessionID, nil
}

// ListMeetings returns the Zoom meetings of the session's user
func (s *ZoomService) ListMeetings(ctx context.Context, sessionID string) (*oauth.ZoomMeetingList, error) {
	if sessionID == "" {
		return nil, usecaseErrors.ErrOAuthSessionMissing
	}
	token, ok := s.tokens.Load(sessionID)
	if !ok {
		return nil, usecaseErrors.ErrOAuthSessionMissing
	}

	list, current, err := s.zoom.ListMeetings(ctx, token)
	if err != nil {
		// the stored token is no longer usable; force a new login
		s.tokens.Delete(sessionID)
		if s.logger != nil {
			s.logger.Warn("⚠️ Zoom session expired", zap.String("session_id", sessionID), zap.Error(err))
		}
		return nil, err
	}
	if current != nil && current.AccessToken != token.AccessToken {
		if err := s.tokens.Save(sessionID, current); err != nil && s.logger != nil {
			s.logger.Warn("⚠️ Failed to store refreshed Zoom token", zap.Error(err))
		}
	}
	return list, nil
}
