package handler

import (
	"context"
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/legalmind/errors"
	"github.com/johnquangdev/legalmind/internal/adapter/dto/legal"
	"github.com/johnquangdev/legalmind/internal/infrastructure/external/oauth"
	"github.com/johnquangdev/legalmind/internal/usecase/auth"
	usecaseErrors "github.com/johnquangdev/legalmind/internal/usecase/errors"
)

// ZoomAuth is the Zoom login flow used by the handler
type ZoomAuth interface {
	GetAuthURL(ctx context.Context, sessionID string) (*auth.AuthURLResponse, error)
	HandleCallback(ctx context.Context, code, state string) (string, error)
	ListMeetings(ctx context.Context, sessionID string) (*oauth.ZoomMeetingList, error)
}

// Zoom handles Zoom OAuth HTTP requests
type Zoom struct {
	zoom         ZoomAuth
	secureCookie bool
	logger       *zap.Logger
}

// NewZoomHandler creates a new Zoom handler
func NewZoomHandler(zoom ZoomAuth, secureCookie bool, logger *zap.Logger) *Zoom {
	return &Zoom{
		zoom:         zoom,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// Login handles GET /auth/zoom/login
// @Summary      Start Zoom login
// @Description  Redirects to Zoom consent; with redirect=false the URL is returned as JSON
// @Tags         Zoom
// @Produce      json
// @Param        redirect  query     bool  false  "Redirect to Zoom (default true)"
// @Success      200       {object}  common.SuccessResponse{data=legal.ZoomLoginResponse}
// @Success      307       {string}  string  "Redirect to Zoom"
// @Failure      503       {object}  common.ErrorResponse
// @Router       /auth/zoom/login [get]
func (h *Zoom) Login(c echo.Context) error {
	resp, err := h.zoom.GetAuthURL(c.Request().Context(), sessionID(c))
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}
	setSessionCookie(c, resp.SessionID, h.secureCookie)

	if c.QueryParam("redirect") == "false" {
		return HandleSuccess(h.logger, c, legal.ZoomLoginResponse{URL: resp.URL, State: resp.State})
	}
	return c.Redirect(http.StatusTemporaryRedirect, resp.URL)
}

// Callback handles GET /auth/zoom/callback
// @Summary      Zoom OAuth callback
// @Tags         Zoom
// @Produce      json
// @Param        code   query     string  true  "Authorization code"
// @Param        state  query     string  true  "CSRF state"
// @Success      200    {object}  common.SuccessResponse
// @Failure      400    {object}  common.ErrorResponse
// @Failure      401    {object}  common.ErrorResponse
// @Router       /auth/zoom/callback [get]
func (h *Zoom) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("missing code or state parameter"))
	}

	session, err := h.zoom.HandleCallback(c.Request().Context(), code, state)
	if err != nil {
		if isUsecaseError(err) {
			return HandleError(h.logger, c, toAppError(err, ""))
		}
		return HandleError(h.logger, c, errors.ErrOAuthFailed("zoom", err))
	}
	setSessionCookie(c, session, h.secureCookie)

	return HandleSuccess(h.logger, c, map[string]bool{"connected": true})
}

// ListMeetings handles GET /zoom/meetings
// @Summary      List Zoom meetings
// @Description  Lists the scheduled meetings of the connected Zoom account
// @Tags         Zoom
// @Produce      json
// @Success      200  {object}  common.SuccessResponse
// @Failure      401  {object}  common.ErrorResponse
// @Failure      502  {object}  common.ErrorResponse
// @Router       /zoom/meetings [get]
func (h *Zoom) ListMeetings(c echo.Context) error {
	list, err := h.zoom.ListMeetings(c.Request().Context(), sessionID(c))
	if err != nil {
		if isUsecaseError(err) {
			return HandleError(h.logger, c, toAppError(err, ""))
		}
		return HandleError(h.logger, c, errors.ErrExternalAPIFailed("zoom", err))
	}
	return HandleSuccess(h.logger, c, list)
}

func isUsecaseError(err error) bool {
	return stdErrors.Is(err, usecaseErrors.ErrOAuthNotConfigured) ||
		stdErrors.Is(err, usecaseErrors.ErrOAuthStateMismatch) ||
		stdErrors.Is(err, usecaseErrors.ErrOAuthSessionMissing) ||
		stdErrors.Is(err, usecaseErrors.ErrInvalidInput)
}
