package handler

import (
	stdErrors "errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/legalmind/errors"
	"github.com/johnquangdev/legalmind/internal/adapter/dto/common"
	usecaseErrors "github.com/johnquangdev/legalmind/internal/usecase/errors"
)

const sessionCookieName = "legalmind_session"

// getRequestID tries to read X-Request-ID from the request or the response
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return handleSuccessStatus(logger, c, http.StatusOK, data)
}

// HandleCreated writes a standardized 201 response
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return handleSuccessStatus(logger, c, http.StatusCreated, data)
}

func handleSuccessStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := common.SuccessResponse{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := common.ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := common.ErrorResponse{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// toAppError maps usecase errors onto API errors. id names the resource the
// request was about, when there is one.
func toAppError(err error, id string) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return err
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput), stdErrors.Is(err, usecaseErrors.ErrInvalidStatus):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrMeetingExists):
		return errors.ErrMeetingAlreadyExists(id)
	case stdErrors.Is(err, usecaseErrors.ErrActionNotFound):
		return errors.ErrActionNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrInsightNotFound):
		return errors.ErrInsightNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrUnknownDomain):
		return errors.ErrUnknownDomain(id)
	case stdErrors.Is(err, usecaseErrors.ErrEmptyTranscript):
		return errors.ErrTranscriptEmpty(id)
	case stdErrors.Is(err, usecaseErrors.ErrBotNotFound):
		return errors.ErrBotNotFound(id)
	case stdErrors.Is(err, usecaseErrors.ErrBotOperationFailed):
		return errors.ErrBotOperationFailed("meetstream", err)
	case stdErrors.Is(err, usecaseErrors.ErrAnalysisFailed):
		return errors.ErrAIAnalysisFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrUnavailable):
		return errors.ErrAIServiceUnavailable(strings.TrimPrefix(err.Error(), usecaseErrors.ErrUnavailable.Error()+": "))
	case stdErrors.Is(err, usecaseErrors.ErrOAuthNotConfigured):
		return errors.ErrAIServiceUnavailable("zoom oauth")
	case stdErrors.Is(err, usecaseErrors.ErrOAuthStateMismatch):
		return errors.ErrOAuthFailed("zoom", err)
	case stdErrors.Is(err, usecaseErrors.ErrOAuthSessionMissing):
		return errors.ErrUnauthenticated()
	}
	return errors.ErrInternal(err)
}

// splitMulti flattens repeated and comma separated query values
func splitMulti(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// setSessionCookie sets the browser session cookie
func setSessionCookie(c echo.Context, sessionID string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   7 * 24 * 3600,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionID reads the browser session cookie
func sessionID(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
