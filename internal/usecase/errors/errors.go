package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrInternalError = errors.New("internal server error")
	ErrUnavailable   = errors.New("service not configured")
)

// Analysis errors
var (
	ErrAnalysisFailed  = errors.New("transcript analysis failed")
	ErrEmptyTranscript = errors.New("no transcript content to process")
	ErrUnknownDomain   = errors.New("unknown legal domain")
)

// Record errors
var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrMeetingExists   = errors.New("meeting already processed")
	ErrActionNotFound  = errors.New("action not found")
	ErrInsightNotFound = errors.New("insight not found")
	ErrInvalidStatus   = errors.New("invalid action status")
)

// Meeting bot errors
var (
	ErrBotNotFound        = errors.New("meeting bot not found")
	ErrBotOperationFailed = errors.New("meeting bot operation failed")
)

// OAuth errors
var (
	ErrOAuthNotConfigured  = errors.New("oauth provider not configured")
	ErrOAuthStateMismatch  = errors.New("oauth state mismatch")
	ErrOAuthSessionMissing = errors.New("oauth session not found")
)
