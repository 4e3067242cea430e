package errors

// ErrorCode is the stable, client-facing error identifier
type ErrorCode int32

const (
	ErrorCode_HTTP_OK          ErrorCode = 200
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1004

	ErrorCode_AUTH_OAUTH_FAILED ErrorCode = 2001

	ErrorCode_MEETING_NOT_FOUND ErrorCode = 3001
	ErrorCode_ACTION_NOT_FOUND  ErrorCode = 3002
	ErrorCode_INSIGHT_NOT_FOUND ErrorCode = 3003
	ErrorCode_UNKNOWN_DOMAIN    ErrorCode = 3004
	ErrorCode_MEETING_EXISTS    ErrorCode = 3005

	ErrorCode_BOT_NOT_FOUND        ErrorCode = 4001
	ErrorCode_BOT_OPERATION_FAILED ErrorCode = 4002
	ErrorCode_TRANSCRIPT_EMPTY     ErrorCode = 4003

	ErrorCode_AI_ANALYSIS_FAILED      ErrorCode = 5001
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 5002
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = 5003

	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = 6001
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 6002
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 6003
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                         "HTTP_OK",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_UNAUTHENTICATED:                 "UNAUTHENTICATED",
	ErrorCode_AUTH_OAUTH_FAILED:               "AUTH_OAUTH_FAILED",
	ErrorCode_MEETING_NOT_FOUND:               "MEETING_NOT_FOUND",
	ErrorCode_ACTION_NOT_FOUND:                "ACTION_NOT_FOUND",
	ErrorCode_INSIGHT_NOT_FOUND:               "INSIGHT_NOT_FOUND",
	ErrorCode_UNKNOWN_DOMAIN:                  "UNKNOWN_DOMAIN",
	ErrorCode_MEETING_EXISTS:                  "MEETING_EXISTS",
	ErrorCode_BOT_NOT_FOUND:                   "BOT_NOT_FOUND",
	ErrorCode_BOT_OPERATION_FAILED:            "BOT_OPERATION_FAILED",
	ErrorCode_TRANSCRIPT_EMPTY:                "TRANSCRIPT_EMPTY",
	ErrorCode_AI_ANALYSIS_FAILED:              "AI_ANALYSIS_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:         "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:          "AI_SERVICE_UNAVAILABLE",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
