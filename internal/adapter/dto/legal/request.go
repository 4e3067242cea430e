package legal

import "encoding/json"

// JoinMeetingRequest represents the request to send a bot into a meeting
type JoinMeetingRequest struct {
	MeetingLink       string `json:"meeting_link" validate:"required,url"`
	BotName           string `json:"bot_name,omitempty" validate:"omitempty,max=100"`
	AudioRequired     *bool  `json:"audio_required,omitempty"`
	VideoRequired     bool   `json:"video_required,omitempty"`
	LiveTranscription bool   `json:"live_transcription,omitempty"`
}

// AnalyzeTranscriptRequest carries a provider or canonical transcript
type AnalyzeTranscriptRequest struct {
	Title      string          `json:"title,omitempty" validate:"omitempty,max=255"`
	Transcript json.RawMessage `json:"transcript" validate:"required" swaggertype:"object"`
}

// TranscribeRecordingRequest represents a recording to transcribe and analyze
type TranscribeRecordingRequest struct {
	AudioURL string `json:"audio_url" validate:"required,url"`
	Title    string `json:"title,omitempty" validate:"omitempty,max=255"`
}

// UpdateActionStatusRequest represents an action status transition
type UpdateActionStatusRequest struct {
	Status   string  `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
	Assignee *string `json:"assignee,omitempty" validate:"omitempty,max=255"`
}

// ListActionsRequest represents query parameters for listing actions.
// Multi-value filters accept repeated or comma separated values.
type ListActionsRequest struct {
	Status    []string `query:"status"`
	Priority  []string `query:"priority"`
	Domain    []string `query:"domain"`
	MeetingID string   `query:"meeting_id"`
	Sort      string   `query:"sort" validate:"omitempty,oneof=priority_desc priority_asc status newest oldest"`
}

// ListInsightsRequest represents query parameters for listing insights
type ListInsightsRequest struct {
	Importance []string `query:"importance"`
	Domain     []string `query:"domain"`
	MeetingID  string   `query:"meeting_id"`
	Sort       string   `query:"sort" validate:"omitempty,oneof=importance_desc importance_asc newest oldest"`
}
