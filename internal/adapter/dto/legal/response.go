package legal

import "time"

// DomainResponse is one legal domain
type DomainResponse struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ActionResponse represents an action in API responses
type ActionResponse struct {
	ID          string    `json:"id"`
	MeetingID   string    `json:"meeting_id"`
	Domain      string    `json:"domain"`
	DomainName  string    `json:"domain_name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Deadline    *string   `json:"deadline"`
	Status      string    `json:"status"`
	Assignee    *string   `json:"assignee"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InsightResponse represents an insight in API responses
type InsightResponse struct {
	ID            string    `json:"id"`
	Domain        string    `json:"domain"`
	DomainName    string    `json:"domain_name"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	SourceMeeting string    `json:"source_meeting"`
	Importance    string    `json:"importance"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
}

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Date              string    `json:"date"`
	BotID             string    `json:"bot_id"`
	Participants      []string  `json:"participants"`
	Duration          int       `json:"duration"`
	TranscriptSummary string    `json:"transcript_summary"`
	DomainsProcessed  []string  `json:"domains_processed"`
	HasActionItems    bool      `json:"has_action_items"`
	HasInsights       bool      `json:"has_insights"`
	ActionCount       *int      `json:"action_count,omitempty"`
	InsightCount      *int      `json:"insight_count,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// MeetingDetailsResponse is a meeting with its actions and insights
type MeetingDetailsResponse struct {
	Meeting  MeetingResponse   `json:"meeting"`
	Actions  []ActionResponse  `json:"actions"`
	Insights []InsightResponse `json:"insights"`
	Archive  map[string]string `json:"archive,omitempty"`
}

// ProcessResponse is returned after a transcript has been analyzed and stored
type ProcessResponse struct {
	MeetingID  string      `json:"meeting_id"`
	Title      string      `json:"title"`
	ActionIDs  []string    `json:"action_ids"`
	InsightIDs []string    `json:"insight_ids"`
	Analysis   interface{} `json:"analysis"`
}

// ZoomLoginResponse is returned by the Zoom login endpoint
type ZoomLoginResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}
