package entities

import (
	"strings"
	"time"
)

// Priority of an Action
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority normalizes model output; anything unrecognized is medium
func ParsePriority(s string) Priority {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p
	}
	return PriorityMedium
}

// Rank orders priorities high to low (high = 0)
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// ActionStatus is the lifecycle state of an Action
type ActionStatus string

const (
	ActionStatusPending    ActionStatus = "pending"
	ActionStatusInProgress ActionStatus = "in_progress"
	ActionStatusCompleted  ActionStatus = "completed"
	ActionStatusCancelled  ActionStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses
func (s ActionStatus) Valid() bool {
	return s.Rank() < 4
}

// Rank orders statuses pending < in_progress < completed < cancelled
func (s ActionStatus) Rank() int {
	switch s {
	case ActionStatusPending:
		return 0
	case ActionStatusInProgress:
		return 1
	case ActionStatusCompleted:
		return 2
	case ActionStatusCancelled:
		return 3
	}
	return 4
}

// Importance of an Insight
type Importance string

const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceMedium   Importance = "medium"
	ImportanceLow      Importance = "low"
)

// ParseImportance normalizes model output; anything unrecognized is medium
func ParseImportance(s string) Importance {
	switch i := Importance(strings.ToLower(strings.TrimSpace(s))); i {
	case ImportanceCritical, ImportanceHigh, ImportanceMedium, ImportanceLow:
		return i
	}
	return ImportanceMedium
}

// Rank orders importance critical to low (critical = 0)
func (i Importance) Rank() int {
	switch i {
	case ImportanceCritical:
		return 0
	case ImportanceHigh:
		return 1
	case ImportanceMedium:
		return 2
	case ImportanceLow:
		return 3
	}
	return 4
}

// Action is a legal follow-up task derived from a domain's action items
type Action struct {
	ID          string       `json:"id"`
	MeetingID   string       `json:"meeting_id"`
	Domain      string       `json:"domain"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    Priority     `json:"priority"`
	Deadline    *string      `json:"deadline"`
	Status      ActionStatus `json:"status"`
	Assignee    *string      `json:"assignee"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Clone returns a deep copy
func (a *Action) Clone() *Action {
	out := *a
	if a.Deadline != nil {
		d := *a.Deadline
		out.Deadline = &d
	}
	if a.Assignee != nil {
		as := *a.Assignee
		out.Assignee = &as
	}
	return &out
}

// Insight is a legal observation derived from a domain's key issues
type Insight struct {
	ID            string     `json:"id"`
	Domain        string     `json:"domain"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	SourceMeeting string     `json:"source_meeting"`
	Importance    Importance `json:"importance"`
	Tags          []string   `json:"tags"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Clone returns a deep copy
func (i *Insight) Clone() *Insight {
	out := *i
	out.Tags = append([]string(nil), i.Tags...)
	return &out
}

// Meeting is one processed transcript session and its aggregate metadata
type Meeting struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Date              string    `json:"date"`
	BotID             string    `json:"bot_id"`
	Participants      []string  `json:"participants"`
	DurationSeconds   int       `json:"duration"`
	TranscriptSummary string    `json:"transcript_summary"`
	DomainsProcessed  []string  `json:"domains_processed"`
	HasActionItems    bool      `json:"has_action_items"`
	HasInsights       bool      `json:"has_insights"`
	CreatedAt         time.Time `json:"created_at"`
}

// Clone returns a deep copy
func (m *Meeting) Clone() *Meeting {
	out := *m
	out.Participants = append([]string(nil), m.Participants...)
	out.DomainsProcessed = append([]string(nil), m.DomainsProcessed...)
	return &out
}
