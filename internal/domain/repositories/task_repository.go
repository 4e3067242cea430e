package repositories

import "github.com/johnquangdev/legalmind/internal/domain/entities"

// TaskRepository owns every Meeting, Action and Insight for the process lifetime.
// Lookups return copies; the only mutation after insert is UpdateActionStatus.
type TaskRepository interface {
	// AddMeeting appends a meeting and returns its id
	AddMeeting(m *entities.Meeting) string
	// AddAction appends an action and returns its id
	AddAction(a *entities.Action) string
	// AddInsight appends an insight and returns its id
	AddInsight(i *entities.Insight) string

	GetMeetingByID(id string) (*entities.Meeting, bool)
	GetActionByID(id string) (*entities.Action, bool)
	GetInsightByID(id string) (*entities.Insight, bool)

	// List* return records in insertion order
	ListMeetings() []*entities.Meeting
	ListActions() []*entities.Action
	ListInsights() []*entities.Insight

	// GetActionsByMeeting matches Action.MeetingID exactly
	GetActionsByMeeting(meetingID string) []*entities.Action
	// GetInsightsByMeeting matches Insight.SourceMeeting exactly
	GetInsightsByMeeting(meetingID string) []*entities.Insight
	GetActionsByDomain(domain string) []*entities.Action
	GetInsightsByDomain(domain string) []*entities.Insight

	// UpdateActionStatus sets status (and assignee when non-nil) and refreshes
	// UpdatedAt. It reports whether the action was found.
	UpdateActionStatus(id string, status entities.ActionStatus, assignee *string) bool

	// Clear drops every record
	Clear()
}
