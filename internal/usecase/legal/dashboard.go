package legal

import (
	"math"
	"sort"

	"github.com/johnquangdev/legalmind/internal/domain/entities"
	"github.com/johnquangdev/legalmind/internal/domain/repositories"
	"github.com/johnquangdev/legalmind/pkg/config"
)

// Sort modes accepted by the action and insight queries
const (
	SortPriorityDesc   = "priority_desc"
	SortPriorityAsc    = "priority_asc"
	SortStatus         = "status"
	SortImportanceDesc = "importance_desc"
	SortImportanceAsc  = "importance_asc"
	SortNewest         = "newest"
	SortOldest         = "oldest"
)

// ActionFilter selects actions. Empty slices match everything.
type ActionFilter struct {
	Statuses   []entities.ActionStatus
	Priorities []entities.Priority
	Domains    []string
	MeetingID  string
	Sort       string
}

// InsightFilter selects insights. Empty slices match everything.
type InsightFilter struct {
	Importances []entities.Importance
	Domains     []string
	MeetingID   string
	Sort        string
}

// DashboardStats summarizes the repository
type DashboardStats struct {
	TotalMeetings        int            `json:"total_meetings"`
	TotalActions         int            `json:"total_actions"`
	TotalInsights        int            `json:"total_insights"`
	PendingActions       int            `json:"pending_actions"`
	CompletionRate       *int           `json:"completion_rate"`
	ActionsByDomain      map[string]int `json:"actions_by_domain"`
	InsightsByDomain     map[string]int `json:"insights_by_domain"`
	PriorityDistribution map[string]int `json:"priority_distribution"`
}

// Dashboard answers read queries over the repository
type Dashboard struct {
	repo repositories.TaskRepository
}

// NewDashboard creates a dashboard query service
func NewDashboard(repo repositories.TaskRepository) *Dashboard {
	return &Dashboard{repo: repo}
}

// Actions returns actions matching f, sorted by f.Sort. Unknown sort modes keep
// insertion order.
func (d *Dashboard) Actions(f ActionFilter) []*entities.Action {
	var actions []*entities.Action
	if f.MeetingID != "" {
		actions = d.repo.GetActionsByMeeting(f.MeetingID)
	} else {
		actions = d.repo.ListActions()
	}

	out := make([]*entities.Action, 0, len(actions))
	for _, a := range actions {
		if !containsValue(f.Statuses, a.Status) ||
			!containsValue(f.Priorities, a.Priority) ||
			!containsValue(f.Domains, a.Domain) {
			continue
		}
		out = append(out, a)
	}

	switch f.Sort {
	case SortPriorityDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Priority.Rank() < out[j].Priority.Rank() })
	case SortPriorityAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Priority.Rank() > out[j].Priority.Rank() })
	case SortStatus:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Status.Rank() < out[j].Status.Rank() })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	}
	return out
}

// Insights returns insights matching f, sorted by f.Sort
func (d *Dashboard) Insights(f InsightFilter) []*entities.Insight {
	var insights []*entities.Insight
	if f.MeetingID != "" {
		insights = d.repo.GetInsightsByMeeting(f.MeetingID)
	} else {
		insights = d.repo.ListInsights()
	}

	out := make([]*entities.Insight, 0, len(insights))
	for _, in := range insights {
		if !containsValue(f.Importances, in.Importance) || !containsValue(f.Domains, in.Domain) {
			continue
		}
		out = append(out, in)
	}

	switch f.Sort {
	case SortImportanceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Importance.Rank() < out[j].Importance.Rank() })
	case SortImportanceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Importance.Rank() > out[j].Importance.Rank() })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	}
	return out
}

// Stats computes the dashboard summary. CompletionRate is nil when there are no
// actions; otherwise it is the rounded share of actions that are not pending.
func (d *Dashboard) Stats() *DashboardStats {
	actions := d.repo.ListActions()
	insights := d.repo.ListInsights()

	stats := &DashboardStats{
		TotalMeetings:    len(d.repo.ListMeetings()),
		TotalActions:     len(actions),
		TotalInsights:    len(insights),
		ActionsByDomain:  make(map[string]int),
		InsightsByDomain: make(map[string]int),
		PriorityDistribution: map[string]int{
			string(entities.PriorityHigh):   0,
			string(entities.PriorityMedium): 0,
			string(entities.PriorityLow):    0,
		},
	}
	for _, key := range config.DomainKeys() {
		stats.ActionsByDomain[key] = 0
		stats.InsightsByDomain[key] = 0
	}

	for _, a := range actions {
		if a.Status == entities.ActionStatusPending {
			stats.PendingActions++
		}
		stats.ActionsByDomain[a.Domain]++
		stats.PriorityDistribution[string(a.Priority)]++
	}
	for _, in := range insights {
		stats.InsightsByDomain[in.Domain]++
	}

	if stats.TotalActions > 0 {
		done := float64(stats.TotalActions-stats.PendingActions) / float64(stats.TotalActions) * 100
		rate := int(math.Round(done))
		stats.CompletionRate = &rate
	}
	return stats
}

func containsValue[T comparable](set []T, v T) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
