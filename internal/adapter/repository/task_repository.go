package repository

import (
	"sync"
	"time"

	"github.com/johnquangdev/legalmind/internal/domain/entities"
	repo "github.com/johnquangdev/legalmind/internal/domain/repositories"
)

type taskRepository struct {
	mu       sync.RWMutex
	meetings []*entities.Meeting
	actions  []*entities.Action
	insights []*entities.Insight
	now      func() time.Time
}

// NewTaskRepository creates an empty in-memory task repository
func NewTaskRepository() repo.TaskRepository {
	return &taskRepository{now: time.Now}
}

func (r *taskRepository) AddMeeting(m *entities.Meeting) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meetings = append(r.meetings, m.Clone())
	return m.ID
}

func (r *taskRepository) AddAction(a *entities.Action) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, a.Clone())
	return a.ID
}

func (r *taskRepository) AddInsight(i *entities.Insight) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insights = append(r.insights, i.Clone())
	return i.ID
}

func (r *taskRepository) GetMeetingByID(id string) (*entities.Meeting, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.meetings {
		if m.ID == id {
			return m.Clone(), true
		}
	}
	return nil, false
}

func (r *taskRepository) GetActionByID(id string) (*entities.Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.actions {
		if a.ID == id {
			return a.Clone(), true
		}
	}
	return nil, false
}

func (r *taskRepository) GetInsightByID(id string) (*entities.Insight, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, i := range r.insights {
		if i.ID == id {
			return i.Clone(), true
		}
	}
	return nil, false
}

func (r *taskRepository) ListMeetings() []*entities.Meeting {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.Meeting, 0, len(r.meetings))
	for _, m := range r.meetings {
		out = append(out, m.Clone())
	}
	return out
}

func (r *taskRepository) ListActions() []*entities.Action {
	return r.filterActions(func(*entities.Action) bool { return true })
}

func (r *taskRepository) ListInsights() []*entities.Insight {
	return r.filterInsights(func(*entities.Insight) bool { return true })
}

func (r *taskRepository) GetActionsByMeeting(meetingID string) []*entities.Action {
	return r.filterActions(func(a *entities.Action) bool { return a.MeetingID == meetingID })
}

func (r *taskRepository) GetInsightsByMeeting(meetingID string) []*entities.Insight {
	return r.filterInsights(func(i *entities.Insight) bool { return i.SourceMeeting == meetingID })
}

func (r *taskRepository) GetActionsByDomain(domain string) []*entities.Action {
	return r.filterActions(func(a *entities.Action) bool { return a.Domain == domain })
}

func (r *taskRepository) GetInsightsByDomain(domain string) []*entities.Insight {
	return r.filterInsights(func(i *entities.Insight) bool { return i.Domain == domain })
}

func (r *taskRepository) UpdateActionStatus(id string, status entities.ActionStatus, assignee *string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.actions {
		if a.ID != id {
			continue
		}
		a.Status = status
		if assignee != nil && *assignee != "" {
			as := *assignee
			a.Assignee = &as
		}
		a.UpdatedAt = r.now()
		return true
	}
	return false
}

func (r *taskRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meetings = nil
	r.actions = nil
	r.insights = nil
}

func (r *taskRepository) filterActions(keep func(*entities.Action) bool) []*entities.Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.Action, 0)
	for _, a := range r.actions {
		if keep(a) {
			out = append(out, a.Clone())
		}
	}
	return out
}

func (r *taskRepository) filterInsights(keep func(*entities.Insight) bool) []*entities.Insight {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.Insight, 0)
	for _, i := range r.insights {
		if keep(i) {
			out = append(out, i.Clone())
		}
	}
	return out
}
