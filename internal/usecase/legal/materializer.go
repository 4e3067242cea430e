package legal

import (
	"fmt"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/johnquangdev/legalmind/internal/domain/entities"
	"github.com/johnquangdev/legalmind/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/legalmind/internal/usecase/errors"
	"github.com/johnquangdev/legalmind/pkg/config"
	"github.com/johnquangdev/legalmind/pkg/metrics"
)

const (
	maxTitleLength      = 50
	untitledActionTitle = "Untitled Action"
	untitledInsightName = "Untitled Insight"
)

// MaterializeResult lists the records created for one meeting
type MaterializeResult struct {
	ActionIDs  []string `json:"action_ids"`
	InsightIDs []string `json:"insight_ids"`
	MeetingID  string   `json:"meeting_id"`
}

// Materializer turns an analysis into Action, Insight and Meeting records
type Materializer struct {
	// mu makes the existence check and the inserts of one meeting atomic
	mu      sync.Mutex
	repo    repositories.TaskRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewMaterializer creates a materializer writing into repo
func NewMaterializer(repo repositories.TaskRepository, m *metrics.Metrics, logger *zap.Logger) *Materializer {
	return &Materializer{repo: repo, metrics: m, logger: logger, now: time.Now}
}

// TruncateTitle keeps the first 50 characters and appends "..." when s is longer
func TruncateTitle(s string) string {
	if utf8.RuneCountInString(s) <= maxTitleLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxTitleLength]) + "..."
}

// Materialize stores the records derived from analysis. Opaque domain results
// contribute no records but are still listed in DomainsProcessed. The Meeting is
// inserted after all of its actions and insights. A meeting id that is already
// stored is rejected with ErrMeetingExists.
func (m *Materializer) Materialize(meetingID, title string, analysis *entities.AnalysisResult) (*MaterializeResult, error) {
	if meetingID == "" {
		return nil, fmt.Errorf("%w: meeting id is required", usecaseErrors.ErrInvalidInput)
	}
	if analysis.Failed() {
		return nil, fmt.Errorf("%w: %s", usecaseErrors.ErrAnalysisFailed, failureMessage(analysis))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.repo.GetMeetingByID(meetingID); exists {
		return nil, fmt.Errorf("%w: %s", usecaseErrors.ErrMeetingExists, meetingID)
	}

	now := m.now()
	result := &MaterializeResult{
		ActionIDs:  make([]string, 0),
		InsightIDs: make([]string, 0),
		MeetingID:  meetingID,
	}
	domainsProcessed := make([]string, 0, len(analysis.Domains))

	for _, key := range orderedDomainKeys(analysis.Domains) {
		domainsProcessed = append(domainsProcessed, key)
		dr := analysis.Domains[key]
		if !dr.IsStructured() {
			continue
		}

		actions := 0
		for i, item := range dr.Analysis.ActionItems {
			action, ok := buildAction(meetingID, key, i, item, now)
			if !ok {
				continue
			}
			result.ActionIDs = append(result.ActionIDs, m.repo.AddAction(action))
			actions++
		}

		insights := 0
		for i, issue := range dr.Analysis.KeyIssues {
			insight, ok := buildInsight(meetingID, key, i, issue, now)
			if !ok {
				continue
			}
			result.InsightIDs = append(result.InsightIDs, m.repo.AddInsight(insight))
			insights++
		}

		m.metrics.AddRecords("action", key, actions)
		m.metrics.AddRecords("insight", key, insights)
	}

	summary := analysis.Summary
	if summary == "" {
		summary = entities.NoSummaryPlaceholder
	}
	participants := append(make([]string, 0, len(analysis.Participants)), analysis.Participants...)

	m.repo.AddMeeting(&entities.Meeting{
		ID:                meetingID,
		Title:             title,
		Date:              now.Format("2006-01-02"),
		BotID:             meetingID,
		Participants:      participants,
		DurationSeconds:   analysis.DurationSeconds,
		TranscriptSummary: summary,
		DomainsProcessed:  domainsProcessed,
		HasActionItems:    len(result.ActionIDs) > 0,
		HasInsights:       len(result.InsightIDs) > 0,
		CreatedAt:         now,
	})
	m.metrics.AddRecords("meeting", "", 1)

	if m.logger != nil {
		m.logger.Info("📦 Meeting records materialized",
			zap.String("meeting_id", meetingID),
			zap.Int("actions", len(result.ActionIDs)),
			zap.Int("insights", len(result.InsightIDs)),
			zap.Strings("domains", domainsProcessed),
		)
	}
	return result, nil
}

func buildAction(meetingID, domain string, i int, item entities.ActionItemEntry, now time.Time) (*entities.Action, bool) {
	action := &entities.Action{
		ID:        fmt.Sprintf("act-%s-%s-%d", meetingID, domain, i),
		MeetingID: meetingID,
		Domain:    domain,
		Priority:  entities.PriorityMedium,
		Status:    entities.ActionStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch {
	case item.Kind == entities.EntryPlainText:
		action.Title = TruncateTitle(item.Text)
		action.Description = item.Text
	case item.IsDetailed():
		// blank and missing titles are treated alike
		action.Title = item.Detail.Title
		if action.Title == "" {
			action.Title = untitledActionTitle
		}
		action.Description = item.Detail.Description
		action.Priority = entities.ParsePriority(item.Detail.Priority)
		if item.Detail.Deadline != "" {
			deadline := item.Detail.Deadline
			action.Deadline = &deadline
		}
	default:
		return nil, false
	}
	return action, true
}

func buildInsight(meetingID, domain string, i int, issue entities.IssueEntry, now time.Time) (*entities.Insight, bool) {
	insight := &entities.Insight{
		ID:            fmt.Sprintf("ins-%s-%s-%d", meetingID, domain, i),
		Domain:        domain,
		SourceMeeting: meetingID,
		Importance:    entities.ImportanceMedium,
		Tags:          []string{domain},
		CreatedAt:     now,
	}

	switch {
	case issue.Kind == entities.EntryPlainText:
		insight.Title = TruncateTitle(issue.Text)
		insight.Description = issue.Text
	case issue.IsDetailed():
		insight.Title = issue.Detail.Title
		if insight.Title == "" {
			insight.Title = untitledInsightName
		}
		insight.Description = issue.Detail.Description
		insight.Importance = entities.ParseImportance(issue.Detail.Importance)
		insight.Tags = append(insight.Tags, issue.Detail.Tags...)
	default:
		return nil, false
	}
	return insight, true
}

// orderedDomainKeys lists configured domains first, in table order, then any
// other keys sorted
func orderedDomainKeys(domains map[string]entities.DomainResult) []string {
	keys := make([]string, 0, len(domains))
	for _, k := range config.DomainKeys() {
		if _, ok := domains[k]; ok {
			keys = append(keys, k)
		}
	}

	extra := make([]string, 0)
	for k := range domains {
		if _, known := config.DomainByKey(k); !known {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func failureMessage(a *entities.AnalysisResult) string {
	if a == nil {
		return "no analysis"
	}
	return a.Error
}
