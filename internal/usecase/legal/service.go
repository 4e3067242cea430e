package legal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/legalmind/internal/domain/entities"
	"github.com/johnquangdev/legalmind/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/legalmind/internal/usecase/errors"
	"github.com/johnquangdev/legalmind/pkg/config"
	"github.com/johnquangdev/legalmind/pkg/meetstream"
)

// Service defines the legal meeting assistant use cases
type Service interface {
	// Domains lists the legal domains every transcript is analyzed against
	Domains() []config.LegalDomain

	// JoinMeeting sends a bot into a meeting
	JoinMeeting(ctx context.Context, input JoinMeetingInput) (*meetstream.BotResponse, error)
	// BotStatus reports the provider status of a bot
	BotStatus(ctx context.Context, botID string) (*meetstream.BotResponse, error)
	// TranscriptSnapshot returns the live transcript captured so far
	TranscriptSnapshot(ctx context.Context, botID string) (*TranscriptSnapshot, error)
	// ProcessNow analyzes the live transcript without removing the bot
	ProcessNow(ctx context.Context, botID string) (*ProcessOutput, error)
	// LeaveMeeting removes the bot, then analyzes and stores the final transcript
	LeaveMeeting(ctx context.Context, botID string) (*ProcessOutput, error)

	// AnalyzeTranscript analyzes a transcript supplied by the caller
	AnalyzeTranscript(ctx context.Context, input AnalyzeInput) (*ProcessOutput, error)
	// TranscribeRecording transcribes a recording and analyzes the result
	TranscribeRecording(ctx context.Context, input TranscribeInput) (*ProcessOutput, error)

	GetMeeting(ctx context.Context, id string) (*MeetingDetails, error)
	ListMeetings(ctx context.Context) []*entities.Meeting
	GetAction(ctx context.Context, id string) (*entities.Action, error)
	ListActions(ctx context.Context, filter ActionFilter) []*entities.Action
	UpdateActionStatus(ctx context.Context, id string, status entities.ActionStatus, assignee *string) (*entities.Action, error)
	GetInsight(ctx context.Context, id string) (*entities.Insight, error)
	ListInsights(ctx context.Context, filter InsightFilter) []*entities.Insight
	Stats(ctx context.Context) *DashboardStats

	// LoadDemo stores the demo meeting
	LoadDemo(ctx context.Context) (*MaterializeResult, error)
	// ClearData drops every stored record
	ClearData(ctx context.Context)
}

// BotClient is the meeting bot provider
type BotClient interface {
	CreateBot(ctx context.Context, req meetstream.CreateBotRequest) (*meetstream.BotResponse, error)
	GetBotStatus(ctx context.Context, botID string) (*meetstream.BotResponse, error)
	RemoveBot(ctx context.Context, botID string) (*meetstream.BotResponse, error)
	GetTranscript(ctx context.Context, botID string) (*meetstream.TranscriptResult, error)
}

// Transcriber turns a recording into provider transcript entries
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) ([]entities.RawTranscriptEntry, error)
}

// Archiver keeps a copy of the transcript and analysis of a meeting
type Archiver interface {
	ArchiveMeeting(ctx context.Context, meetingID string, transcript interface{}, analysis *entities.AnalysisResult) error
}

// JoinMeetingInput represents input for sending a bot into a meeting
type JoinMeetingInput struct {
	MeetingLink       string
	BotName           string
	AudioRequired     bool
	VideoRequired     bool
	LiveTranscription bool
}

// AnalyzeInput represents a caller supplied transcript
type AnalyzeInput struct {
	Title string
	// Raw takes precedence over Transcript when both are set
	Raw        []entities.RawTranscriptEntry
	Transcript entities.Transcript
}

// TranscribeInput represents a recording to transcribe and analyze
type TranscribeInput struct {
	AudioURL string
	Title    string
}

// TranscriptSnapshot is a normalized live transcript
type TranscriptSnapshot struct {
	BotID      string                     `json:"bot_id"`
	Transcript []entities.TranscriptEntry `json:"transcript"`
	Metrics    entities.TranscriptMetrics `json:"metrics"`
	Message    string                     `json:"message,omitempty"`
}

// ProcessOutput is the result of analyzing and storing one meeting
type ProcessOutput struct {
	MeetingID string                   `json:"meeting_id"`
	Title     string                   `json:"title"`
	Analysis  *entities.AnalysisResult `json:"analysis"`
	Records   *MaterializeResult       `json:"records"`
}

// MeetingDetails is a meeting with its derived records
type MeetingDetails struct {
	Meeting  *entities.Meeting   `json:"meeting"`
	Actions  []*entities.Action  `json:"actions"`
	Insights []*entities.Insight `json:"insights"`
}

type legalService struct {
	repo         repositories.TaskRepository
	pipeline     *Pipeline
	materializer *Materializer
	dashboard    *Dashboard
	bots         BotClient
	transcriber  Transcriber
	archiver     Archiver
	logger       *zap.Logger
	now          func() time.Time
	newID        func() string
}

// ServiceDeps holds the collaborators of the legal service. Transcriber and
// Archiver are optional.
type ServiceDeps struct {
	Repo         repositories.TaskRepository
	Pipeline     *Pipeline
	Materializer *Materializer
	Bots         BotClient
	Transcriber  Transcriber
	Archiver     Archiver
	Logger       *zap.Logger
}

// NewService creates a new legal service
func NewService(deps ServiceDeps) Service {
	return &legalService{
		repo:         deps.Repo,
		pipeline:     deps.Pipeline,
		materializer: deps.Materializer,
		dashboard:    NewDashboard(deps.Repo),
		bots:         deps.Bots,
		transcriber:  deps.Transcriber,
		archiver:     deps.Archiver,
		logger:       deps.Logger,
		now:          time.Now,
		newID:        NewMeetingID,
	}
}

// NewMeetingID returns an id of the form meeting_<8 hex>
func NewMeetingID() string {
	return "meeting_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (s *legalService) Domains() []config.LegalDomain {
	return config.LegalDomains()
}

func (s *legalService) JoinMeeting(ctx context.Context, input JoinMeetingInput) (*meetstream.BotResponse, error) {
	if strings.TrimSpace(input.MeetingLink) == "" {
		return nil, fmt.Errorf("%w: meeting link is required", usecaseErrors.ErrInvalidInput)
	}
	if s.bots == nil {
		return nil, fmt.Errorf("%w: meeting bot provider", usecaseErrors.ErrUnavailable)
	}

	resp, err := s.bots.CreateBot(ctx, meetstream.CreateBotRequest{
		MeetingLink:       input.MeetingLink,
		BotName:           input.BotName,
		AudioRequired:     input.AudioRequired,
		VideoRequired:     input.VideoRequired,
		LiveTranscription: input.LiveTranscription,
	})
	if err != nil {
		return nil, botError("create bot", err)
	}

	if s.logger != nil {
		s.logger.Info("🤖 Bot joined meeting",
			zap.String("bot_id", resp.BotID),
			zap.String("status", resp.Status),
		)
	}
	return resp, nil
}

func (s *legalService) BotStatus(ctx context.Context, botID string) (*meetstream.BotResponse, error) {
	if err := s.requireBot(botID); err != nil {
		return nil, err
	}
	resp, err := s.bots.GetBotStatus(ctx, botID)
	if err != nil {
		return nil, botError("get bot status", err)
	}
	return resp, nil
}

func (s *legalService) TranscriptSnapshot(ctx context.Context, botID string) (*TranscriptSnapshot, error) {
	if err := s.requireBot(botID); err != nil {
		return nil, err
	}
	result, err := s.bots.GetTranscript(ctx, botID)
	if err != nil {
		return nil, botError("get transcript", err)
	}

	transcript := Normalize(result.Entries)
	return &TranscriptSnapshot{
		BotID:      botID,
		Transcript: transcript.Entries,
		Metrics:    Metrics(transcript),
		Message:    result.Message,
	}, nil
}

func (s *legalService) ProcessNow(ctx context.Context, botID string) (*ProcessOutput, error) {
	if err := s.requireBot(botID); err != nil {
		return nil, err
	}
	result, err := s.bots.GetTranscript(ctx, botID)
	if err != nil {
		return nil, botError("get transcript", err)
	}
	return s.processRaw(ctx, botID, result.Entries, s.title("Live Meeting on"))
}

func (s *legalService) LeaveMeeting(ctx context.Context, botID string) (*ProcessOutput, error) {
	if err := s.requireBot(botID); err != nil {
		return nil, err
	}
	if _, err := s.bots.RemoveBot(ctx, botID); err != nil {
		return nil, botError("remove bot", err)
	}
	if s.logger != nil {
		s.logger.Info("👋 Bot left meeting", zap.String("bot_id", botID))
	}

	result, err := s.bots.GetTranscript(ctx, botID)
	if err != nil {
		return nil, botError("get transcript", err)
	}
	return s.processRaw(ctx, botID, result.Entries, s.title("Legal Meeting on"))
}

func (s *legalService) AnalyzeTranscript(ctx context.Context, input AnalyzeInput) (*ProcessOutput, error) {
	title := input.Title
	if title == "" {
		title = s.title("Legal Meeting on")
	}
	if len(input.Raw) > 0 {
		return s.processRaw(ctx, "", input.Raw, title)
	}
	if input.Transcript.IsEmpty() {
		return nil, usecaseErrors.ErrEmptyTranscript
	}
	analysis := s.pipeline.Analyze(ctx, input.Transcript)
	return s.store(ctx, s.newID(), title, input.Transcript, analysis)
}

func (s *legalService) TranscribeRecording(ctx context.Context, input TranscribeInput) (*ProcessOutput, error) {
	if strings.TrimSpace(input.AudioURL) == "" {
		return nil, fmt.Errorf("%w: audio url is required", usecaseErrors.ErrInvalidInput)
	}
	if s.transcriber == nil {
		return nil, fmt.Errorf("%w: transcription provider", usecaseErrors.ErrUnavailable)
	}

	raw, err := s.transcriber.Transcribe(ctx, input.AudioURL)
	if err != nil {
		return nil, fmt.Errorf("failed to transcribe recording: %w", err)
	}
	title := input.Title
	if title == "" {
		title = s.title("Recorded Meeting on")
	}
	return s.processRaw(ctx, "", raw, title)
}

func (s *legalService) GetMeeting(_ context.Context, id string) (*MeetingDetails, error) {
	meeting, ok := s.repo.GetMeetingByID(id)
	if !ok {
		return nil, usecaseErrors.ErrMeetingNotFound
	}
	return &MeetingDetails{
		Meeting:  meeting,
		Actions:  s.repo.GetActionsByMeeting(id),
		Insights: s.repo.GetInsightsByMeeting(id),
	}, nil
}

func (s *legalService) ListMeetings(_ context.Context) []*entities.Meeting {
	return s.repo.ListMeetings()
}

func (s *legalService) GetAction(_ context.Context, id string) (*entities.Action, error) {
	action, ok := s.repo.GetActionByID(id)
	if !ok {
		return nil, usecaseErrors.ErrActionNotFound
	}
	return action, nil
}

func (s *legalService) ListActions(_ context.Context, filter ActionFilter) []*entities.Action {
	return s.dashboard.Actions(filter)
}

func (s *legalService) UpdateActionStatus(_ context.Context, id string, status entities.ActionStatus, assignee *string) (*entities.Action, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", usecaseErrors.ErrInvalidStatus, status)
	}
	if !s.repo.UpdateActionStatus(id, status, assignee) {
		return nil, usecaseErrors.ErrActionNotFound
	}
	action, _ := s.repo.GetActionByID(id)

	if s.logger != nil {
		s.logger.Info("✏️ Action status updated",
			zap.String("action_id", id),
			zap.String("status", string(status)),
		)
	}
	return action, nil
}

func (s *legalService) GetInsight(_ context.Context, id string) (*entities.Insight, error) {
	insight, ok := s.repo.GetInsightByID(id)
	if !ok {
		return nil, usecaseErrors.ErrInsightNotFound
	}
	return insight, nil
}

func (s *legalService) ListInsights(_ context.Context, filter InsightFilter) []*entities.Insight {
	return s.dashboard.Insights(filter)
}

func (s *legalService) Stats(_ context.Context) *DashboardStats {
	return s.dashboard.Stats()
}

func (s *legalService) LoadDemo(_ context.Context) (*MaterializeResult, error) {
	return s.materializer.Materialize(DemoMeetingID, DemoMeetingTitle, DemoAnalysis(s.now()))
}

func (s *legalService) ClearData(_ context.Context) {
	s.repo.Clear()
	if s.logger != nil {
		s.logger.Info("🧹 All records cleared")
	}
}

func (s *legalService) processRaw(ctx context.Context, botID string, raw []entities.RawTranscriptEntry, title string) (*ProcessOutput, error) {
	if len(raw) == 0 {
		if botID != "" {
			return nil, fmt.Errorf("%w: bot %s", usecaseErrors.ErrEmptyTranscript, botID)
		}
		return nil, usecaseErrors.ErrEmptyTranscript
	}
	analysis := s.pipeline.Process(ctx, raw)
	return s.store(ctx, s.newID(), title, raw, analysis)
}

func (s *legalService) store(ctx context.Context, meetingID, title string, transcript interface{}, analysis *entities.AnalysisResult) (*ProcessOutput, error) {
	if analysis.Failed() {
		return nil, fmt.Errorf("%w: %s", usecaseErrors.ErrAnalysisFailed, analysis.Error)
	}

	records, err := s.materializer.Materialize(meetingID, title, analysis)
	if err != nil {
		return nil, err
	}
	s.archive(ctx, meetingID, transcript, analysis)

	return &ProcessOutput{
		MeetingID: meetingID,
		Title:     title,
		Analysis:  analysis,
		Records:   records,
	}, nil
}

// archive failures never fail the request
func (s *legalService) archive(ctx context.Context, meetingID string, transcript interface{}, analysis *entities.AnalysisResult) {
	if s.archiver == nil {
		return
	}
	if err := s.archiver.ArchiveMeeting(ctx, meetingID, transcript, analysis); err != nil && s.logger != nil {
		s.logger.Warn("⚠️ Failed to archive meeting",
			zap.String("meeting_id", meetingID),
			zap.Error(err),
		)
	}
}

func (s *legalService) requireBot(botID string) error {
	if strings.TrimSpace(botID) == "" {
		return fmt.Errorf("%w: bot id is required", usecaseErrors.ErrInvalidInput)
	}
	if s.bots == nil {
		return fmt.Errorf("%w: meeting bot provider", usecaseErrors.ErrUnavailable)
	}
	return nil
}

func (s *legalService) title(prefix string) string {
	return prefix + " " + s.now().Format("2006-01-02 15:04")
}

// botError maps provider failures onto the bot sentinels, keeping the cause
func botError(op string, err error) error {
	var statusErr *meetstream.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
		return fmt.Errorf("%w: %s: %w", usecaseErrors.ErrBotNotFound, op, err)
	}
	return fmt.Errorf("%w: %s: %w", usecaseErrors.ErrBotOperationFailed, op, err)
}
