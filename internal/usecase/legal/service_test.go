package legal

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/legalmind/internal/adapter/repository"
	"github.com/johnquangdev/legalmind/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/legalmind/internal/usecase/errors"
	"github.com/johnquangdev/legalmind/pkg/ai"
	"github.com/johnquangdev/legalmind/pkg/config"
	"github.com/johnquangdev/legalmind/pkg/meetstream"
)

type fakeBots struct {
	entries   []entities.RawTranscriptEntry
	message   string
	removed   []string
	createErr error
	statusErr error
	removeErr error
	created   meetstream.CreateBotRequest
}

func (f *fakeBots) CreateBot(_ context.Context, req meetstream.CreateBotRequest) (*meetstream.BotResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = req
	return &meetstream.BotResponse{BotID: "bot-1", Status: "joining"}, nil
}

func (f *fakeBots) GetBotStatus(_ context.Context, botID string) (*meetstream.BotResponse, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &meetstream.BotResponse{BotID: botID, Status: "in_meeting"}, nil
}

func (f *fakeBots) RemoveBot(_ context.Context, botID string) (*meetstream.BotResponse, error) {
	if f.removeErr != nil {
		return nil, f.removeErr
	}
	f.removed = append(f.removed, botID)
	return &meetstream.BotResponse{BotID: botID, Status: "removed"}, nil
}

func (f *fakeBots) GetTranscript(context.Context, string) (*meetstream.TranscriptResult, error) {
	return &meetstream.TranscriptResult{Entries: f.entries, Message: f.message}, nil
}

type fakeArchiver struct {
	meetingIDs []string
	err        error
}

func (f *fakeArchiver) ArchiveMeeting(_ context.Context, meetingID string, _ interface{}, _ *entities.AnalysisResult) error {
	f.meetingIDs = append(f.meetingIDs, meetingID)
	return f.err
}

type fakeTranscriber struct {
	entries []entities.RawTranscriptEntry
	err     error
}

func (f *fakeTranscriber) Transcribe(context.Context, string) ([]entities.RawTranscriptEntry, error) {
	return f.entries, f.err
}

var serviceTime = time.Date(2025, 4, 23, 14, 5, 0, 0, time.UTC)

func newTestService(bots BotClient, transcriber Transcriber, archiver Archiver, completer ai.Completer) *legalService {
	repo := repository.NewTaskRepository()
	pipeline := NewPipeline(completer, false, nil, nil)
	materializer := NewMaterializer(repo, nil, nil)
	materializer.now = func() time.Time { return serviceTime }

	svc := NewService(ServiceDeps{
		Repo:         repo,
		Pipeline:     pipeline,
		Materializer: materializer,
		Bots:         bots,
		Transcriber:  transcriber,
		Archiver:     archiver,
	}).(*legalService)
	svc.now = func() time.Time { return serviceTime }
	return svc
}

func contractsModel() ai.Completer {
	var (
		calls []string
		mu    sync.Mutex
	)
	return scriptedModel(&calls, &mu)
}

func TestNewMeetingID(t *testing.T) {
	id := NewMeetingID()
	assert.Regexp(t, regexp.MustCompile(`^meeting_[0-9a-f]{8}$`), id)
	assert.NotEqual(t, id, NewMeetingID())
}

func TestService_JoinMeeting(t *testing.T) {
	bots := &fakeBots{}
	svc := newTestService(bots, nil, nil, contractsModel())

	resp, err := svc.JoinMeeting(context.Background(), JoinMeetingInput{MeetingLink: "https://zoom.us/j/1", AudioRequired: true})
	require.NoError(t, err)
	assert.Equal(t, "bot-1", resp.BotID)
	assert.Equal(t, "https://zoom.us/j/1", bots.created.MeetingLink)
	assert.True(t, bots.created.AudioRequired)

	_, err = svc.JoinMeeting(context.Background(), JoinMeetingInput{})
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
}

func TestService_BotErrors(t *testing.T) {
	notFound := &meetstream.StatusError{Operation: "status", StatusCode: 404, Body: "missing"}
	svc := newTestService(&fakeBots{statusErr: notFound, createErr: errors.New("dial tcp")}, nil, nil, contractsModel())

	_, err := svc.BotStatus(context.Background(), "bot-9")
	assert.ErrorIs(t, err, usecaseErrors.ErrBotNotFound)
	var statusErr *meetstream.StatusError
	assert.ErrorAs(t, err, &statusErr)

	_, err = svc.JoinMeeting(context.Background(), JoinMeetingInput{MeetingLink: "https://meet.google.com/x"})
	assert.ErrorIs(t, err, usecaseErrors.ErrBotOperationFailed)

	_, err = svc.BotStatus(context.Background(), " ")
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)

	noBots := newTestService(nil, nil, nil, contractsModel())
	_, err = noBots.BotStatus(context.Background(), "bot-1")
	assert.ErrorIs(t, err, usecaseErrors.ErrUnavailable)
}

func TestService_TranscriptSnapshot(t *testing.T) {
	svc := newTestService(&fakeBots{entries: sampleRaw}, nil, nil, contractsModel())

	snap, err := svc.TranscriptSnapshot(context.Background(), "bot-1")
	require.NoError(t, err)
	require.Len(t, snap.Transcript, 2)
	assert.Equal(t, "01:30", snap.Transcript[1].Timestamp)
	assert.Equal(t, 2, snap.Metrics.ParticipantCount)

	notReady := newTestService(&fakeBots{message: meetstream.RecordingNotReadyMessage}, nil, nil, contractsModel())
	snap, err = notReady.TranscriptSnapshot(context.Background(), "bot-1")
	require.NoError(t, err)
	assert.NotNil(t, snap.Transcript)
	assert.Empty(t, snap.Transcript)
	assert.Equal(t, meetstream.RecordingNotReadyMessage, snap.Message)
}

func TestService_LeaveMeeting(t *testing.T) {
	bots := &fakeBots{entries: sampleRaw}
	archiver := &fakeArchiver{err: errors.New("minio down")}
	svc := newTestService(bots, nil, archiver, contractsModel())
	svc.newID = func() string { return "meeting_abcd1234" }

	out, err := svc.LeaveMeeting(context.Background(), "bot-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"bot-1"}, bots.removed)
	assert.Equal(t, "meeting_abcd1234", out.MeetingID)
	assert.Equal(t, "Legal Meeting on 2025-04-23 14:05", out.Title)
	assert.Equal(t, []string{"act-meeting_abcd1234-contracts-0"}, out.Records.ActionIDs)
	assert.Equal(t, []string{"meeting_abcd1234"}, archiver.meetingIDs, "archive failures are not fatal")

	details, err := svc.GetMeeting(context.Background(), "meeting_abcd1234")
	require.NoError(t, err)
	assert.Equal(t, out.Title, details.Meeting.Title)
	assert.Len(t, details.Actions, 1)
	assert.Len(t, details.Insights, 1)
}

func TestService_LeaveMeeting_EmptyTranscript(t *testing.T) {
	bots := &fakeBots{message: meetstream.RecordingNotReadyMessage}
	svc := newTestService(bots, nil, nil, contractsModel())

	_, err := svc.LeaveMeeting(context.Background(), "bot-1")
	assert.ErrorIs(t, err, usecaseErrors.ErrEmptyTranscript)
	assert.Equal(t, []string{"bot-1"}, bots.removed)
	assert.Empty(t, svc.ListMeetings(context.Background()))
}

func TestService_LeaveMeeting_RemoveFails(t *testing.T) {
	svc := newTestService(&fakeBots{entries: sampleRaw, removeErr: errors.New("boom")}, nil, nil, contractsModel())

	_, err := svc.LeaveMeeting(context.Background(), "bot-1")
	assert.ErrorIs(t, err, usecaseErrors.ErrBotOperationFailed)
	assert.Empty(t, svc.ListMeetings(context.Background()))
}

func TestService_ProcessNow(t *testing.T) {
	bots := &fakeBots{entries: sampleRaw}
	svc := newTestService(bots, nil, nil, contractsModel())

	out, err := svc.ProcessNow(context.Background(), "bot-1")
	require.NoError(t, err)
	assert.Empty(t, bots.removed)
	assert.Equal(t, "Live Meeting on 2025-04-23 14:05", out.Title)
}

func TestService_AnalyzeTranscript(t *testing.T) {
	svc := newTestService(nil, nil, nil, contractsModel())

	out, err := svc.AnalyzeTranscript(context.Background(), AnalyzeInput{
		Title: "Pasted transcript",
		Transcript: entities.Transcript{Entries: []entities.TranscriptEntry{
			{Speaker: "Alice", Timestamp: "00:00", Text: "Contract renewal"},
			{Speaker: "Carol", Timestamp: "05:00", Text: "Agreed"},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pasted transcript", out.Title)
	assert.Equal(t, 300, out.Analysis.DurationSeconds)
	assert.Equal(t, []string{"Alice", "Carol"}, out.Analysis.Participants)

	_, err = svc.AnalyzeTranscript(context.Background(), AnalyzeInput{})
	assert.ErrorIs(t, err, usecaseErrors.ErrEmptyTranscript)
}

func TestService_AnalyzeTranscript_FailedAnalysis(t *testing.T) {
	completer := panickyModel{ai.CompleterFunc{Name: "x", Fn: func(context.Context, string) (string, error) { return "{}", nil }}}
	svc := newTestService(nil, nil, nil, completer)

	_, err := svc.AnalyzeTranscript(context.Background(), AnalyzeInput{Raw: sampleRaw})
	assert.ErrorIs(t, err, usecaseErrors.ErrAnalysisFailed)
	assert.Empty(t, svc.ListMeetings(context.Background()))
}

func TestService_TranscribeRecording(t *testing.T) {
	svc := newTestService(nil, &fakeTranscriber{entries: sampleRaw}, nil, contractsModel())

	out, err := svc.TranscribeRecording(context.Background(), TranscribeInput{AudioURL: "https://example.com/a.mp3"})
	require.NoError(t, err)
	assert.Equal(t, "Recorded Meeting on 2025-04-23 14:05", out.Title)

	_, err = svc.TranscribeRecording(context.Background(), TranscribeInput{})
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)

	failing := newTestService(nil, &fakeTranscriber{err: errors.New("assemblyai error: bad audio")}, nil, contractsModel())
	_, err = failing.TranscribeRecording(context.Background(), TranscribeInput{AudioURL: "https://example.com/a.mp3"})
	assert.ErrorContains(t, err, "bad audio")

	none := newTestService(nil, nil, nil, contractsModel())
	_, err = none.TranscribeRecording(context.Background(), TranscribeInput{AudioURL: "https://example.com/a.mp3"})
	assert.ErrorIs(t, err, usecaseErrors.ErrUnavailable)
}

func TestService_ActionsLifecycle(t *testing.T) {
	svc := newTestService(nil, nil, nil, contractsModel())
	ctx := context.Background()

	res, err := svc.LoadDemo(ctx)
	require.NoError(t, err)
	assert.Equal(t, DemoMeetingID, res.MeetingID)
	assert.Len(t, res.ActionIDs, 6)
	assert.Len(t, res.InsightIDs, 6)

	stats := svc.Stats(ctx)
	assert.Equal(t, 6, stats.PendingActions)
	require.NotNil(t, stats.CompletionRate)
	assert.Equal(t, 0, *stats.CompletionRate)

	assignee := "dana@firm.example"
	action, err := svc.UpdateActionStatus(ctx, "act-demo_meeting_1-compliance-0", entities.ActionStatusInProgress, &assignee)
	require.NoError(t, err)
	assert.Equal(t, entities.ActionStatusInProgress, action.Status)
	require.NotNil(t, action.Assignee)
	assert.Equal(t, assignee, *action.Assignee)

	_, err = svc.UpdateActionStatus(ctx, "act-missing", entities.ActionStatusCompleted, nil)
	assert.ErrorIs(t, err, usecaseErrors.ErrActionNotFound)
	_, err = svc.UpdateActionStatus(ctx, "act-demo_meeting_1-compliance-0", "done", nil)
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidStatus)

	open := svc.ListActions(ctx, ActionFilter{Statuses: []entities.ActionStatus{entities.ActionStatusInProgress}})
	require.Len(t, open, 1)

	insight, err := svc.GetInsight(ctx, "ins-demo_meeting_1-contracts-1")
	require.NoError(t, err)
	assert.Equal(t, "Missing IP assignment clauses in contractor agreem...", insight.Title)
	assert.Equal(t, "Missing IP assignment clauses in contractor agreements", insight.Description)
	assert.Equal(t, []string{config.DomainContracts}, insight.Tags)

	_, err = svc.GetAction(ctx, "nope")
	assert.ErrorIs(t, err, usecaseErrors.ErrActionNotFound)
	_, err = svc.GetMeeting(ctx, "nope")
	assert.ErrorIs(t, err, usecaseErrors.ErrMeetingNotFound)

	svc.ClearData(ctx)
	assert.Empty(t, svc.ListMeetings(ctx))
	assert.Empty(t, svc.ListActions(ctx, ActionFilter{}))
	assert.Empty(t, svc.ListInsights(ctx, InsightFilter{}))
	assert.Len(t, svc.Domains(), 5)
}

func TestService_LoadDemoTwice(t *testing.T) {
	svc := newTestService(nil, nil, nil, contractsModel())
	ctx := context.Background()

	_, err := svc.LoadDemo(ctx)
	require.NoError(t, err)

	res, err := svc.LoadDemo(ctx)
	assert.ErrorIs(t, err, usecaseErrors.ErrMeetingExists)
	assert.Nil(t, res)

	assert.Len(t, svc.ListMeetings(ctx), 1)
	actions := svc.ListActions(ctx, ActionFilter{})
	assert.Len(t, actions, 6)
	seen := map[string]bool{}
	for _, a := range actions {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
	}

	svc.ClearData(ctx)
	_, err = svc.LoadDemo(ctx)
	assert.NoError(t, err)
}
