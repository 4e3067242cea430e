package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/legalmind/errors"
	"github.com/johnquangdev/legalmind/internal/adapter/dto/common"
	"github.com/johnquangdev/legalmind/internal/adapter/dto/legal"
	"github.com/johnquangdev/legalmind/internal/adapter/presenter"
	"github.com/johnquangdev/legalmind/internal/domain/entities"
	legalUsecase "github.com/johnquangdev/legalmind/internal/usecase/legal"
	"github.com/johnquangdev/legalmind/pkg/config"
	pkgvalidator "github.com/johnquangdev/legalmind/pkg/validator"
)

const archiveLinkExpiry = 15 * time.Minute

// ArchiveLinker resolves download links for an archived meeting
type ArchiveLinker interface {
	ArchiveURLs(ctx context.Context, meetingID string, expiry time.Duration) (map[string]string, error)
}

// Legal handles meeting analysis and dashboard HTTP requests
type Legal struct {
	service legalUsecase.Service
	archive ArchiveLinker
	logger  *zap.Logger
}

// NewLegalHandler creates a new legal handler. archive may be nil when
// storage is disabled.
func NewLegalHandler(service legalUsecase.Service, archive ArchiveLinker, logger *zap.Logger) *Legal {
	return &Legal{
		service: service,
		archive: archive,
		logger:  logger,
	}
}

// ListDomains handles GET /domains
// @Summary      List legal domains
// @Description  Returns the legal domains every transcript is analyzed against
// @Tags         Domains
// @Produce      json
// @Success      200  {object}  common.SuccessResponse{data=[]legal.DomainResponse}
// @Router       /domains [get]
func (h *Legal) ListDomains(c echo.Context) error {
	return HandleSuccess(h.logger, c, presenter.ToDomainResponses(h.service.Domains()))
}

// JoinMeeting handles POST /bots
// @Summary      Send a bot into a meeting
// @Description  Creates a meeting bot that records and transcribes the meeting
// @Tags         Bots
// @Accept       json
// @Produce      json
// @Param        request  body      legal.JoinMeetingRequest  true  "Meeting to join"
// @Success      201      {object}  common.SuccessResponse
// @Failure      400      {object}  common.ErrorResponse
// @Failure      502      {object}  common.ErrorResponse
// @Router       /bots [post]
func (h *Legal) JoinMeeting(c echo.Context) error {
	var req legal.JoinMeetingRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	audio := true
	if req.AudioRequired != nil {
		audio = *req.AudioRequired
	}

	bot, err := h.service.JoinMeeting(c.Request().Context(), legalUsecase.JoinMeetingInput{
		MeetingLink:       req.MeetingLink,
		BotName:           req.BotName,
		AudioRequired:     audio,
		VideoRequired:     req.VideoRequired,
		LiveTranscription: req.LiveTranscription,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}
	return HandleCreated(h.logger, c, bot)
}

// BotStatus handles GET /bots/:id/status
// @Summary      Get bot status
// @Tags         Bots
// @Produce      json
// @Param        id   path      string  true  "Bot ID"
// @Success      200  {object}  common.SuccessResponse
// @Failure      404  {object}  common.ErrorResponse
// @Failure      502  {object}  common.ErrorResponse
// @Router       /bots/{id}/status [get]
func (h *Legal) BotStatus(c echo.Context) error {
	botID := c.Param("id")
	bot, err := h.service.BotStatus(c.Request().Context(), botID)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, botID))
	}
	return HandleSuccess(h.logger, c, bot)
}

// BotTranscript handles GET /bots/:id/transcript
// @Summary      Get the live transcript
// @Description  Returns the normalized transcript captured so far with speaker statistics
// @Tags         Bots
// @Produce      json
// @Param        id   path      string  true  "Bot ID"
// @Success      200  {object}  common.SuccessResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /bots/{id}/transcript [get]
func (h *Legal) BotTranscript(c echo.Context) error {
	botID := c.Param("id")
	snapshot, err := h.service.TranscriptSnapshot(c.Request().Context(), botID)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, botID))
	}
	return HandleSuccess(h.logger, c, snapshot)
}

// ProcessNow handles POST /bots/:id/process
// @Summary      Analyze the live transcript
// @Description  Analyzes what the bot captured so far without removing it from the meeting
// @Tags         Bots
// @Produce      json
// @Param        id   path      string  true  "Bot ID"
// @Success      200  {object}  common.SuccessResponse{data=legal.ProcessResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Failure      422  {object}  common.ErrorResponse
// @Router       /bots/{id}/process [post]
func (h *Legal) ProcessNow(c echo.Context) error {
	botID := c.Param("id")
	out, err := h.service.ProcessNow(c.Request().Context(), botID)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, botID))
	}
	return HandleSuccess(h.logger, c, presenter.ToProcessResponse(out))
}

// LeaveMeeting handles POST /bots/:id/leave
// @Summary      Remove the bot and analyze the meeting
// @Tags         Bots
// @Produce      json
// @Param        id   path      string  true  "Bot ID"
// @Success      200  {object}  common.SuccessResponse{data=legal.ProcessResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Failure      422  {object}  common.ErrorResponse
// @Router       /bots/{id}/leave [post]
func (h *Legal) LeaveMeeting(c echo.Context) error {
	botID := c.Param("id")
	out, err := h.service.LeaveMeeting(c.Request().Context(), botID)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, botID))
	}
	return HandleSuccess(h.logger, c, presenter.ToProcessResponse(out))
}

// AnalyzeTranscript handles POST /transcripts/analyze
// @Summary      Analyze a transcript
// @Description  Accepts a provider transcript (entries with words) or a canonical one (entries with text)
// @Tags         Transcripts
// @Accept       json
// @Produce      json
// @Param        request  body      legal.AnalyzeTranscriptRequest  true  "Transcript"
// @Success      201      {object}  common.SuccessResponse{data=legal.ProcessResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      422      {object}  common.ErrorResponse
// @Router       /transcripts/analyze [post]
func (h *Legal) AnalyzeTranscript(c echo.Context) error {
	var req legal.AnalyzeTranscriptRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input, err := legalUsecase.DecodeTranscriptInput(req.Transcript)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}
	input.Title = req.Title

	out, err := h.service.AnalyzeTranscript(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}
	return HandleCreated(h.logger, c, presenter.ToProcessResponse(out))
}

// TranscribeRecording handles POST /recordings/transcribe
// @Summary      Transcribe and analyze a recording
// @Tags         Transcripts
// @Accept       json
// @Produce      json
// @Param        request  body      legal.TranscribeRecordingRequest  true  "Recording"
// @Success      201      {object}  common.SuccessResponse{data=legal.ProcessResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      503      {object}  common.ErrorResponse
// @Router       /recordings/transcribe [post]
func (h *Legal) TranscribeRecording(c echo.Context) error {
	var req legal.TranscribeRecordingRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	out, err := h.service.TranscribeRecording(c.Request().Context(), legalUsecase.TranscribeInput{
		AudioURL: req.AudioURL,
		Title:    req.Title,
	})
	if err != nil {
		appErr := toAppError(err, "")
		if ae, ok := appErr.(errors.AppError); ok && ae.Code == errors.ErrorCode_INTERNAL {
			appErr = errors.ErrAITranscriptionFailed(err)
		}
		return HandleError(h.logger, c, appErr)
	}
	return HandleCreated(h.logger, c, presenter.ToProcessResponse(out))
}

// ListMeetings handles GET /meetings
// @Summary      List processed meetings
// @Tags         Meetings
// @Produce      json
// @Success      200  {object}  common.SuccessResponse{data=common.ListResponse}
// @Router       /meetings [get]
func (h *Legal) ListMeetings(c echo.Context) error {
	meetings := presenter.ToMeetingResponses(h.service.ListMeetings(c.Request().Context()))
	return HandleSuccess(h.logger, c, common.ListResponse{Items: meetings, Total: len(meetings)})
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get a meeting with its actions and insights
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  common.SuccessResponse{data=legal.MeetingDetailsResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /meetings/{id} [get]
func (h *Legal) GetMeeting(c echo.Context) error {
	id := c.Param("id")
	details, err := h.service.GetMeeting(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, id))
	}

	resp := presenter.ToMeetingDetailsResponse(details)
	if h.archive != nil {
		urls, err := h.archive.ArchiveURLs(c.Request().Context(), id, archiveLinkExpiry)
		if err != nil {
			if h.logger != nil {
				h.logger.Warn("⚠️ Archive links unavailable", zap.String("meeting_id", id), zap.Error(err))
			}
		} else if len(urls) > 0 {
			resp.Archive = urls
		}
	}
	return HandleSuccess(h.logger, c, resp)
}

// GetMeetingArchive handles GET /meetings/:id/archive
// @Summary      Get archive download links
// @Description  Returns presigned links to the archived transcript and analysis
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  common.SuccessResponse
// @Failure      404  {object}  common.ErrorResponse
// @Failure      503  {object}  common.ErrorResponse
// @Router       /meetings/{id}/archive [get]
func (h *Legal) GetMeetingArchive(c echo.Context) error {
	id := c.Param("id")
	if h.archive == nil {
		return HandleError(h.logger, c, errors.ErrAIServiceUnavailable("storage"))
	}
	if _, err := h.service.GetMeeting(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, toAppError(err, id))
	}

	urls, err := h.archive.ArchiveURLs(c.Request().Context(), id, archiveLinkExpiry)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("archive_urls", err))
	}
	return HandleSuccess(h.logger, c, urls)
}

// ListActions handles GET /actions
// @Summary      List actions
// @Description  Filters by status (default pending,in_progress; "all" disables), priority, domain and meeting
// @Tags         Actions
// @Produce      json
// @Param        status      query     string  false  "Comma separated statuses or all"
// @Param        priority    query     string  false  "Comma separated priorities"
// @Param        domain      query     string  false  "Comma separated domain keys"
// @Param        meeting_id  query     string  false  "Meeting ID"
// @Param        sort        query     string  false  "priority_desc, priority_asc, status, newest or oldest"
// @Success      200         {object}  common.SuccessResponse{data=common.ListResponse}
// @Failure      400         {object}  common.ErrorResponse
// @Router       /actions [get]
func (h *Legal) ListActions(c echo.Context) error {
	var req legal.ListActionsRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	filter, err := actionFilter(req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	actions := presenter.ToActionResponses(h.service.ListActions(c.Request().Context(), filter))
	return HandleSuccess(h.logger, c, common.ListResponse{Items: actions, Total: len(actions)})
}

// GetAction handles GET /actions/:id
// @Summary      Get an action
// @Tags         Actions
// @Produce      json
// @Param        id   path      string  true  "Action ID"
// @Success      200  {object}  common.SuccessResponse{data=legal.ActionResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /actions/{id} [get]
func (h *Legal) GetAction(c echo.Context) error {
	id := c.Param("id")
	action, err := h.service.GetAction(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, id))
	}
	return HandleSuccess(h.logger, c, presenter.ToActionResponse(action))
}

// UpdateActionStatus handles PATCH /actions/:id/status
// @Summary      Update action status
// @Tags         Actions
// @Accept       json
// @Produce      json
// @Param        id       path      string                            true  "Action ID"
// @Param        request  body      legal.UpdateActionStatusRequest  true  "New status"
// @Success      200      {object}  common.SuccessResponse{data=legal.ActionResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /actions/{id}/status [patch]
func (h *Legal) UpdateActionStatus(c echo.Context) error {
	id := c.Param("id")
	var req legal.UpdateActionStatusRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	action, err := h.service.UpdateActionStatus(c.Request().Context(), id, entities.ActionStatus(req.Status), req.Assignee)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, id))
	}
	return HandleSuccess(h.logger, c, presenter.ToActionResponse(action))
}

// ListInsights handles GET /insights
// @Summary      List insights
// @Tags         Insights
// @Produce      json
// @Param        importance  query     string  false  "Comma separated importances"
// @Param        domain      query     string  false  "Comma separated domain keys"
// @Param        meeting_id  query     string  false  "Meeting ID"
// @Param        sort        query     string  false  "importance_desc, importance_asc, newest or oldest"
// @Success      200         {object}  common.SuccessResponse{data=common.ListResponse}
// @Failure      400         {object}  common.ErrorResponse
// @Router       /insights [get]
func (h *Legal) ListInsights(c echo.Context) error {
	var req legal.ListInsightsRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	filter, err := insightFilter(req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	insights := presenter.ToInsightResponses(h.service.ListInsights(c.Request().Context(), filter))
	return HandleSuccess(h.logger, c, common.ListResponse{Items: insights, Total: len(insights)})
}

// GetInsight handles GET /insights/:id
// @Summary      Get an insight
// @Tags         Insights
// @Produce      json
// @Param        id   path      string  true  "Insight ID"
// @Success      200  {object}  common.SuccessResponse{data=legal.InsightResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /insights/{id} [get]
func (h *Legal) GetInsight(c echo.Context) error {
	id := c.Param("id")
	insight, err := h.service.GetInsight(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, id))
	}
	return HandleSuccess(h.logger, c, presenter.ToInsightResponse(insight))
}

// Stats handles GET /dashboard/stats
// @Summary      Dashboard statistics
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  common.SuccessResponse
// @Router       /dashboard/stats [get]
func (h *Legal) Stats(c echo.Context) error {
	return HandleSuccess(h.logger, c, h.service.Stats(c.Request().Context()))
}

// LoadDemo handles POST /demo
// @Summary      Load demo data
// @Tags         Dashboard
// @Produce      json
// @Success      201  {object}  common.SuccessResponse
// @Failure      409  {object}  common.ErrorResponse
// @Router       /demo [post]
func (h *Legal) LoadDemo(c echo.Context) error {
	res, err := h.service.LoadDemo(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, legalUsecase.DemoMeetingID))
	}
	return HandleCreated(h.logger, c, res)
}

// ClearData handles DELETE /data
// @Summary      Clear all stored meetings, actions and insights
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  common.SuccessResponse
// @Router       /data [delete]
func (h *Legal) ClearData(c echo.Context) error {
	h.service.ClearData(c.Request().Context())
	return HandleSuccess(h.logger, c, map[string]bool{"cleared": true})
}

func (h *Legal) bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		appErr := errors.ErrValidationFailed(err)
		for field, rule := range pkgvalidator.Fields(err) {
			appErr = appErr.WithDetail(field, rule)
		}
		return appErr
	}
	return nil
}

func actionFilter(req legal.ListActionsRequest) (legalUsecase.ActionFilter, error) {
	filter := legalUsecase.ActionFilter{
		MeetingID: req.MeetingID,
		Sort:      req.Sort,
	}

	statuses := splitMulti(req.Status)
	switch {
	case len(statuses) == 0:
		filter.Statuses = []entities.ActionStatus{entities.ActionStatusPending, entities.ActionStatusInProgress}
	case len(statuses) == 1 && statuses[0] == "all":
	default:
		for _, s := range statuses {
			status := entities.ActionStatus(s)
			if !status.Valid() {
				return filter, errors.ErrInvalidArgument("unknown status: " + s)
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	for _, p := range splitMulti(req.Priority) {
		priority := entities.Priority(p)
		if priority.Rank() > entities.PriorityLow.Rank() {
			return filter, errors.ErrInvalidArgument("unknown priority: " + p)
		}
		filter.Priorities = append(filter.Priorities, priority)
	}

	domains, err := domainKeys(req.Domain)
	if err != nil {
		return filter, err
	}
	filter.Domains = domains
	return filter, nil
}

func insightFilter(req legal.ListInsightsRequest) (legalUsecase.InsightFilter, error) {
	filter := legalUsecase.InsightFilter{
		MeetingID: req.MeetingID,
		Sort:      req.Sort,
	}

	for _, i := range splitMulti(req.Importance) {
		importance := entities.Importance(i)
		if importance.Rank() > entities.ImportanceLow.Rank() {
			return filter, errors.ErrInvalidArgument("unknown importance: " + i)
		}
		filter.Importances = append(filter.Importances, importance)
	}

	domains, err := domainKeys(req.Domain)
	if err != nil {
		return filter, err
	}
	filter.Domains = domains
	return filter, nil
}

func domainKeys(values []string) ([]string, error) {
	keys := splitMulti(values)
	for _, key := range keys {
		if _, ok := config.DomainByKey(key); !ok {
			return nil, errors.ErrUnknownDomain(key)
		}
	}
	return keys, nil
}
