package meetstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/legalmind/internal/domain/entities"
	"github.com/johnquangdev/legalmind/pkg/config"
	"github.com/johnquangdev/legalmind/pkg/metrics"
)

const (
	defaultBaseURL = "https://api.meetstream.ai"
	defaultBotName = "LegalMind Assistant"

	// RecordingNotReadyMessage accompanies an empty transcript when the provider has no recording yet
	RecordingNotReadyMessage = "Recording not found or not ready yet. There may not be any speech to transcribe, or the transcript is still processing."
)

// StatusError is returned when the MeetStream API answers with a non-2xx status
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to %s: status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// Client talks to the MeetStream meeting bot API
type Client struct {
	apiKey     string
	baseURL    string
	botName    string
	webhookURL string
	client     *http.Client
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewClient creates a MeetStream client from cfg
func NewClient(cfg *config.MeetStreamConfig, m *metrics.Metrics, logger *zap.Logger) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		botName: defaultBotName,
		client:  &http.Client{Timeout: 30 * time.Second},
		metrics: m,
		logger:  logger,
	}
	if cfg != nil {
		c.apiKey = cfg.APIKey
		c.webhookURL = cfg.WebhookURL
		if cfg.APIURL != "" {
			c.baseURL = strings.TrimRight(cfg.APIURL, "/")
		}
		if cfg.BotName != "" {
			c.botName = cfg.BotName
		}
		if cfg.Timeout > 0 {
			c.client.Timeout = cfg.Timeout
		}
	}
	return c
}

// CreateBotRequest describes the bot to send into a meeting
type CreateBotRequest struct {
	MeetingLink       string
	BotName           string
	AudioRequired     bool
	VideoRequired     bool
	LiveTranscription bool
}

type createBotPayload struct {
	MeetingLink       string             `json:"meeting_link"`
	BotName           string             `json:"bot_name"`
	AudioRequired     bool               `json:"audio_required"`
	VideoRequired     bool               `json:"video_required"`
	LiveTranscription *liveTranscription `json:"live_transcription_required,omitempty"`
}

type liveTranscription struct {
	WebhookURL string `json:"webhook_url"`
}

// BotResponse is the provider's answer for bot operations. Fields the client
// does not model are kept in Details.
type BotResponse struct {
	BotID   string                 `json:"bot_id,omitempty"`
	Status  string                 `json:"status,omitempty"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// TranscriptResult is the raw transcript snapshot plus an optional provider note
type TranscriptResult struct {
	Entries []entities.RawTranscriptEntry
	Message string
}

// CreateBot sends a bot into the meeting and returns its id
func (c *Client) CreateBot(ctx context.Context, req CreateBotRequest) (*BotResponse, error) {
	botName := req.BotName
	if botName == "" {
		botName = c.botName
	}
	payload := createBotPayload{
		MeetingLink:   req.MeetingLink,
		BotName:       botName,
		AudioRequired: req.AudioRequired,
		VideoRequired: req.VideoRequired,
	}
	if req.LiveTranscription && c.webhookURL != "" {
		payload.LiveTranscription = &liveTranscription{WebhookURL: c.webhookURL}
	}

	var resp BotResponse
	err := c.doJSON(ctx, "create bot", http.MethodPost, "/api/v1/bots/create_bot", payload, &resp)
	c.metrics.ObserveBotOperation("create_bot", err)
	if err != nil {
		return nil, err
	}
	if resp.BotID == "" {
		return nil, fmt.Errorf("failed to create bot: response has no bot_id")
	}
	if c.logger != nil {
		c.logger.Info("🤖 Meeting bot created",
			zap.String("bot_id", resp.BotID),
			zap.String("meeting_link", req.MeetingLink),
		)
	}
	return &resp, nil
}

// GetBotStatus returns the provider's current status for the bot
func (c *Client) GetBotStatus(ctx context.Context, botID string) (*BotResponse, error) {
	var resp BotResponse
	err := c.doJSON(ctx, "get bot status", http.MethodGet, "/api/v1/bots/"+url.PathEscape(botID)+"/status", nil, &resp)
	c.metrics.ObserveBotOperation("status", err)
	if err != nil {
		return nil, err
	}
	if resp.BotID == "" {
		resp.BotID = botID
	}
	return &resp, nil
}

// RemoveBot asks the bot to leave the meeting
func (c *Client) RemoveBot(ctx context.Context, botID string) (*BotResponse, error) {
	var resp BotResponse
	err := c.doJSON(ctx, "remove bot", http.MethodGet, "/api/v1/bots/"+url.PathEscape(botID)+"/remove_bot", nil, &resp)
	c.metrics.ObserveBotOperation("remove_bot", err)
	if err != nil {
		return nil, err
	}
	if c.logger != nil {
		c.logger.Info("👋 Meeting bot removed", zap.String("bot_id", botID))
	}
	if resp.BotID == "" {
		resp.BotID = botID
	}
	return &resp, nil
}

// GetTranscript fetches the raw transcript snapshot. A missing recording is
// not an error: it yields an empty transcript and RecordingNotReadyMessage.
func (c *Client) GetTranscript(ctx context.Context, botID string) (*TranscriptResult, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/v1/bots/"+url.PathEscape(botID)+"/get_transcript", nil)
	if err == nil && status == http.StatusNotFound && strings.Contains(string(body), "Recording not found") {
		c.metrics.ObserveBotOperation("get_transcript", nil)
		return &TranscriptResult{Entries: []entities.RawTranscriptEntry{}, Message: RecordingNotReadyMessage}, nil
	}
	if err == nil && status >= 400 {
		err = &StatusError{Operation: "get transcript", StatusCode: status, Body: string(body)}
	}
	if err != nil {
		c.metrics.ObserveBotOperation("get_transcript", err)
		return nil, err
	}

	entries, err := decodeRawTranscript(body)
	c.metrics.ObserveBotOperation("get_transcript", err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode transcript: %w", err)
	}
	if c.logger != nil {
		c.logger.Info("📝 Transcript fetched",
			zap.String("bot_id", botID),
			zap.Int("entries", len(entries)),
		)
	}
	return &TranscriptResult{Entries: entries}, nil
}

func decodeRawTranscript(body []byte) ([]entities.RawTranscriptEntry, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []entities.RawTranscriptEntry{}, nil
	}
	if trimmed[0] == '{' {
		var wrapped struct {
			Transcript []entities.RawTranscriptEntry `json:"transcript"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, err
		}
		if wrapped.Transcript == nil {
			return []entities.RawTranscriptEntry{}, nil
		}
		return wrapped.Transcript, nil
	}
	entries := []entities.RawTranscriptEntry{}
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) doJSON(ctx context.Context, operation, method, path string, payload, out interface{}) error {
	status, body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if status >= 400 {
		return &StatusError{Operation: operation, StatusCode: status, Body: string(body)}
	}

	var details map[string]interface{}
	if err := json.Unmarshal(body, &details); err != nil {
		return fmt.Errorf("failed to %s: invalid response: %w", operation, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to %s: invalid response: %w", operation, err)
	}
	if resp, ok := out.(*BotResponse); ok {
		resp.Details = details
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("❌ MeetStream request failed",
				zap.String("method", method),
				zap.String("path", path),
				zap.Error(err),
			)
		}
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}
