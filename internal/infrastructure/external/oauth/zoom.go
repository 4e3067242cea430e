package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/johnquangdev/legalmind/pkg/config"
)

// ProviderZoom names the Zoom provider in store keys
const ProviderZoom = "zoom"

// ZoomEndpoint is Zoom's OAuth 2.0 endpoint
var ZoomEndpoint = oauth2.Endpoint{
	AuthURL:   "https://zoom.us/oauth/authorize",
	TokenURL:  "https://zoom.us/oauth/token",
	AuthStyle: oauth2.AuthStyleInHeader,
}

const zoomAPIBaseURL = "https://api.zoom.us/v2"

// ZoomProvider handles Zoom OAuth2 authentication and meeting lookups
type ZoomProvider struct {
	config     *oauth2.Config
	apiBaseURL string
}

// ZoomMeeting is one scheduled Zoom meeting
type ZoomMeeting struct {
	ID        int64  `json:"id"`
	UUID      string `json:"uuid,omitempty"`
	Topic     string `json:"topic"`
	Type      int    `json:"type,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	Duration  int    `json:"duration,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
	JoinURL   string `json:"join_url"`
	Agenda    string `json:"agenda,omitempty"`
}

// ZoomMeetingList is the page returned by the meetings endpoint
type ZoomMeetingList struct {
	PageSize      int           `json:"page_size"`
	TotalRecords  int           `json:"total_records"`
	NextPageToken string        `json:"next_page_token,omitempty"`
	Meetings      []ZoomMeeting `json:"meetings"`
}

// NewZoomProvider creates a new Zoom OAuth provider
func NewZoomProvider(cfg *config.ZoomOAuthConfig) *ZoomProvider {
	return &ZoomProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     ZoomEndpoint,
		},
		apiBaseURL: zoomAPIBaseURL,
	}
}

// Configured reports whether client credentials are set
func (z *ZoomProvider) Configured() bool {
	return z.config.ClientID != "" && z.config.ClientSecret != ""
}

// GetAuthURL returns the OAuth authorization URL
func (z *ZoomProvider) GetAuthURL(state string) string {
	return z.config.AuthCodeURL(state)
}

// ExchangeCode exchanges the authorization code for tokens
func (z *ZoomProvider) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := z.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	return token, nil
}

// ListMeetings returns the upcoming meetings of the authenticated user. The
// returned token is the one actually used, refreshed when it had expired.
func (z *ZoomProvider) ListMeetings(ctx context.Context, token *oauth2.Token) (*ZoomMeetingList, *oauth2.Token, error) {
	source := z.config.TokenSource(ctx, token)
	current, err := source.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	var list ZoomMeetingList
	if err := z.get(ctx, oauth2.NewClient(ctx, oauth2.StaticTokenSource(current)), "/users/me/meetings", &list); err != nil {
		return nil, nil, err
	}
	if list.Meetings == nil {
		list.Meetings = []ZoomMeeting{}
	}
	return &list, current, nil
}

// GetMeeting returns the details of one meeting
func (z *ZoomProvider) GetMeeting(ctx context.Context, token *oauth2.Token, meetingID string) (*ZoomMeeting, error) {
	var meeting ZoomMeeting
	if err := z.get(ctx, z.config.Client(ctx, token), "/meetings/"+url.PathEscape(meetingID), &meeting); err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (z *ZoomProvider) get(ctx context.Context, client *http.Client, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(z.apiBaseURL, "/")+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("zoom request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("zoom api error: status=%d, body=%s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode zoom response: %w", err)
	}
	return nil
}
