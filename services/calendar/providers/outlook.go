package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"festivo/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

const graphCalendarViewURL = "https://graph.microsoft.com/v1.0/me/calendarView"

// OutlookClient implements Client against the Microsoft Graph calendarView
// endpoint. It is poll-only: change subscriptions are not registered, so
// connected suppliers rely on the periodic re-sync sweep.
type OutlookClient struct {
	cfg        *oauth2.Config
	httpClient *http.Client
}

// NewOutlookClient builds an Outlook calendar client from OAuth credentials.
func NewOutlookClient(clientID, clientSecret, redirectURL string) *OutlookClient {
	return &OutlookClient{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"offline_access", "Calendars.Read"},
			Endpoint:     microsoft.AzureADEndpoint("common"),
		},
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (o *OutlookClient) Provider() string { return models.ProviderOutlook }

func (o *OutlookClient) SupportsPush() bool { return false }

func (o *OutlookClient) AuthCodeURL(state string) string {
	return o.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (o *OutlookClient) ExchangeCode(ctx context.Context, code string) (*models.TokenSet, error) {
	tok, err := o.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("outlook code exchange failed: %w", err)
	}
	return &models.TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}, nil
}

func (o *OutlookClient) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenSet, error) {
	src := o.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("outlook token refresh failed: %w", err)
	}
	out := &models.TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}
	if out.RefreshToken == "" {
		out.RefreshToken = refreshToken
	}
	return out, nil
}

// graphEvent is the subset of the Graph calendarView payload we read.
type graphEvent struct {
	ID       string `json:"id"`
	Subject  string `json:"subject"`
	IsAllDay bool   `json:"isAllDay"`
	ShowAs   string `json:"showAs"` // "free", "tentative", "busy", "oof", "workingElsewhere"
	Start    struct {
		DateTime string `json:"dateTime"`
	} `json:"start"`
	End struct {
		DateTime string `json:"dateTime"`
	} `json:"end"`
}

type graphEventPage struct {
	Value    []graphEvent `json:"value"`
	NextLink string       `json:"@odata.nextLink"`
}

func (o *OutlookClient) ListEvents(ctx context.Context, accessToken, calendarID string, from, to time.Time) ([]models.CalendarEvent, error) {
	params := url.Values{}
	params.Set("startDateTime", from.UTC().Format(time.RFC3339))
	params.Set("endDateTime", to.UTC().Format(time.RFC3339))
	params.Set("$orderby", "start/dateTime")
	params.Set("$top", "250")
	next := graphCalendarViewURL + "?" + params.Encode()

	var events []models.CalendarEvent
	for next != "" {
		page, err := o.fetchPage(ctx, accessToken, next)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Value {
			ev, ok := outlookEvent(item)
			if ok {
				events = append(events, ev)
			}
		}
		next = page.NextLink
	}
	return events, nil
}

func (o *OutlookClient) fetchPage(ctx context.Context, accessToken, pageURL string) (*graphEventPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Prefer", `outlook.timezone="UTC"`)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("graph response read failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("graph request returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var page graphEventPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("graph response decode failed: %w", err)
	}
	return &page, nil
}

// outlookEvent maps one Graph item onto the provider-agnostic shape. Graph
// returns naive timestamps in the requested timezone (UTC per the Prefer
// header).
func outlookEvent(item graphEvent) (models.CalendarEvent, bool) {
	const layout = "2006-01-02T15:04:05.9999999"

	start, err := time.Parse(layout, item.Start.DateTime)
	if err != nil {
		return models.CalendarEvent{}, false
	}
	end, err := time.Parse(layout, item.End.DateTime)
	if err != nil {
		end = start
	}

	return models.CalendarEvent{
		ID:        item.ID,
		Title:     item.Subject,
		Start:     start,
		End:       end,
		IsAllDay:  item.IsAllDay,
		BusyState: item.ShowAs,
	}, true
}

func (o *OutlookClient) CreateChangeSubscription(ctx context.Context, accessToken, calendarID, webhookURL, secret string, ttl time.Duration) (string, time.Time, error) {
	return "", time.Time{}, ErrPushNotSupported
}

func (o *OutlookClient) DeleteChangeSubscription(ctx context.Context, accessToken, subscriptionID string) error {
	return nil
}
