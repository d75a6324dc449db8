package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"festivo/models"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleClient implements Client against the Google Calendar API. It is the
// push-capable provider: change notifications arrive through watch channels.
type GoogleClient struct {
	cfg *oauth2.Config
}

// NewGoogleClient builds a Google calendar client from OAuth credentials.
func NewGoogleClient(clientID, clientSecret, redirectURL string) *GoogleClient {
	return &GoogleClient{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{gcal.CalendarReadonlyScope},
			Endpoint:     google.Endpoint,
		},
	}
}

func (g *GoogleClient) Provider() string { return models.ProviderGoogle }

func (g *GoogleClient) SupportsPush() bool { return true }

func (g *GoogleClient) AuthCodeURL(state string) string {
	// Offline access so a refresh token is issued on first consent.
	return g.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func (g *GoogleClient) ExchangeCode(ctx context.Context, code string) (*models.TokenSet, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google code exchange failed: %w", err)
	}
	return &models.TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}, nil
}

func (g *GoogleClient) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenSet, error) {
	src := g.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("google token refresh failed: %w", err)
	}
	out := &models.TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}
	// Google does not always rotate the refresh token; keep the old one.
	if out.RefreshToken == "" {
		out.RefreshToken = refreshToken
	}
	return out, nil
}

func (g *GoogleClient) service(ctx context.Context, accessToken string) (*gcal.Service, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	return gcal.NewService(ctx, option.WithTokenSource(src))
}

func (g *GoogleClient) ListEvents(ctx context.Context, accessToken, calendarID string, from, to time.Time) ([]models.CalendarEvent, error) {
	svc, err := g.service(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("google calendar service init failed: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	var events []models.CalendarEvent
	pageToken := ""
	for {
		call := svc.Events.List(calendarID).
			TimeMin(from.Format(time.RFC3339)).
			TimeMax(to.Format(time.RFC3339)).
			SingleEvents(true).
			ShowDeleted(false).
			OrderBy("startTime").
			MaxResults(2500).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		res, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("google event list failed: %w", err)
		}
		for _, item := range res.Items {
			if item.Status == "cancelled" {
				continue
			}
			ev, ok := googleEvent(item)
			if ok {
				events = append(events, ev)
			}
		}
		pageToken = res.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return events, nil
}

// googleEvent maps one API item onto the provider-agnostic shape.
func googleEvent(item *gcal.Event) (models.CalendarEvent, bool) {
	ev := models.CalendarEvent{
		ID:    item.Id,
		Title: item.Summary,
	}

	switch {
	case item.Start == nil:
		return ev, false
	case item.Start.Date != "":
		ev.IsAllDay = true
		start, err := time.Parse("2006-01-02", item.Start.Date)
		if err != nil {
			return ev, false
		}
		ev.Start = start
		ev.End = start.AddDate(0, 0, 1)
		if item.End != nil && item.End.Date != "" {
			if end, err := time.Parse("2006-01-02", item.End.Date); err == nil {
				ev.End = end
			}
		}
	default:
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return ev, false
		}
		ev.Start = start
		if item.End != nil && item.End.DateTime != "" {
			if end, err := time.Parse(time.RFC3339, item.End.DateTime); err == nil {
				ev.End = end
			}
		}
	}

	switch {
	case item.EventType == "outOfOffice":
		ev.BusyState = "oof"
	case item.Transparency == "transparent":
		ev.BusyState = "free"
	case item.Status == "tentative":
		ev.BusyState = "tentative"
	default:
		ev.BusyState = "busy"
	}
	return ev, true
}

// CreateChangeSubscription opens a watch channel on the calendar. The
// returned ID carries both channel and resource IDs, which Google requires
// for teardown.
func (g *GoogleClient) CreateChangeSubscription(ctx context.Context, accessToken, calendarID, webhookURL, secret string, ttl time.Duration) (string, time.Time, error) {
	svc, err := g.service(ctx, accessToken)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("google calendar service init failed: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	channel := &gcal.Channel{
		Id:      uuid.NewString(),
		Type:    "web_hook",
		Address: webhookURL,
		Token:   secret,
		Params:  map[string]string{"ttl": fmt.Sprintf("%d", int(ttl.Seconds()))},
	}
	res, err := svc.Events.Watch(calendarID, channel).Context(ctx).Do()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("google watch registration failed: %w", err)
	}

	expires := time.Now().Add(ttl)
	if res.Expiration > 0 {
		expires = time.UnixMilli(res.Expiration)
	}
	return res.Id + "/" + res.ResourceId, expires, nil
}

func (g *GoogleClient) DeleteChangeSubscription(ctx context.Context, accessToken, subscriptionID string) error {
	svc, err := g.service(ctx, accessToken)
	if err != nil {
		return fmt.Errorf("google calendar service init failed: %w", err)
	}

	channelID, resourceID, ok := strings.Cut(subscriptionID, "/")
	if !ok {
		return fmt.Errorf("malformed google subscription id %q", subscriptionID)
	}
	err = svc.Channels.Stop(&gcal.Channel{Id: channelID, ResourceId: resourceID}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("google channel stop failed: %w", err)
	}
	return nil
}
