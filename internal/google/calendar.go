// Package google pushes assembled course events to Google Calendar and
// handles the OAuth token flow.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"coursecal/internal/models"
)

const credentialsFile = "credentials.json"

// scopes cover event creation plus calendar listing/creation.
var scopes = []string{calendar.CalendarScope, calendar.CalendarEventsScope}

// CalendarClient provides a client for interacting with the Google
// Calendar API.
type CalendarClient struct {
	service *calendar.Service
	logger  *slog.Logger
}

// CalendarInfo describes one calendar the account can write to.
type CalendarInfo struct {
	ID      string
	Summary string
	Primary bool
}

// NewClient creates an authenticated Google Calendar client from a saved
// token file. Run the auth command first to produce one.
func NewClient(ctx context.Context, logger *slog.Logger, clientID, clientSecret, tokenFile string) (*CalendarClient, error) {
	config, err := OAuthConfig(clientID, clientSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to get OAuth config: %w", err)
	}

	token, err := tokenFromFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("could not load token from %s: %w. Please run the 'auth' command first", tokenFile, err)
	}

	client := config.Client(ctx, token)
	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &CalendarClient{service: service, logger: logger}, nil
}

// ListWritableCalendars returns the calendars the account can insert
// events into.
func (c *CalendarClient) ListWritableCalendars(ctx context.Context) ([]CalendarInfo, error) {
	list, err := c.service.CalendarList.List().MinAccessRole("writer").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	var out []CalendarInfo
	for _, item := range list.Items {
		out = append(out, CalendarInfo{ID: item.Id, Summary: item.Summary, Primary: item.Primary})
	}
	return out, nil
}

// CreateCalendar creates a new calendar and returns its id.
func (c *CalendarClient) CreateCalendar(ctx context.Context, name string) (string, error) {
	created, err := c.service.Calendars.Insert(&calendar.Calendar{Summary: name}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar %q: %w", name, err)
	}
	c.logger.Info("Created calendar", "name", name, "id", created.Id)
	return created.Id, nil
}

// Target binds the client to one calendar id, yielding an event sink.
func (c *CalendarClient) Target(calendarID string) *EventTarget {
	return &EventTarget{client: c, calendarID: calendarID}
}

// EventTarget inserts events into a single calendar.
type EventTarget struct {
	client     *CalendarClient
	calendarID string
}

// CreateEvent inserts one recurring event into the target calendar.
func (t *EventTarget) CreateEvent(ctx context.Context, event *models.Event) error {
	t.client.logger.Debug("Inserting event", "summary", event.Summary, "calendarID", t.calendarID)

	gev := &calendar.Event{
		Summary:  event.Summary,
		Location: event.Location,
		Start: &calendar.EventDateTime{
			DateTime: event.Start.DateTime,
			TimeZone: event.Start.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: event.End.DateTime,
			TimeZone: event.End.TimeZone,
		},
		Recurrence: event.Recurrence,
	}

	if _, err := t.client.service.Events.Insert(t.calendarID, gev).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to insert event %q: %w", event.Summary, err)
	}

	t.client.logger.Info("Created event in Google Calendar", "summary", event.Summary)
	return nil
}

// OAuthConfig reads credentials and returns an OAuth2 config. Environment
// variables take priority over a local credentials.json file.
func OAuthConfig(clientID, clientSecret string) (*oauth2.Config, error) {
	if clientID != "" && clientSecret != "" {
		return &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		}, nil
	}

	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		if _, ok := err.(*fs.PathError); ok {
			return nil, fmt.Errorf("credentials.json not found. Please provide GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET env vars or place credentials.json in the root directory")
		}
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}
	config.RedirectURL = "urn:ietf:wg:oauth:2.0:oob" // desktop app flow
	return config, nil
}

// SaveToken saves a token to a file path.
func SaveToken(path string, token *oauth2.Token) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create token file: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// tokenFromFile retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}
