package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"coursecal/internal/caldav"
	"coursecal/internal/config"
	"coursecal/internal/google"
	"coursecal/internal/ics"
	"coursecal/internal/models"
	"coursecal/internal/pusher"
	"coursecal/internal/schedule"
	"coursecal/internal/xlsx"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "coursecal",
		Usage: "Convert a Workday schedule export into weekly-recurring calendar events.",
		Commands: []*cli.Command{
			authCommand(),
			pushCommand(),
			exportCommand(),
			previewCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with a Google account to get an API token.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "token", Value: "token.json", Usage: "Path to save the OAuth token to."},
		},
		Action: func(c *cli.Context) error {
			logger := setupLogger("info")
			logger.Info("Starting Google authentication flow.")

			oauthConfig, err := google.OAuthConfig(os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET"))
			if err != nil {
				return fmt.Errorf("failed to get google oauth config: %w", err)
			}

			session := google.NewSession(oauthConfig)
			fmt.Printf("Go to the following link in your browser then type the "+
				"authorization code: \n%v\n", session.AuthURL())

			fmt.Print("Enter Authorization Code: ")
			reader := bufio.NewReader(os.Stdin)
			authCode, _ := reader.ReadString('\n')

			if err := session.Exchange(c.Context, strings.TrimSpace(authCode)); err != nil {
				return err
			}

			token, err := session.Token()
			if err != nil {
				return err
			}
			tokenFile := c.String("token")
			if err := google.SaveToken(tokenFile, token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			logger.Info("Successfully authenticated and saved token.", "file", tokenFile)
			return nil
		},
	}
}

func pushCommand() *cli.Command {
	return &cli.Command{
		Name:  "push",
		Usage: "Create the events on a remote calendar.",
		Flags: append(pipelineFlags(),
			&cli.StringFlag{Name: "target", Value: "google", Usage: "Event sink: google or caldav."},
			&cli.StringFlag{Name: "token", Value: "token.json", Usage: "Path to the saved Google OAuth token."},
			&cli.StringFlag{Name: "calendar", Value: "primary", Usage: "Target Google calendar id."},
			&cli.StringFlag{Name: "create-calendar", Usage: "Create a new Google calendar with this name and push into it."},
			&cli.BoolFlag{Name: "dry-run", Usage: "Log what would be created without making changes."},
		),
		Action: func(c *cli.Context) error {
			logger := setupLogger(os.Getenv("LOG_LEVEL"))

			_, events, skipped, err := buildEvents(c, logger)
			if err != nil {
				return err
			}
			if c.Bool("dry-run") {
				logger.Info("Performing a dry run. No changes will be made.")
			}

			sink, err := buildSink(c, logger)
			if err != nil {
				return err
			}

			res := pusher.New(logger, sink, c.Bool("dry-run")).Push(c.Context, events)
			for _, s := range skipped {
				res.Skipped = append(res.Skipped, s.Index)
			}

			logger.Info("Push finished.",
				"outcome", res.Outcome().String(),
				"created", res.Created,
				"skipped", len(res.Skipped),
				"failed", len(res.Failures),
			)
			for _, f := range res.Failures {
				logger.Warn("Event was not created", "row", f.Row, "summary", f.Summary, "error", f.Err)
			}
			if res.Outcome() == pusher.OutcomeFailure {
				return fmt.Errorf("no events were created")
			}
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the events to a standalone .ics file.",
		Flags: append(pipelineFlags(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "courses.ics", Usage: "Output .ics path."},
		),
		Action: func(c *cli.Context) error {
			logger := setupLogger(os.Getenv("LOG_LEVEL"))

			_, events, skipped, err := buildEvents(c, logger)
			if err != nil {
				return err
			}

			out := c.String("out")
			if err := ics.WriteFile(out, events); err != nil {
				return err
			}
			logger.Info("Wrote calendar file.", "file", out, "events", len(events), "skipped", len(skipped))
			return nil
		},
	}
}

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "Print the concrete class dates each event expands to.",
		Flags: append(pipelineFlags(),
			&cli.IntFlag{Name: "limit", Value: 0, Usage: "Cap the occurrences printed per event."},
		),
		Action: func(c *cli.Context) error {
			logger := setupLogger(os.Getenv("LOG_LEVEL"))

			tz, events, skipped, err := buildEvents(c, logger)
			if err != nil {
				return err
			}
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return fmt.Errorf("invalid timezone '%s': %w", tz, err)
			}

			for _, ev := range events {
				occ, err := schedule.Occurrences(ev, loc, c.Int("limit"))
				if err != nil {
					logger.Warn("Could not expand event", "summary", ev.Summary, "error", err)
					continue
				}
				fmt.Printf("%s", ev.Summary)
				if ev.Location != "" {
					fmt.Printf(" [%s]", ev.Location)
				}
				fmt.Printf(" (%d meetings)\n", len(occ))
				for _, t := range occ {
					fmt.Printf("  %s\n", t.Format("Mon Jan 2 2006 3:04 PM"))
				}
			}
			if len(skipped) > 0 {
				fmt.Printf("%d row(s) had no parseable meeting pattern and were skipped.\n", len(skipped))
			}
			return nil
		},
	}
}

// pipelineFlags are shared by every command that runs the parse pipeline.
func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "Path to the XLSX schedule export."},
		&cli.StringFlag{Name: "config", Value: "coursecal.yaml", Usage: "Path to the YAML configuration file."},
		&cli.StringFlag{Name: "timezone", Usage: "Event time zone; must be in the configured list."},
	}
}

// buildEvents runs the shared pipeline: config, rows, assembly. Returns
// the effective timezone, the events and the rows that were skipped.
func buildEvents(c *cli.Context, logger *slog.Logger) (string, []*models.Event, []schedule.SkippedRow, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	tz := c.String("timezone")
	if tz == "" {
		tz = cfg.Timezone
	}
	if !cfg.AllowsTimezone(tz) {
		return "", nil, nil, fmt.Errorf("unsupported timezone %q (configured: %s)", tz, strings.Join(cfg.Timezones, ", "))
	}

	rows, err := xlsx.ReadRows(c.String("file"), cfg, logger)
	if err != nil {
		return "", nil, nil, err
	}

	daysOff := schedule.ExpandDaysOff(cfg.DaysOffSpans())
	events, skipped := schedule.Assemble(rows, schedule.Options{TimeZone: tz, DaysOff: daysOff})
	logger.Info("Assembled events.", "events", len(events), "skipped", len(skipped), "timezone", tz)
	return tz, events, skipped, nil
}

// buildSink selects the push target.
func buildSink(c *cli.Context, logger *slog.Logger) (pusher.Sink, error) {
	switch c.String("target") {
	case "google":
		client, err := google.NewClient(c.Context, logger,
			os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET"), c.String("token"))
		if err != nil {
			return nil, fmt.Errorf("failed to create google client: %w", err)
		}
		calendarID := c.String("calendar")
		if name := c.String("create-calendar"); name != "" {
			calendarID, err = client.CreateCalendar(c.Context, name)
			if err != nil {
				return nil, err
			}
		}
		return client.Target(calendarID), nil
	case "caldav":
		client, err := caldav.NewClient(logger,
			os.Getenv("CALDAV_ENDPOINT"), os.Getenv("CALDAV_USERNAME"),
			os.Getenv("CALDAV_PASSWORD"), os.Getenv("CALDAV_CALENDAR_NAME"))
		if err != nil {
			return nil, fmt.Errorf("failed to create caldav client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown target %q (want google or caldav)", c.String("target"))
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
