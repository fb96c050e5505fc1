package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mudler/xlog"
	"github.com/robfig/cron/v3"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"github.com/actually-app/actually/core/agent"
	"github.com/actually-app/actually/core/enrich"
	"github.com/actually-app/actually/core/executor"
	"github.com/actually-app/actually/core/resolve"
	"github.com/actually-app/actually/db"
	"github.com/actually-app/actually/integrations/google"
	"github.com/actually-app/actually/integrations/twilio"
	"github.com/actually-app/actually/llm"
	"github.com/actually-app/actually/services/store"
	"github.com/actually-app/actually/services/sweep"
	"github.com/actually-app/actually/webui"
)

var (
	databaseURL  string
	listenAddr   string
	llmAPIKey    string
	llmAPIURL    string
	llmModel     string
	llmTimeout   string
	jwtSecret    string
	cronSecret   string
	cronSchedule string

	twilioAccountSID string
	twilioAuthToken  string
	twilioNumber     string

	googleClientID     string
	googleClientSecret string
	googleRedirectURL  string

	publicBaseURL string
	devBypassAuth bool
)

func init() {
	_ = godotenv.Load()

	databaseURL = os.Getenv("DATABASE_URL")
	listenAddr = os.Getenv("LISTEN_ADDR")
	llmAPIKey = os.Getenv("CEREBRAS_API_KEY")
	llmAPIURL = os.Getenv("CEREBRAS_API_URL")
	llmModel = os.Getenv("CEREBRAS_MODEL")
	llmTimeout = os.Getenv("CEREBRAS_TIMEOUT")
	jwtSecret = os.Getenv("JWT_SECRET")
	cronSecret = os.Getenv("CRON_SECRET")
	cronSchedule = os.Getenv("REMINDER_SWEEP_SCHEDULE")

	twilioAccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	twilioAuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	twilioNumber = os.Getenv("TWILIO_PHONE_NUMBER")

	googleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	googleClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	googleRedirectURL = os.Getenv("GOOGLE_REDIRECT_URL")

	publicBaseURL = os.Getenv("PUBLIC_BASE_URL")
	devBypassAuth = os.Getenv("DEV_BYPASS_AUTH") == "true"

	if databaseURL == "" {
		panic("DATABASE_URL not set")
	}
	if listenAddr == "" {
		listenAddr = ":3000"
	}
	if cronSchedule == "" {
		cronSchedule = "@every 1m"
	}
}

func main() {
	db.ConnectDB(databaseURL)

	users := &store.Users{DB: db.DB}
	conversations := &store.Conversations{DB: db.DB}
	actions := &store.Actions{DB: db.DB}
	savedItems := &store.SavedItems{DB: db.DB}
	collections := &store.Collections{DB: db.DB}
	reminders := &store.Reminders{DB: db.DB}
	connections := &store.Connections{DB: db.DB}

	var googleOAuth *oauth2.Config
	if googleClientID != "" && googleClientSecret != "" {
		googleOAuth = &oauth2.Config{
			ClientID:     googleClientID,
			ClientSecret: googleClientSecret,
			RedirectURL:  googleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/calendar.events",
				"https://www.googleapis.com/auth/gmail.send",
			},
			Endpoint: googleoauth.Endpoint,
		}
	}
	googleTokens := &store.GoogleTokens{DB: db.DB, Config: googleOAuth}
	googleClient := google.NewClient()

	fetcher := enrich.NewFetcher()

	var resolver *resolve.Resolver
	if llmAPIKey == "" {
		xlog.Warn("CEREBRAS_API_KEY not set, agent chat will be unavailable")
	} else {
		resolver = resolve.New(llm.NewClient(llmAPIKey, llmAPIURL, llmTimeout), llmModel)
	}

	exec := &executor.Executor{
		Fetcher:     fetcher,
		SavedItems:  savedItems,
		Collections: collections,
		Reminders:   reminders,
		Log:         actions,
		Tokens:      googleTokens,
		Calendar:    googleClient,
		Mail:        googleClient,
	}

	agt := &agent.Agent{
		Users:         users,
		SavedItems:    savedItems,
		Conversations: conversations,
		Log:           actions,
		Fetcher:       fetcher,
		Resolver:      resolver,
		Executor:      exec,
	}

	sweeper := &sweep.Sweeper{
		Users:     users,
		Reminders: reminders,
		Log:       actions,
	}
	if twilioAccountSID != "" && twilioAuthToken != "" && twilioNumber != "" {
		sweeper.SMS = twilio.NewClient(twilioAccountSID, twilioAuthToken, twilioNumber)
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cronSchedule, func() {
		if _, err := sweeper.Run(context.Background()); err != nil {
			xlog.Error("Scheduled reminder sweep failed", "error", err)
		}
	}); err != nil {
		panic(err)
	}
	scheduler.Start()

	app := webui.NewApp(
		webui.WithAgent(agt),
		webui.WithUsers(users),
		webui.WithConversations(conversations),
		webui.WithActions(actions),
		webui.WithSavedItems(savedItems),
		webui.WithConnections(connections),
		webui.WithGoogleTokens(googleTokens),
		webui.WithGoogleOAuth(googleOAuth),
		webui.WithSweeper(sweeper),
		webui.WithJWTSecret(jwtSecret),
		webui.WithCronSecret(cronSecret),
		webui.WithTwilioAuthToken(twilioAuthToken),
		webui.WithPublicBaseURL(publicBaseURL),
		webui.WithDevBypassAuth(devBypassAuth),
	)

	log.Fatal(app.Listen(listenAddr))
}
