package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/2beens/ut2tracker/internal/auth"
	"github.com/2beens/ut2tracker/internal/config"
	"github.com/2beens/ut2tracker/internal/logging"
	"github.com/2beens/ut2tracker/internal/session"
	"github.com/2beens/ut2tracker/internal/store"
	"github.com/2beens/ut2tracker/internal/telemetry/metrics"
	"github.com/2beens/ut2tracker/internal/telemetry/tracing"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const serviceName = "ut2tracker"

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	// a missing .env is fine, the environment may already be set
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %s", err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: serviceName,
	})
	log.Debugf("running in [%s] environment", cfg.Environment)

	tracingShutdown, err := tracing.HoneycombSetup(cfg.TracingEnabled, serviceName)
	if err != nil {
		log.Errorf("honeycomb setup: %s", err)
		tracingShutdown = func() {}
	}

	credentialsFile := cfg.CredentialsFile
	if fromEnv := os.Getenv("UT2_CREDS_FILE"); fromEnv != "" {
		credentialsFile = fromEnv
	}
	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		log.Fatalf("read service account credentials [%s]: %s", credentialsFile, err)
	}

	shareEmail := os.Getenv("EMAIL_ADDRESS")
	if shareEmail == "" {
		log.Warnln("EMAIL_ADDRESS env var not set, new workbooks will not be shared")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpClient, err := store.NewHTTPClient(ctx, credentialsJSON)
	if err != nil {
		log.Fatalf("spreadsheet service client: %s", err)
	}

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager(serviceName, "cli", promRegistry)

	sheetsStore, err := store.NewSheetsStore(ctx, store.NewSheetsStoreParams{
		HTTPClient:                 httpClient,
		CredentialsSpreadsheetID:   cfg.CredentialsSpreadsheetID,
		CredentialsSpreadsheetName: cfg.CredentialsSpreadsheetName,
		WorkbookNameSuffix:         cfg.WorkbookNameSuffix,
		ShareEmail:                 shareEmail,
		ShareRole:                  cfg.ShareRole,
		Metrics:                    metricsManager,
	})
	if err != nil {
		log.Fatalf("new sheets store: %s", err)
	}

	shutdown := func() {
		pushCtx, pushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pushCancel()
		if err := metrics.Push(pushCtx, cfg.PushgatewayURL, promRegistry); err != nil {
			log.Errorf("push metrics: %s", err)
		}
		tracingShutdown()
		sentry.Flush(2 * time.Second)
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		receivedSig := <-chOsInterrupt
		log.Warnf("signal [%s] received, leaving ...", receivedSig)
		cancel()
		shutdown()
		fmt.Println()
		os.Exit(130)
	}()

	controller := session.NewController(session.NewControllerParams{
		Auth:       auth.NewService(sheetsStore, cfg.HashPasswords),
		Workbooks:  sheetsStore,
		In:         os.Stdin,
		Out:        os.Stdout,
		PrintDelay: cfg.PrintDelay,
		Metrics:    metricsManager,
	})
	if err := controller.Run(ctx); err != nil {
		log.Errorf("session: %s", err)
	}

	shutdown()
}
