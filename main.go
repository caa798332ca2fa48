package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"opennotebook/internal/config"
	"opennotebook/internal/database"
	"opennotebook/internal/llm/client"
)

func main() {
	var (
		envFile = flag.String("env-file", "", "explicit env file (default: probe docker/.env, .env)")
		check   = flag.Bool("check", false, "probe the configured SurrealDB and inference endpoint, then exit")
	)
	flag.Parse()

	settings, err := config.Load(*envFile)
	if err != nil {
		log.WithError(err).Fatal("loading settings")
	}

	applyLogLevel(settings.LogLevel)

	if errs := settings.Validate(); len(errs) > 0 {
		for _, msg := range errs {
			log.Error(msg)
		}
		log.Fatal("configuration invalid, refusing to start")
	}

	log.WithFields(log.Fields{
		"app_port":        settings.AppPort,
		"surreal_address": settings.SurrealAddress,
		"surreal_ns":      settings.SurrealNamespace,
		"surreal_db":      settings.SurrealDatabase,
		"openai_api_base": settings.OpenAIAPIBase,
		"chat_model":      settings.DefaultChatModel,
	}).Info("configuration loaded")

	if *check {
		os.Exit(runChecks(settings))
	}
}

// applyLogLevel maps the configured level onto logrus, keeping the
// default when the value is unknown. The level is documented as
// unvalidated, so a bad value must not abort startup.
func applyLogLevel(level string) {
	parsed, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		log.WithField("log_level", level).Warn("unknown log level, keeping default")
		return
	}
	log.SetLevel(parsed)
}

// runChecks exercises the downstream consumers once each and reports
// reachability. Returns a process exit code.
func runChecks(settings *config.Settings) int {
	code := 0

	svc, err := database.Connect(settings)
	if err != nil {
		log.WithError(err).Error("surrealdb unreachable")
		code = 1
	} else {
		log.WithField("endpoint", database.RPCEndpoint(settings.SurrealAddress)).Info("surrealdb ok")
		svc.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	llm, err := client.New(ctx, settings)
	if err != nil {
		log.WithError(err).Error("building inference client")
		return 1
	}
	if _, err := llm.Complete(ctx, "Say hello in one word."); err != nil {
		log.WithError(err).Error("inference endpoint unreachable")
		code = 1
	} else {
		log.WithField("model", settings.DefaultChatModel).Info("inference endpoint ok")
	}

	return code
}
