package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/wealthdesk/onboarding/internal/app"
)

func init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		log.SetLevel(log.InfoLevel)
		return
	}
	logrusLevel, err := log.ParseLevel(level)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(logrusLevel)
}

func main() {
	application, err := app.NewApplication()
	if err != nil {
		log.Fatalf("failed to initialize onboarding service: %v", err)
	}
	if err := application.Run(); err != nil {
		log.Fatalf("onboarding service stopped: %v", err)
	}
}
