package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// setupLogging sends all diagnostics to stderr so they never mix with
// normal output.
func setupLogging(debug bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{})

	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}
