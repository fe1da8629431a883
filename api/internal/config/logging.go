package config

import (
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
)

// SetupLogging installs the apex/log handler and level. Unknown levels fall
// back to info.
func SetupLogging(level, format string) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		log.SetHandler(json.New(os.Stderr))
	default:
		log.SetHandler(text.New(os.Stderr))
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
