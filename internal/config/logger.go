package config

import (
	"github.com/sirupsen/logrus"
)

// Logger is the shared application logger.
var Logger = logrus.New()

// InitLogger applies the standard formatter and level. MEETINGMIND_DEBUG
// flips on debug output for troubleshooting API interactions.
func InitLogger() {
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	Logger.SetLevel(logrus.InfoLevel)
	if v := readEnv("MEETINGMIND_DEBUG", ""); v != "" {
		Logger.SetLevel(logrus.DebugLevel)
	}
}
