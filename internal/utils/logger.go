package utils

import "github.com/sirupsen/logrus" // Logrus for structured logging

// SetupLogger configures the global logrus logger: JSON in production, text with timestamps otherwise
func SetupLogger(level string, isProd bool) {
	if isProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel // Unknown level names fall back to info
	}
	logrus.SetLevel(lvl)
}
