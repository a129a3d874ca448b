package utils

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// InitLogger configures logrus for the process. JSON output in release mode
// keeps log shippers happy; text locally.
func InitLogger(ginMode string) {
	if ginMode == "release" {
		log.SetFormatter(new(log.JSONFormatter))
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// LogEvent prints a standardized line with module/action/request_id. Avoid
// logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	log.WithFields(log.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).Info(message)
}
