package logger

import (
	"fmt"
	"os"
	"path"
	"runtime"

	log "github.com/sirupsen/logrus"
)

func SetupLogger(level string) {
	loggerLevel, err := log.ParseLevel(level)
	log.SetReportCaller(true)
	log.SetOutput(os.Stderr)

	log.SetFormatter(&log.JSONFormatter{
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			return "", fmt.Sprintf("%s:%d", path.Base(frame.File), frame.Line)
		},
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err != nil {
		log.Infof("Level setup default INFO, err: %v", err)
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(loggerLevel)
	}

}

func LogParsed(parsed map[string]int, skipped, dropped int) {
	fields := log.Fields{
		"skipped_lines": skipped,
		"dropped":       dropped,
	}
	for grammar, n := range parsed {
		fields["parsed_"+grammar] = n
	}
	log.WithFields(fields).Info("Log text parsed")
}

func LogDropped(err error) {
	log.WithField("error", err).Debug("Record dropped")
}

func LogRejected(request string, err error) {
	log.WithFields(log.Fields{
		"request": request,
		"error":  err,
	}).Warn("Filter request rejected")
}

func LogFiltered(steps []string, total, selected int) {
	log.WithFields(log.Fields{
		"steps":    steps,
		"total":    total,
		"selected": selected,
	}).Info("Entries filtered")
}

func LogPublishError(count int, err error) {
	log.WithFields(log.Fields{
		"count": count,
		"error": err,
	}).Error("Failed to publish entries")
}
