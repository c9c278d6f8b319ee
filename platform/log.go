package platform

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type LogFormatter struct {
}

func (m *LogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
	b.WriteString(fmt.Sprintf("[%s] [%s] %s\n", timestamp, entry.Level, entry.Message))
	return b.Bytes(), nil
}

// InitAppLogger returns a logger writing to a dated file under logPath
// and to stderr. Falls back to stderr alone when the file cannot be opened.
func InitAppLogger(logPath string, fileName string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&LogFormatter{})

	if err := os.MkdirAll(logPath, os.ModePerm); err != nil {
		logrus.Error(err)
		logger.SetOutput(os.Stderr)
		return logger
	}
	timer := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s/%s-%s.log", logPath, timer, fileName)
	logFile, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		logrus.Error(err)
		logger.SetOutput(os.Stderr)
		return logger
	}
	logger.SetOutput(io.MultiWriter(logFile, os.Stderr))
	return logger
}

var Logger = InitAppLogger("./log", "bounce")
