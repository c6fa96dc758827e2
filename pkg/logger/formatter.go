package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// CustomJSONFormatter emits one JSON object per line with a stable
// field layout, so log pipelines can index entries without guessing.
type CustomJSONFormatter struct {
	TimestampFormat string
	AppName         string
}

// CustomTextFormatter is the development formatter: colored level tag,
// message, then sorted key=value fields.
type CustomTextFormatter struct {
	TimestampFormat string
	DisableColors   bool
}

func (f *CustomJSONFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Data)+4)

	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = time.RFC3339
	}
	data["timestamp"] = entry.Time.Format(timestampFormat)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message
	if f.AppName != "" {
		data["app"] = f.AppName
	}

	for k, v := range entry.Data {
		data[k] = v
	}

	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	if err := json.NewEncoder(b).Encode(data); err != nil {
		return nil, fmt.Errorf("failed to marshal fields to JSON: %w", err)
	}

	return b.Bytes(), nil
}

func (f *CustomTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = "2006-01-02 15:04:05"
	}

	levelColor := ""
	resetColor := ""
	if !f.DisableColors {
		switch entry.Level {
		case logrus.DebugLevel:
			levelColor = "\033[36m" // cyan
		case logrus.InfoLevel:
			levelColor = "\033[32m" // green
		case logrus.WarnLevel:
			levelColor = "\033[33m" // yellow
		case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
			levelColor = "\033[31m" // red
		}
		resetColor = "\033[0m"
	}

	fmt.Fprintf(b, "%s %s%-5s%s %s",
		entry.Time.Format(timestampFormat),
		levelColor, entry.Level.String(), resetColor,
		entry.Message,
	)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(b, " %s=%v", k, entry.Data[k])
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
