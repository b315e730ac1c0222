package logger

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrorFileHook copies ERROR, FATAL and PANIC records to a separate writer,
// usually a rotating file.
type ErrorFileHook struct {
	mu        sync.Mutex
	w         io.Writer
	formatter logrus.Formatter
}

func NewErrorFileHook(w io.Writer) *ErrorFileHook {
	return &ErrorFileHook{
		w: w,
		formatter: &logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		},
	}
}

func (h *ErrorFileHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

func (h *ErrorFileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(line)
	return err
}
