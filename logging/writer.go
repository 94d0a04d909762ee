package logging

import (
	"bytes"

	"github.com/rs/zerolog"
)

// Writer forwards zerolog output to a Client, one host call per log line,
// choosing the host function from the event level.
//
//	log := zerolog.New(logging.NewWriter(client))
//	mock := xhrmock.New(xhrmock.Config{Logger: &log})
type Writer struct {
	client Client
}

var _ zerolog.LevelWriter = (*Writer)(nil)

// NewWriter returns a Writer sending to c.
func NewWriter(c Client) *Writer {
	return &Writer{client: c}
}

// Write forwards p at info level.
func (w *Writer) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

// WriteLevel forwards p to the host function matching level.
func (w *Writer) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	msg := string(bytes.TrimRight(p, "\n"))

	switch level {
	case zerolog.TraceLevel:
		w.client.Trace(msg)
	case zerolog.DebugLevel:
		w.client.Debug(msg)
	case zerolog.WarnLevel:
		w.client.Warn(msg)
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		w.client.Error(msg)
	default:
		w.client.Info(msg)
	}
	return len(p), nil
}
