package market

import (
	"io"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/krazyTry/coop-meme-go/coop_meme"
)

// LogSink writes events as structured log entries
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// NewJSONSink writes one JSON object per event to w.
func NewJSONSink(w io.Writer) *LogSink {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(w), zap.InfoLevel)
	return &LogSink{logger: zap.New(core)}
}

func (s *LogSink) Emit(event coop_meme.Event) {
	s.logger.Info("event", zap.String("event", event.EventName()), zap.Any("data", event))
}

// MultiSink fans events out to several sinks
type MultiSink []EventSink

func (m MultiSink) Emit(event coop_meme.Event) {
	for _, s := range m {
		s.Emit(event)
	}
}

// Recorder keeps emitted events in memory
type Recorder struct {
	mu     sync.Mutex
	events []coop_meme.Event
}

func (r *Recorder) Emit(event coop_meme.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *Recorder) Events() []coop_meme.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]coop_meme.Event(nil), r.events...)
}

// Names lists the names of the recorded events in order.
func (r *Recorder) Names() []string {
	var names []string
	for _, e := range r.Events() {
		names = append(names, e.EventName())
	}
	return names
}
