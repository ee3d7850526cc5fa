// Package notify delivers user-facing messages from the client stores.
package notify

import (
	"log/slog"
	"sync"
)

// Level is the severity of a notification.
type Level string

const (
	Info    Level = "info"
	Success Level = "success"
	Warning Level = "warning"
	Error   Level = "error"
)

// Notifier receives notifications. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(level Level, message string)
}

// Func adapts a function to Notifier.
type Func func(Level, string)

// Notify calls f.
func (f Func) Notify(level Level, message string) { f(level, message) }

// Message is one recorded notification.
type Message struct {
	Level Level
	Text  string
}

// Recorder keeps every notification in order.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
}

// Notify appends the message.
func (r *Recorder) Notify(level Level, message string) {
	r.mu.Lock()
	r.msgs = append(r.msgs, Message{Level: level, Text: message})
	r.mu.Unlock()
}

// Messages returns a copy of what has been recorded.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.msgs...)
}

// Last returns the most recent message, if any.
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return Message{}, false
	}
	return r.msgs[len(r.msgs)-1], true
}

// Slog writes notifications to a structured logger.
type Slog struct {
	Logger *slog.Logger
}

// Notify logs message at the slog level matching level.
func (s Slog) Notify(level Level, message string) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	switch level {
	case Error:
		logger.Error(message, slog.String("level_name", string(level)))
	case Warning:
		logger.Warn(message, slog.String("level_name", string(level)))
	default:
		logger.Info(message, slog.String("level_name", string(level)))
	}
}

// Discard drops every notification.
var Discard Notifier = Func(func(Level, string) {})
