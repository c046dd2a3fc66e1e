package server

import (
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "notice", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
// and forwarding them to the server log
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	server      core.Logger
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage, server core.Logger) *WebLogger {
	if server == nil {
		server = core.NopLogger{}
	}
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		server:      server,
	}
}

func (wl *WebLogger) Debugf(format string, args ...interface{}) {
	wl.server.Debugf(wl.prefix(format), args...)
	wl.send("debug", format, args...)
}

func (wl *WebLogger) Infof(format string, args ...interface{}) {
	wl.server.Infof(wl.prefix(format), args...)
	wl.send("info", format, args...)
}

func (wl *WebLogger) Noticef(format string, args ...interface{}) {
	wl.server.Noticef(wl.prefix(format), args...)
	wl.send("notice", format, args...)
}

func (wl *WebLogger) Warningf(format string, args ...interface{}) {
	wl.server.Warningf(wl.prefix(format), args...)
	wl.send("warning", format, args...)
}

func (wl *WebLogger) Errorf(format string, args ...interface{}) {
	wl.server.Errorf(wl.prefix(format), args...)
	wl.send("error", format, args...)
}

func (wl *WebLogger) prefix(format string) string {
	return wl.renderID + ": " + format
}

// send never blocks; messages are dropped once the channel is full
func (wl *WebLogger) send(level, format string, args ...interface{}) {
	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
	}
}

// drainConsole collects whatever is buffered without waiting for more
func drainConsole(consoleChan <-chan ConsoleMessage) []ConsoleMessage {
	messages := make([]ConsoleMessage, 0, len(consoleChan))
	for {
		select {
		case msg := <-consoleChan:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}
