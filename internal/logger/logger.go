// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Logger writes to stdout plus an optional log file and fans every line out
// to subscribers, which feed the live log endpoints. It implements io.Writer
// so the stdlib global logger can be pointed at it, which is how lines from
// packages using plain log.Printf reach the subscribers.
type Logger struct {
	file   *os.File
	out    io.Writer
	logger *log.Logger

	subMu       sync.RWMutex
	subscribers map[chan string]bool
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init initializes the default logger and routes the stdlib global logger
// through it, so every log.Printf in the process reaches subscribers.
// Subsequent calls return the logger from the first call. logFile may be
// empty for stdout-only logging.
func Init(logFile string) (*Logger, error) {
	var err error
	once.Do(func() {
		defaultLogger, err = NewLogger(logFile)
		if err == nil {
			log.SetOutput(defaultLogger)
		}
	})
	return defaultLogger, err
}

// NewLogger creates a logger writing to stdout and, when logFile is set,
// appending to that file as well.
func NewLogger(logFile string) (*Logger, error) {
	var out io.Writer = os.Stdout
	var file *os.File

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		file = f
		out = io.MultiWriter(os.Stdout, f)
	}

	l := &Logger{
		file:        file,
		out:         out,
		subscribers: make(map[chan string]bool),
	}
	l.logger = log.New(l, "", log.LstdFlags)
	return l, nil
}

// GetDefault returns the default logger, creating a stdout-only fallback if
// Init was never called.
func GetDefault() *Logger {
	if defaultLogger == nil {
		defaultLogger, _ = NewLogger("")
	}
	return defaultLogger
}

// Write sinks one formatted log line: through to the underlying writer,
// then fanned out to subscribers. This is what makes log.SetOutput(l) feed
// the live log endpoints.
func (l *Logger) Write(p []byte) (int, error) {
	n, err := l.out.Write(p)
	l.fanOut(strings.TrimRight(string(p), "\n"))
	return n, err
}

// Subscribe registers a channel that receives every log line until
// Unsubscribe is called. The channel is buffered; slow consumers miss lines
// rather than blocking the logger.
func (l *Logger) Subscribe() chan string {
	ch := make(chan string, 32)
	l.subMu.Lock()
	l.subscribers[ch] = true
	l.subMu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (l *Logger) Unsubscribe(ch chan string) {
	l.subMu.Lock()
	defer l.subMu.Unlock()
	if l.subscribers[ch] {
		delete(l.subscribers, ch)
		close(ch)
	}
}

func (l *Logger) fanOut(line string) {
	l.subMu.RLock()
	defer l.subMu.RUnlock()
	for ch := range l.subscribers {
		select {
		case ch <- line:
		default:
			// Subscriber buffer full, drop the line for this channel.
		}
	}
}

func (l *Logger) logMessage(level, format string, v ...interface{}) {
	l.logger.Output(3, fmt.Sprintf("[%s] %s", level, fmt.Sprintf(format, v...)))
}

// Printf logs a message at INFO level.
func (l *Logger) Printf(format string, v ...interface{}) {
	l.logMessage("INFO", format, v...)
}

// Errorf logs a message at ERROR level.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.logMessage("ERROR", format, v...)
}

// Warnf logs a message at WARN level.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.logMessage("WARN", format, v...)
}

// Close releases all subscribers and closes the log file, if any. When this
// is the default logger the stdlib output is pointed back at stderr so late
// log calls do not hit a closed file.
func (l *Logger) Close() error {
	l.subMu.Lock()
	for ch := range l.subscribers {
		delete(l.subscribers, ch)
		close(ch)
	}
	l.subMu.Unlock()

	if defaultLogger == l {
		log.SetOutput(os.Stderr)
	}

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Printf logs to the default logger at INFO level.
func Printf(format string, v ...interface{}) {
	GetDefault().Printf(format, v...)
}

// Errorf logs to the default logger at ERROR level.
func Errorf(format string, v ...interface{}) {
	GetDefault().Errorf(format, v...)
}

// Warnf logs to the default logger at WARN level.
func Warnf(format string, v ...interface{}) {
	GetDefault().Warnf(format, v...)
}
