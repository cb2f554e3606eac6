package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	instance *Logger
	once     sync.Once
)

// Logger writes to a file, since the terminal belongs to the editor UI.
type Logger struct {
	fileLogger *log.Logger
	logFile    *os.File
	mu         sync.Mutex
}

// Init opens path for appending and makes it the process-wide log. The
// standard library logger is redirected to it too, so messages from the
// editor core end up in the same file. Only the first call has any effect.
func Init(path string) error {
	var err error
	once.Do(func() {
		instance, err = newLogger(path)
		if err == nil {
			log.SetOutput(instance.logFile)
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		}
	})
	return err
}

func newLogger(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		fileLogger: log.New(logFile, "", log.LstdFlags),
		logFile:    logFile,
	}, nil
}

func Info(format string, args ...any) {
	if instance != nil {
		instance.log("INFO", format, args...)
	}
}

func Error(format string, args ...any) {
	if instance != nil {
		instance.log("ERROR", format, args...)
	}
}

func Debug(format string, args ...any) {
	if instance != nil {
		instance.log("DEBUG", format, args...)
	}
}

func (l *Logger) log(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.fileLogger.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

func Close() error {
	if instance == nil || instance.logFile == nil {
		return nil
	}
	return instance.logFile.Close()
}

// SetOutput redirects the logger, mainly for tests.
func SetOutput(w io.Writer) {
	if instance != nil {
		instance.mu.Lock()
		defer instance.mu.Unlock()
		instance.fileLogger.SetOutput(w)
	}
}
