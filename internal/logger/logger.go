package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	debugLog *os.File
	logPath  string

	current atomic.Pointer[zap.SugaredLogger]
)

func init() {
	current.Store(zap.NewNop().Sugar())
}

// Init initializes the debug logger under ~/.stellar-empires/debug.log
func Init() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitAt(filepath.Join(homeDir, ".stellar-empires"))
}

// InitAt initializes the debug logger in logDir.
func InitAt(logDir string) error {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath = filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	// Rotate if file is too large (> 10MB)
	if info, err := f.Stat(); err == nil && info.Size() > 10*1024*1024 {
		_ = f.Close()
		backupPath := filepath.Join(logDir, fmt.Sprintf("debug.log.%d", time.Now().Unix()))
		_ = os.Rename(logPath, backupPath)
		f, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create new log file: %w", err)
		}
	}
	debugLog = f

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(f), zapcore.DebugLevel)
	Use(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)))

	LogInfo("Logger initialized, log file: %s", logPath)
	return nil
}

// InitConsole logs to stderr at info level. Used by the server binary.
func InitConsole() error {
	l, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build console logger: %w", err)
	}
	Use(l)
	return nil
}

// Use swaps the backing logger and returns a function restoring the previous one.
func Use(l *zap.Logger) (restore func()) {
	prev := current.Swap(l.Sugar())
	return func() { current.Store(prev) }
}

// Close flushes the logger and closes the debug log file
func Close() {
	_ = current.Load().Sync()
	if debugLog != nil {
		_ = debugLog.Close()
		debugLog = nil
	}
}

// LogDebug logs a debug message
func LogDebug(format string, args ...any) {
	current.Load().Debugf(format, args...)
}

// LogInfo logs an info message
func LogInfo(format string, args ...any) {
	current.Load().Infof(format, args...)
}

// LogWarn logs a warning message
func LogWarn(format string, args ...any) {
	current.Load().Warnf(format, args...)
}

// LogError logs an error message
func LogError(format string, args ...any) {
	current.Load().Errorf(format, args...)
}

// LogPanic logs a panic with stack trace
func LogPanic(r any) {
	current.Load().Errorw("panic recovered", "panic", r, "stack", string(debug.Stack()))
}

// GetLogPath returns the current log file path
func GetLogPath() string {
	return logPath
}
