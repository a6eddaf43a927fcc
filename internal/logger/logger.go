package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"
)

const (
	logDirName  = ".card-showdown"
	logFileName = "debug.log"
	maxLogSize  = 10 * 1024 * 1024
)

var (
	debugLog *os.File
	logPath  string
	std      = log.NewWithOptions(io.Discard, log.Options{})
)

// Init 初始化日志，写入 dir/debug.log；dir 为空时使用 ~/.card-showdown。
// 终端由 TUI 占用，日志只写文件。
func Init(dir, level string) error {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, logDirName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	Close()
	logPath = filepath.Join(dir, logFileName)
	debugLog, err = openRotated(dir, logPath)
	if err != nil {
		return err
	}

	std = log.NewWithOptions(debugLog, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.StampMicro,
		ReportCaller:    true,
		CallerOffset:    1,
	})

	Info("logger initialized", "path", logPath, "level", lvl)
	return nil
}

// openRotated 打开日志文件，超过 10MB 时先改名备份
func openRotated(dir, path string) (*os.File, error) {
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		backupPath := filepath.Join(dir, fmt.Sprintf("%s.%d", logFileName, time.Now().Unix()))
		_ = os.Rename(path, backupPath)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// Close 关闭日志文件
func Close() {
	if debugLog != nil {
		_ = debugLog.Close()
		debugLog = nil
		std = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Debug 记录调试日志
func Debug(msg string, keyvals ...any) {
	std.Debug(msg, keyvals...)
}

// Info 记录一般日志
func Info(msg string, keyvals ...any) {
	std.Info(msg, keyvals...)
}

// Error 记录错误日志
func Error(msg string, keyvals ...any) {
	std.Error(msg, keyvals...)
}

// LogPanic 记录 panic 及堆栈
func LogPanic(r any) {
	std.Error("panic", "recovered", r, "stack", string(debug.Stack()))
}

// GetLogPath 返回当前日志文件路径
func GetLogPath() string {
	return logPath
}
