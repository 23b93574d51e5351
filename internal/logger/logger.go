// Package logger собирает zap-логгер приложения: консоль в stderr
// и, при заданном файле, JSON-лог с ротацией через lumberjack.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options задаёт параметры логгера.
type Options struct {
	Level     string
	File      string
	MaxSizeMB int
	MaxFiles  int

	// Console: куда писать человекочитаемый лог; по умолчанию os.Stderr.
	Console io.Writer
}

// NewRotatingWriter открывает файл лога с ротацией по размеру.
func NewRotatingWriter(file string, maxSizeMB, maxFiles int) (*lumberjack.Logger, error) {
	if file == "" {
		return nil, fmt.Errorf("log file path must not be empty")
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	if maxFiles <= 0 {
		maxFiles = 5
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSizeMB,
		MaxBackups: maxFiles,
	}, nil
}

// ParseLevel разбирает уровень логирования; пустая строка означает warn.
func ParseLevel(s string) (zapcore.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return zapcore.WarnLevel, nil
	}
	return zapcore.ParseLevel(strings.ToLower(s))
}

// New возвращает SugaredLogger и функцию, сбрасывающую буферы и закрывающую файл.
func New(opts Options) (*zap.SugaredLogger, func(), error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(console), level),
	}

	var rotator *lumberjack.Logger
	if opts.File != "" {
		rotator, err = NewRotatingWriter(opts.File, opts.MaxSizeMB, opts.MaxFiles)
		if err != nil {
			return nil, nil, err
		}
		jsonCfg := zap.NewProductionEncoderConfig()
		jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), zapcore.AddSync(rotator), level))
	}

	l := zap.New(zapcore.NewTee(cores...))
	sugar := l.Sugar()
	cleanup := func() {
		_ = l.Sync()
		if rotator != nil {
			_ = rotator.Close()
		}
	}
	return sugar, cleanup, nil
}
