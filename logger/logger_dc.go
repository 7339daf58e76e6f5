package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type _LoggingFormat int8

const (
	_JSONFormat _LoggingFormat = iota
	_StackdriverFormat
)

// Debugf logger
func Debugf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

// Infof logger
func Infof(format string, args ...interface{}) {
	if l == nil {
		fmt.Printf(fmt.Sprintf("%s\n", format), args...)
		return
	}
	l.sugar.Infof(format, args...)
}

// Warnf logger
func Warnf(format string, args ...interface{}) {
	if l == nil {
		fmt.Printf(fmt.Sprintf("%s\n", format), args...)
		return
	}
	l.sugar.Warnf(format, args...)
}

// Errorf logger
func Errorf(format string, args ...interface{}) {
	if l == nil {
		debug.PrintStack()
		fmt.Printf(fmt.Sprintf("%s\n", format), args...)
		return
	}
	l.sugar.Errorf(format, args...)
}

// Panicf logger, log message then panic.
// Panics even when the logger has not been initialized, the aoi invariant
// checks rely on it.
func Panicf(format string, args ...interface{}) {
	if l == nil {
		panic(fmt.Sprintf(format, args...))
	}
	l.sugar.Panicf(format, args...)
}

// Debug logger
func Debug(msg string, fields ...zapcore.Field) {
	if l == nil {
		return
	}
	l.logger.Debug(msg, fields...)
}

// Info logger
func Info(msg string, fields ...zapcore.Field) {
	if l == nil {
		fmt.Println(msg)
		return
	}
	l.logger.Info(msg, fields...)
}

// Warn logger
func Warn(msg string, fields ...zapcore.Field) {
	if l == nil {
		fmt.Println(msg, fields)
		return
	}
	l.logger.Warn(msg, fields...)
}

// Error logger
func Error(msg string, fields ...zapcore.Field) {
	if l == nil {
		fmt.Println(msg, fields)
		return
	}
	l.logger.Error(msg, fields...)
}

// Panic logger, log message then panic
func Panic(msg string, fields ...zapcore.Field) {
	if l == nil {
		panic(msg)
	}
	l.logger.Panic(msg, fields...)
}

var l *_LoggerImp

// Init logger initialize
func Init(serverType string, config *viper.Viper) {
	SetLogger(newLogger(serverType, config))
	l.Info("initialize logger")
}

// SetLogger replaces the package logger, mostly used by tests and tools
// that already own a *zap.Logger. nil resets to the uninitialized state.
func SetLogger(zl *zap.Logger) {
	if zl == nil {
		l = nil
		return
	}
	l = &_LoggerImp{
		logger: zl,
		sugar:  zl.Sugar(),
	}
}

// Zap returns the underlying zap logger, a no-op logger before Init.
func Zap() *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.logger
}

// Sync flushes buffered entries
func Sync() error {
	if l == nil {
		return nil
	}
	return l.logger.Sync()
}

// newLogger tees a console core and an optional file core, the file is
// {logger.dir}/{serverType}.log, rotated by lumberjack when logger.rotation is set.
func newLogger(serverType string, config *viper.Viper) *zap.Logger {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(strings.ToLower(config.GetString("logger.level")))); err != nil {
		fmt.Printf("logger level %q invalid, use info\n", config.GetString("logger.level"))
		level = zapcore.InfoLevel
	}
	format := _JSONFormat
	if strings.EqualFold(config.GetString("logger.format"), "stackdriver") {
		format = _StackdriverFormat
	}

	cores := make([]zapcore.Core, 0, 2)
	if dir := config.GetString("logger.dir"); dir != "" {
		out, err := openLogFile(config, filepath.Join(dir, serverType+".log"))
		if err != nil {
			fmt.Printf("logger file output disabled: %v\n", err)
		} else {
			cores = append(cores, zapcore.NewCore(newEncoder(format), out, level))
		}
	}
	// 没有文件输出时总是打到控制台
	if config.GetBool("logger.stdout") || len(cores) == 0 {
		cores = append(cores, zapcore.NewCore(newEncoder(format), zapcore.Lock(os.Stdout), level))
	}

	zl := zap.New(zapcore.NewTee(cores...),
		zap.AddStacktrace(zap.ErrorLevel), zap.AddCaller(), zap.AddCallerSkip(1))
	zap.RedirectStdLog(zl)
	return zl
}

func openLogFile(config *viper.Viper, fileName string) (zapcore.WriteSyncer, error) {
	if err := os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		return nil, err
	}
	if config.GetBool("logger.rotation") {
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   fileName,
			MaxSize:    config.GetInt("logger.maxsize"),
			MaxAge:     config.GetInt("logger.maxage"),
			MaxBackups: config.GetInt("logger.maxbackups"),
			LocalTime:  config.GetBool("logger.localtime"),
			Compress:   config.GetBool("logger.compress"),
		}), nil
	}
	f, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, err
	}
	return zapcore.Lock(f), nil
}

func newEncoder(format _LoggingFormat) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if format == _StackdriverFormat {
		cfg.TimeKey = "time"
		cfg.LevelKey = "severity"
		cfg.EncodeLevel = stackdriverLevelEncoder
		cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(fmt.Sprintf("%d%s", t.Unix(), t.Format(".000000000")))
		}
	}
	return zapcore.NewJSONEncoder(cfg)
}

var stackdriverSeverity = map[zapcore.Level]string{
	zapcore.DebugLevel:  "debug",
	zapcore.InfoLevel:   "info",
	zapcore.WarnLevel:   "warning",
	zapcore.ErrorLevel:  "error",
	zapcore.DPanicLevel: "critical",
	zapcore.PanicLevel:  "critical",
	zapcore.FatalLevel:  "critical",
}

func stackdriverLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if s, ok := stackdriverSeverity[l]; ok {
		enc.AppendString(s)
		return
	}
	enc.AppendString(fmt.Sprintf("Level(%d)", l))
}
