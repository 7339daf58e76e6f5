package logger

import "go.uber.org/zap"

// _LoggerImp keeps the raw and the sugared logger side by side
type _LoggerImp struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

func (l *_LoggerImp) Info(args ...interface{}) {
	l.sugar.Info(args...)
}

func (l *_LoggerImp) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *_LoggerImp) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}
