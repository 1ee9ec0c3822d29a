package log

import (
	"go.uber.org/zap"

	"fwsim/config"
)

// logger is the interface of the logger.
type logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})
}

// Logger is the reality called by the program
var Logger logger

// Structure for zap
type zapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(logger *zap.Logger) *zapLogger {
	return &zapLogger{
		logger: logger,
	}
}

func init() {
	var zapLog *zap.Logger
	switch {
	case config.IsTest():
		zapLog = zap.NewNop()
	case config.IsDebug():
		zapLog, _ = zap.NewDevelopment(zap.AddCaller(), zap.AddCallerSkip(1))
	default:
		cfg := zap.NewProductionConfig()
		// stdout belongs to the command output
		cfg.OutputPaths = []string{"stderr"}
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		zapLog, _ = cfg.Build(zap.AddCallerSkip(1))
	}
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	Logger = &zapLogger{
		logger: zapLog,
	}
}

func (l *zapLogger) Debugf(template string, args ...interface{}) {
	// Flush the remaining log entries in buff.
	defer func() {
		_ = l.logger.Sync()
	}()
	l.logger.Sugar().Debugf(template, args...)
}

func (l *zapLogger) Infof(template string, args ...interface{}) {
	defer func() {
		_ = l.logger.Sync()
	}()
	l.logger.Sugar().Infof(template, args...)
}

func (l *zapLogger) Warnf(template string, args ...interface{}) {
	defer func() {
		_ = l.logger.Sync()
	}()
	l.logger.Sugar().Warnf(template, args...)
}

func (l *zapLogger) Errorf(template string, args ...interface{}) {
	defer func() {
		_ = l.logger.Sync()
	}()
	l.logger.Sugar().Errorf(template, args...)
}

func (l *zapLogger) Fatalf(template string, args ...interface{}) {
	defer func() {
		_ = l.logger.Sync()
	}()
	l.logger.Sugar().Fatalf(template, args...)
}
