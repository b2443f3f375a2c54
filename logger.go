package auth0strategy

import "github.com/sirupsen/logrus"

// Logger is the generic logging interface the strategy and hooks write to.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// noopLogger is the default: the strategy stays silent unless a logger is
// injected.
type noopLogger struct{}

func (*noopLogger) Debugf(string, ...any) {}
func (*noopLogger) Infof(string, ...any)  {}
func (*noopLogger) Warnf(string, ...any)  {}
func (*noopLogger) Errorf(string, ...any) {}

// NewLogrusLogger returns a Logger adapter for logrus.FieldLogger.
func NewLogrusLogger(l logrus.FieldLogger) Logger {
	return &logrusLogger{l: l}
}

type logrusLogger struct{ l logrus.FieldLogger }

func (a *logrusLogger) Debugf(format string, args ...any) { a.l.Debugf(format, args...) }
func (a *logrusLogger) Infof(format string, args ...any)  { a.l.Infof(format, args...) }
func (a *logrusLogger) Warnf(format string, args ...any)  { a.l.Warnf(format, args...) }
func (a *logrusLogger) Errorf(format string, args ...any) { a.l.Errorf(format, args...) }
