package query

import (
	"sync"

	"github.com/datastax/data-api-query/config"
	"github.com/datastax/data-api-query/log"
)

type entry struct {
	level string
	msg   string
}

// recordingLogger keeps every entry so tests can assert on warnings.
type recordingLogger struct {
	mu      sync.Mutex
	entries []entry
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry{level, msg})
}

func (l *recordingLogger) Debug(msg string, _ ...interface{}) { l.record("debug", msg) }
func (l *recordingLogger) Info(msg string, _ ...interface{})  { l.record("info", msg) }
func (l *recordingLogger) Warn(msg string, _ ...interface{})  { l.record("warn", msg) }
func (l *recordingLogger) Error(msg string, _ ...interface{}) { l.record("error", msg) }
func (l *recordingLogger) Fatal(msg string, _ ...interface{}) { l.record("fatal", msg) }

func (l *recordingLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

func newTestCompiler() *Compiler {
	return NewCompiler(config.NewConfigMock().Default())
}

func newCompilerWith(limits config.Limits, logger log.Logger) *Compiler {
	cfg := config.NewConfigMock()
	cfg.On("Limits").Return(limits)
	cfg.On("Logger").Return(logger)
	cfg.On("Notices").Return(log.NewOnce())
	return NewCompiler(cfg)
}
