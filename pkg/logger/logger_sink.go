package logger

import (
	"schnorr-batch/pkg/utilities/timeutil"

	"github.com/rs/zerolog"
)

type SinkFunc func(msg string, level zerolog.Level, timestamp timeutil.TimeUTC)

func AddSinkToLoggerInstance(loggerInstance *Logger, sinkFunction SinkFunc) {
	loggerInstance.sink = sinkFunction
}

func (l *Logger) activateSink(level zerolog.Level, msg string) {
	if l.sink != nil && l.zl.GetLevel() <= level {
		l.sink(msg, level, timeutil.NowUTC())
	}
}
