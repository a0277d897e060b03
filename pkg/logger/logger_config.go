package logger

import "github.com/rs/zerolog"

type LoggerConfigJson struct {
	LogLevel *int8 `json:"log_level"`
}

type LoggerConfig struct {
	LogLevel zerolog.Level
}

// ConvertToDomain maps the json level; a missing level means info.
func (lcj LoggerConfigJson) ConvertToDomain() LoggerConfig {
	if lcj.LogLevel == nil {
		return LoggerConfig{LogLevel: zerolog.InfoLevel}
	}

	return LoggerConfig{
		LogLevel: zerolog.Level(*lcj.LogLevel),
	}
}
