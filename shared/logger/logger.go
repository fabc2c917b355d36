package logger

import (
	"context"
	"equiplend/config"
	"equiplend/shared/constant"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	initLogger(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

// InitJSONLogger writes structured JSON lines instead of the console format.
func InitJSONLogger(out io.Writer) {
	initLogger(out)
}

func initLogger(out io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(out)
	log.Trace().Msg("Zerolog initialized.")
}

// Setup picks the output format for the environment and applies the configured level.
func Setup(cfg *config.Config) {
	if cfg.Server.Env == constant.ServerEnvProduction {
		InitJSONLogger(os.Stdout)
	} else {
		InitLogger()
	}

	SetLogLevel(cfg)
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// Ctx returns the global logger enriched with the request id carried by ctx, if any.
func Ctx(ctx context.Context) *zerolog.Logger {
	requestID, _ := ctx.Value(constant.ContextKeyRequestID).(string)
	if requestID == "" {
		return &log.Logger
	}

	l := log.With().Str("request_id", requestID).Logger()

	return &l
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
