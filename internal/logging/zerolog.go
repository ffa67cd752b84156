package logging

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts zerolog to Logger. Key–value pairs are attached with
// Fields; a dangling key without a value is logged under "!BADKEY", matching
// slog's behaviour.
type ZerologLogger struct {
	zl zerolog.Logger
}

func NewZerologLogger(zl zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{zl: zl}
}

// newConsole builds a human-readable zerolog logger.
func newConsole(w io.Writer, level zerolog.Level) *ZerologLogger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
	return NewZerologLogger(zl)
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.zl.Debug().Ctx(ctx).Fields(pairs(args)).Msg(msg)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.zl.Info().Ctx(ctx).Fields(pairs(args)).Msg(msg)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.zl.Warn().Ctx(ctx).Fields(pairs(args)).Msg(msg)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.zl.Error().Ctx(ctx).Fields(pairs(args)).Msg(msg)
}

func (z *ZerologLogger) With(args ...any) Logger {
	return &ZerologLogger{zl: z.zl.With().Fields(pairs(args)).Logger()}
}

func pairs(args []any) map[string]any {
	fields := make(map[string]any, len(args)/2+1)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		if i+1 >= len(args) {
			fields["!BADKEY"] = key
			break
		}
		if err, ok := args[i+1].(error); ok {
			fields[key] = err.Error()
			continue
		}
		fields[key] = args[i+1]
	}
	return fields
}
