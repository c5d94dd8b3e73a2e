package logger

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
)

// otelBridge emits slog records through the global OTel logger provider.
// Group names become dotted key prefixes.
type otelBridge struct {
	logger otellog.Logger
	level  slog.Level
	prefix string
	preset []otellog.KeyValue
}

func newOTelBridge(scope string, level slog.Level) *otelBridge {
	return &otelBridge{
		logger: global.GetLoggerProvider().Logger(scope),
		level:  level,
	}
}

func (b *otelBridge) Enabled(_ context.Context, level slog.Level) bool {
	return level >= b.level
}

func (b *otelBridge) Handle(ctx context.Context, r slog.Record) error {
	var rec otellog.Record
	rec.SetTimestamp(r.Time)
	rec.SetObservedTimestamp(time.Now())
	rec.SetBody(otellog.StringValue(r.Message))
	rec.SetSeverity(severityOf(r.Level))
	rec.SetSeverityText(r.Level.String())

	for _, a := range contextAttrs(ctx) {
		rec.AddAttributes(keyValue("", a))
	}
	rec.AddAttributes(b.preset...)
	r.Attrs(func(a slog.Attr) bool {
		if !a.Equal(slog.Attr{}) {
			rec.AddAttributes(keyValue(b.prefix, a))
		}
		return true
	})

	b.logger.Emit(ctx, rec)
	return nil
}

func (b *otelBridge) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *b
	next.preset = slices.Clip(b.preset)
	for _, a := range attrs {
		next.preset = append(next.preset, keyValue(b.prefix, a))
	}
	return &next
}

func (b *otelBridge) WithGroup(name string) slog.Handler {
	if name == "" {
		return b
	}
	next := *b
	next.prefix = b.prefix + name + "."
	return &next
}

func severityOf(level slog.Level) otellog.Severity {
	switch {
	case level >= slog.LevelError:
		return otellog.SeverityError
	case level >= slog.LevelWarn:
		return otellog.SeverityWarn
	case level >= slog.LevelInfo:
		return otellog.SeverityInfo
	default:
		return otellog.SeverityDebug
	}
}

func keyValue(prefix string, a slog.Attr) otellog.KeyValue {
	return otellog.KeyValue{Key: prefix + a.Key, Value: logValue(a.Value)}
}

func logValue(v slog.Value) otellog.Value {
	switch v = v.Resolve(); v.Kind() {
	case slog.KindString:
		return otellog.StringValue(v.String())
	case slog.KindInt64:
		return otellog.Int64Value(v.Int64())
	case slog.KindUint64:
		return otellog.Int64Value(int64(v.Uint64()))
	case slog.KindFloat64:
		return otellog.Float64Value(v.Float64())
	case slog.KindBool:
		return otellog.BoolValue(v.Bool())
	case slog.KindDuration:
		return otellog.Int64Value(v.Duration().Milliseconds())
	case slog.KindTime:
		return otellog.StringValue(v.Time().Format(time.RFC3339Nano))
	case slog.KindGroup:
		group := v.Group()
		kvs := make([]otellog.KeyValue, 0, len(group))
		for _, a := range group {
			kvs = append(kvs, keyValue("", a))
		}
		return otellog.MapValue(kvs...)
	default:
		if err, ok := v.Any().(error); ok {
			return otellog.StringValue(err.Error())
		}
		return otellog.StringValue(strings.TrimSpace(v.String()))
	}
}
