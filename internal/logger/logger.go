// Package logger は log/slog の初期化とリクエスト単位のコンテキスト付与を提供します。
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type contextKey string

// RequestIDKey はリクエスト ID を context に格納するキーです。
const RequestIDKey contextKey = "request_id"

// Init はレベルと形式 (json / text) を指定してデフォルトロガーを差し替えます。
func Init(level, format string) *slog.Logger {
	return InitWithWriter(os.Stdout, level, format)
}

// InitWithWriter は出力先を指定して Init と同じ処理を行います。
func InitWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var h slog.Handler
	if strings.ToLower(format) == "text" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(&contextHandler{Handler: h})
	slog.SetDefault(l)
	return l
}

// ParseLevel はレベル文字列を slog.Level に変換します。不明な値は info です。
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID は context にリクエスト ID を埋め込みます。
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID は context からリクエスト ID を取り出します。
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// FromContext はリクエスト ID 付きのロガーを返します。
func FromContext(ctx context.Context) *slog.Logger {
	l := slog.Default()
	if id := RequestID(ctx); id != "" {
		l = l.With("request_id", id)
	}
	return l
}

// contextHandler は *Context 系の呼び出しで渡された context からリクエスト ID を拾って出力に加えます。
type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name)}
}
