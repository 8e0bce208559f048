package context

import (
	"context"
)

type contextKey string

var (
	requestIDKey contextKey = "request_id"
	themeKey     contextKey = "theme"
)

const DefaultTheme = "light"

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the request id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

func SetTheme(ctx context.Context, theme string) context.Context {
	return context.WithValue(ctx, themeKey, theme)
}

func GetTheme(ctx context.Context) string {
	if theme, ok := ctx.Value(themeKey).(string); ok {
		return theme
	}
	return DefaultTheme
}
