package middleware

import (
	"context"
	"net/http"

	"equiprent-backend/internal/domain"
)

type contextKey string

const (
	callerKey    contextKey = "caller"
	requestIDKey contextKey = "request_id"
)

// WithCaller attaches the authenticated user record to the request context.
func WithCaller(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, callerKey, user)
}

// CallerFromRequest extracts the authenticated user attached by the
// authorization gateway. It is only present on requests that passed a token
// check.
func CallerFromRequest(r *http.Request) (*domain.User, error) {
	user, ok := r.Context().Value(callerKey).(*domain.User)
	if !ok || user == nil {
		return nil, domain.Unauthorizedf("authentication required")
	}
	return user, nil
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
