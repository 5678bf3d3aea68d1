package api

import "context"

type ctxKey string

const ctxKeyCallerEmail ctxKey = "callerEmail"

func WithCallerEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ctxKeyCallerEmail, email)
}

// CallerEmail returns the verified email bound to the request, or "" when the
// request did not pass through Authenticate.
func CallerEmail(ctx context.Context) string {
	v := ctx.Value(ctxKeyCallerEmail)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
