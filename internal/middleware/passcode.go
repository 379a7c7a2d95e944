package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// PasscodeHeader carries a bill's edit passcode on RPC requests.
const PasscodeHeader = "X-Bill-Passcode"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// PasscodeKey is the context key for the passcode presented by the caller.
const PasscodeKey contextKey = "bill_passcode"

// GetPasscode extracts the presented passcode from the context.
// Returns empty string if none was sent.
func GetPasscode(ctx context.Context) string {
	passcode, _ := ctx.Value(PasscodeKey).(string)
	return passcode
}

// WithPasscode returns a copy of ctx carrying passcode.
func WithPasscode(ctx context.Context, passcode string) context.Context {
	return context.WithValue(ctx, PasscodeKey, passcode)
}

// PasscodeInterceptor copies the X-Bill-Passcode header into the request
// context. It never rejects a call: whether a passcode is needed depends on
// the bill, which only the service knows.
func PasscodeInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if passcode := strings.TrimSpace(req.Header().Get(PasscodeHeader)); passcode != "" {
				ctx = WithPasscode(ctx, passcode)
			}
			return next(ctx, req)
		}
	}
}

// PasscodeClientInterceptor sets the X-Bill-Passcode header on every
// outgoing request.
func PasscodeClientInterceptor(passcode string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient && passcode != "" {
				req.Header().Set(PasscodeHeader, passcode)
			}
			return next(ctx, req)
		}
	}
}
