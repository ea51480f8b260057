// Файл: pkg/utils/context_utils.go

package utils

import (
	"context"

	"maintenance-system/internal/authz"
	"maintenance-system/pkg/contextkeys"
	apperrors "maintenance-system/pkg/errors"
)

func WithCaller(ctx context.Context, caller authz.Caller) context.Context {
	return context.WithValue(ctx, contextkeys.CallerKey, caller)
}

func GetCallerFromContext(ctx context.Context) (authz.Caller, error) {
	caller, ok := ctx.Value(contextkeys.CallerKey).(authz.Caller)
	if !ok || caller.UserID == "" {
		return authz.Caller{}, apperrors.ErrUnauthorized
	}
	return caller, nil
}
