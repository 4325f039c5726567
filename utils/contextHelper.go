package utils

import (
	"context"

	"bitbucket.org/mmdatafocus/audit_backend/appctx"
)

func GetPropertyIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, appctx.ContextKeyPropertyId)
}

func GetPeriodIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, appctx.ContextKeyPeriodId)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, appctx.ContextKeyCorrelationId)
}

func WithAuditScope(ctx context.Context, propertyId, periodId, correlationId string) context.Context {
	ctx = appctx.Set(ctx, appctx.ContextKeyPropertyId, propertyId)
	ctx = appctx.Set(ctx, appctx.ContextKeyPeriodId, periodId)
	ctx = appctx.Set(ctx, appctx.ContextKeyCorrelationId, correlationId)
	return ctx
}
