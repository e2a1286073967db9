package telemetry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	dbSystemKey    = "db.system"
	dbTableKey     = "db.table"
	dbOperationKey = "db.operation"
	dbStatementKey = "db.statement"

	spanKey      = "otel:span"
	startTimeKey = "otel:startTime"

	maxStatementLength = 500
)

// GORMTracingPlugin returns a GORM plugin that traces database operations
// with the global tracer provider
func GORMTracingPlugin() gorm.Plugin {
	return newTracingPlugin(otel.Tracer("gorm"))
}

func newTracingPlugin(tracer trace.Tracer) *tracingPlugin {
	return &tracingPlugin{tracer: tracer}
}

type tracingPlugin struct {
	tracer   trace.Tracer
	dbSystem string
}

func (p *tracingPlugin) Name() string {
	return "telemetry:tracing"
}

func (p *tracingPlugin) Initialize(db *gorm.DB) error {
	p.dbSystem = dbSystem(db.Dialector.Name())

	// The service reads books and only writes when seeding
	if err := db.Callback().Query().Before("gorm:query").Register("telemetry:before_query", p.before("SELECT")); err != nil {
		return fmt.Errorf("failed to register before_query callback: %w", err)
	}
	if err := db.Callback().Row().Before("gorm:row").Register("telemetry:before_row", p.before("SELECT")); err != nil {
		return fmt.Errorf("failed to register before_row callback: %w", err)
	}
	if err := db.Callback().Create().Before("gorm:create").Register("telemetry:before_create", p.before("INSERT")); err != nil {
		return fmt.Errorf("failed to register before_create callback: %w", err)
	}

	if err := db.Callback().Query().After("gorm:query").Register("telemetry:after_query", p.after); err != nil {
		return fmt.Errorf("failed to register after_query callback: %w", err)
	}
	if err := db.Callback().Row().After("gorm:row").Register("telemetry:after_row", p.after); err != nil {
		return fmt.Errorf("failed to register after_row callback: %w", err)
	}
	if err := db.Callback().Create().After("gorm:create").Register("telemetry:after_create", p.after); err != nil {
		return fmt.Errorf("failed to register after_create callback: %w", err)
	}

	return nil
}

func dbSystem(dialect string) string {
	switch dialect {
	case "postgres":
		return "postgresql"
	case "":
		return "unknown"
	default:
		return dialect
	}
}

func (p *tracingPlugin) before(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}

		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}

		_, span := p.tracer.Start(ctx, "db."+strings.ToLower(operation),
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String(dbSystemKey, p.dbSystem),
				attribute.String(dbTableKey, table),
				attribute.String(dbOperationKey, operation),
			),
		)

		db.InstanceSet(spanKey, span)
		db.InstanceSet(startTimeKey, time.Now())
	}
}

func (p *tracingPlugin) after(db *gorm.DB) {
	spanRaw, exists := db.InstanceGet(spanKey)
	if !exists {
		return
	}
	span, ok := spanRaw.(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	if startTimeRaw, exists := db.InstanceGet(startTimeKey); exists {
		if startTime, ok := startTimeRaw.(time.Time); ok {
			span.SetAttributes(attribute.Int64("db.duration_ms", time.Since(startTime).Milliseconds()))
		}
	}

	if sql := db.Statement.SQL.String(); sql != "" {
		if len(sql) > maxStatementLength {
			sql = sql[:maxStatementLength] + "... (truncated)"
		}
		span.SetAttributes(attribute.String(dbStatementKey, sql))
	}

	if db.RowsAffected > 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.RowsAffected))
	}

	// A missing row is an answer, not a failure
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}
}
