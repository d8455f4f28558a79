package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database query tracing.
type DBTracingConfig struct {
	Enabled    bool
	DBName     string
	LogFullSQL bool // include query parameters in spans; keep off outside development
}

// RegisterGormTracing attaches the otelgorm plugin to a GORM instance so
// every query produces a child span of the request span. Query parameters
// are excluded from spans unless LogFullSQL is set.
func RegisterGormTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(cfg.DBName),
	}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	logger.Info("database tracing enabled",
		zap.String("db_name", cfg.DBName),
		zap.Bool("log_full_sql", cfg.LogFullSQL),
	)
	return nil
}
