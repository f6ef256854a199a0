// Package datasource provides the live and fixture implementations of the
// dashboard DataSource.
package datasource

import (
	"fmt"

	"github.com/hesab/backend/internal/domain/datasource"
	"github.com/hesab/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New builds the DataSource selected by cfg.Mode. There is no fallback
// between modes: an unknown mode is an error.
func New(cfg config.DataSourceConfig, logger *zap.Logger) (datasource.DataSource, error) {
	switch datasource.Mode(cfg.Mode) {
	case datasource.ModeLive:
		return NewHTTPSource(cfg.BaseURL, cfg.Timeout,
			WithCredentials(cfg.Username, cfg.Password),
			WithLogger(logger.Named("datasource")),
		), nil
	case datasource.ModeFixture:
		return NewFixtureSource()
	default:
		return nil, fmt.Errorf("unknown datasource mode %q", cfg.Mode)
	}
}
