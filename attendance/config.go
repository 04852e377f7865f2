package attendance

import (
	"fmt"
	"time"
)

// Config provides environment-based configuration for the attendance service.
type Config struct {
	Timezone    string `env:"TIMEZONE" envDefault:"Asia/Karachi"`
	StrictOrder bool   `env:"ATTENDANCE_STRICT_ORDER" envDefault:"false"`
}

// NewServiceFromConfig creates a Service from configuration.
func NewServiceFromConfig(cfg Config, repo Repository, opts ...Option) (*Service, error) {
	configOpts := make([]Option, 0, len(opts)+2)

	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
		}
		configOpts = append(configOpts, WithLocation(loc))
	}
	configOpts = append(configOpts, WithStrictOrder(cfg.StrictOrder))
	configOpts = append(configOpts, opts...)

	return NewService(repo, configOpts...), nil
}
