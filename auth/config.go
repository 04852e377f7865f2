package auth

import "strings"

// Config provides environment-based configuration for the auth service.
type Config struct {
	// AdminUsers is a comma-separated list of usernames granted the admin role.
	AdminUsers string `env:"ADMIN_USERS" envDefault:""`
	BcryptCost int    `env:"BCRYPT_COST" envDefault:"10"`
}

// NewFromConfig creates a Service from configuration.
func NewFromConfig(cfg Config, store UserStore, opts ...Option) *Service {
	configOpts := make([]Option, 0, len(opts)+2)

	if cfg.AdminUsers != "" {
		configOpts = append(configOpts, WithAdmins(strings.Split(cfg.AdminUsers, ",")))
	}
	if cfg.BcryptCost > 0 {
		configOpts = append(configOpts, WithBcryptCost(cfg.BcryptCost))
	}

	configOpts = append(configOpts, opts...)

	return New(store, configOpts...)
}
