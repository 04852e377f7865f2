package session

import "time"

// Config provides environment-based configuration for the session registry.
type Config struct {
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
}

// NewRegistryFromConfig creates a Registry from configuration.
// Additional options override config values.
func NewRegistryFromConfig(cfg Config, store Store, verifier CredentialVerifier, opts ...Option) *Registry {
	configOpts := make([]Option, 0, len(opts)+1)
	if cfg.IdleTimeout > 0 {
		configOpts = append(configOpts, WithIdleTimeout(cfg.IdleTimeout))
	}
	configOpts = append(configOpts, opts...)

	return NewRegistry(store, verifier, configOpts...)
}
