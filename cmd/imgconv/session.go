package main

import (
	"fmt"

	"github.com/JaimeStill/image-forge/internal/api"
	"github.com/JaimeStill/image-forge/internal/config"
	"github.com/JaimeStill/image-forge/internal/infrastructure"
)

// session holds the systems a single CLI invocation runs against.
type session struct {
	cfg    *config.Config
	infra  *infrastructure.Infrastructure
	domain *api.Domain
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("config finalize failed: %w", err)
	}
	return cfg, nil
}

func openSession(configPath string) (*session, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	if err := infra.Start(); err != nil {
		return nil, err
	}
	infra.Lifecycle.WaitForStartup()

	return &session{
		cfg:    cfg,
		infra:  infra,
		domain: api.NewDomain(cfg, infra),
	}, nil
}

func (s *session) close() error {
	return s.infra.Lifecycle.Shutdown(s.cfg.ShutdownTimeoutDuration())
}
