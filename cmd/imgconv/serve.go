package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JaimeStill/image-forge/internal/api"
	"github.com/JaimeStill/image-forge/internal/config"
	"github.com/JaimeStill/image-forge/internal/infrastructure"
	"github.com/JaimeStill/image-forge/internal/server"
)

// Server coordinates the lifecycle of all subsystems behind `imgconv serve`.
type Server struct {
	infra *infrastructure.Infrastructure
	http  server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	handler := api.NewHandler(cfg, infra)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"history", infra.HistoryEnabled(),
	)

	return &Server{
		infra: infra,
		http:  server.New(&cfg.Server, handler, infra.Logger),
	}, nil
}

// Start begins all subsystems and returns when they are ready.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return fmt.Errorf("server start failed: %w", err)
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready", "addr", s.http.Addr())
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}

func runServe(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "", "Configuration file (default config.toml)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	srv, err := NewServer(cfg)
	if err != nil {
		return fmt.Errorf("service init failed: %w", err)
	}

	if err := srv.Start(); err != nil {
		return fmt.Errorf("service start failed: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	if err := srv.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	fmt.Fprintln(stdout, "service stopped gracefully")
	return nil
}
