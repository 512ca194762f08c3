package api

import (
	"github.com/JaimeStill/image-forge/internal/batch"
	"github.com/JaimeStill/image-forge/internal/config"
	"github.com/JaimeStill/image-forge/internal/conversion"
	"github.com/JaimeStill/image-forge/internal/history"
	"github.com/JaimeStill/image-forge/internal/infrastructure"
)

// Domain holds the systems behind the API and the CLI. History is nil when
// no database is configured.
type Domain struct {
	Conversion conversion.System
	History    history.System
}

// NewDomain wires the conversion system to the codec, storage and report
// sinks held by infra. Reports always go to the log; they are also recorded
// in history when a database is available.
func NewDomain(cfg *config.Config, infra *infrastructure.Infrastructure) *Domain {
	sinks := []batch.Sink{batch.LogSink(infra.Logger)}

	var hist history.System
	if infra.HistoryEnabled() {
		hist = history.New(infra.Database.Connection(), infra.Logger, cfg.Pagination)
		sinks = append(sinks, hist)
	}

	runner := batch.NewRunner(cfg.Conversion.MaxConcurrency, batch.Multi(sinks...), infra.Logger)

	return &Domain{
		Conversion: conversion.New(&cfg.Conversion, infra.Codec, infra.Storage, runner, infra.Logger),
		History:    hist,
	}
}
