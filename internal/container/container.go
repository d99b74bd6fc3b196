// Package container provides dependency injection for the qfx-rebank application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/qfx-rebank/internal/config"
	"fjacquet/qfx-rebank/internal/converter"
	"fjacquet/qfx-rebank/internal/logging"
	"fjacquet/qfx-rebank/internal/report"
	"fjacquet/qfx-rebank/internal/verifier"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation; fields are private and only reachable
// through getters.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	converter *converter.Converter
	reporter  *report.ReportGenerator
}

// NewContainer creates and wires all application dependencies, building the
// logger from the configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	conv := converter.New(converter.Options{
		TargetFID:     cfg.Target.FID,
		TargetBID:     cfg.Target.BID,
		InvertAmounts: cfg.Amounts.Invert,
	}, logger)

	logger.Debug("Container initialized",
		logging.F(logging.FieldTarget, cfg.Target.FID),
		logging.F(logging.FieldInvert, cfg.Amounts.Invert))

	return &Container{
		logger:    logger,
		config:    cfg,
		converter: conv,
		reporter:  report.NewReportGenerator(logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetConverter returns the document converter.
func (c *Container) GetConverter() *converter.Converter {
	return c.converter
}

// GetReportGenerator returns the report renderer.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reporter
}

// VerifierOptions describes the conversion the converter performs, for
// checking its output.
func (c *Container) VerifierOptions() verifier.Options {
	opts := c.converter.Options()
	return verifier.Options{
		TargetFID:     opts.TargetFID,
		TargetBID:     opts.TargetBID,
		InvertAmounts: opts.InvertAmounts,
	}
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
