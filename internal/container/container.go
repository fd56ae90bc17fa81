package container

import (
	"net/http"

	"go-gcode-eval/internal/config"
	"go-gcode-eval/internal/decoder"
	"go-gcode-eval/internal/evaluator"
	"go-gcode-eval/internal/logger"
	"go-gcode-eval/internal/observer"
	"go-gcode-eval/internal/service"
	"go-gcode-eval/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config            *config.Config
	imageDecoder      decoder.ImageDecoder
	evaluationService service.EvaluationService
	metricsObserver   *observer.MetricsObserver
	handler           http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	opts := evaluator.DefaultOptions()

	imageDecoder := decoder.NewImageDecoder(cfg.MaxPayloadSize, cfg.SVGRenderWidth, cfg.SVGRenderHeight)

	events := observer.NewEventPublisher()
	metricsObserver := observer.NewMetricsObserver()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metricsObserver)

	evaluationService := service.NewEvaluationService(
		imageDecoder,
		evaluator.NewSSIMEvaluator(opts),
		evaluator.NewSmoothnessEvaluator(opts),
		evaluator.NewExecutionErrorEvaluator(),
		events,
	)

	handler := transport.NewHandler(evaluationService, cfg)

	return &Container{
		config:            cfg,
		imageDecoder:      imageDecoder,
		evaluationService: evaluationService,
		metricsObserver:   metricsObserver,
		handler:           handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Metrics returns the collected evaluation counters
func (c *Container) Metrics() map[string]interface{} {
	return c.metricsObserver.GetMetrics()
}
