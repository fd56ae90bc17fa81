package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// EvaluationEvent represents one evaluation lifecycle event
type EvaluationEvent struct {
	EventType      EventType     `json:"event_type"`
	Metric         string        `json:"metric"`
	Timestamp      time.Time     `json:"timestamp"`
	ProcessingTime time.Duration `json:"processing_time"`
	Success        bool          `json:"success"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// EventType represents the type of evaluation event
type EventType string

const (
	// EvaluationStarted when an evaluation begins
	EvaluationStarted EventType = "evaluation_started"
	// EvaluationCompleted when an evaluation finishes successfully
	EvaluationCompleted EventType = "evaluation_completed"
	// EvaluationFailed when an evaluation fails
	EvaluationFailed EventType = "evaluation_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event EvaluationEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event EvaluationEvent)
}

// LoggingObserver logs evaluation events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{logger: logger}
}

// OnEvent handles evaluation events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event EvaluationEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"metric":          event.Metric,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	switch event.EventType {
	case EvaluationStarted:
		o.logger.WithFields(fields).Debug("Evaluation started")
	case EvaluationCompleted:
		o.logger.WithFields(fields).Info("Evaluation completed")
	case EvaluationFailed:
		o.logger.WithFields(fields).Error("Evaluation failed")
	default:
		o.logger.WithFields(fields).Info("Evaluation event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects counters from evaluation events
type MetricsObserver struct {
	mu                    sync.RWMutex
	totalEvaluations      int64
	successfulEvaluations int64
	failedEvaluations     int64
	totalProcessingTime   time.Duration
	perMetric             map[string]int64
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{perMetric: make(map[string]int64)}
}

// OnEvent handles evaluation events by collecting counters
func (o *MetricsObserver) OnEvent(ctx context.Context, event EvaluationEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case EvaluationStarted:
		o.totalEvaluations++
		o.perMetric[event.Metric]++
	case EvaluationCompleted:
		o.successfulEvaluations++
		o.totalProcessingTime += event.ProcessingTime
	case EvaluationFailed:
		o.failedEvaluations++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current counters
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.successfulEvaluations > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.successfulEvaluations)
	}

	perMetric := make(map[string]int64, len(o.perMetric))
	for k, v := range o.perMetric {
		perMetric[k] = v
	}

	return map[string]interface{}{
		"total_evaluations":      o.totalEvaluations,
		"successful_evaluations": o.successfulEvaluations,
		"failed_evaluations":     o.failedEvaluations,
		"avg_processing_time":    avgProcessingTime,
		"per_metric":             perMetric,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() Subject {
	return &EventPublisher{observers: make([]Observer, 0)}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event EvaluationEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		observer.OnEvent(ctx, event)
	}
}
