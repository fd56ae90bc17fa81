package service

import (
	"context"
	"time"

	"go-gcode-eval/internal/decoder"
	"go-gcode-eval/internal/evaluator"
	"go-gcode-eval/internal/observer"
	"go-gcode-eval/internal/toolpath"
	"go-gcode-eval/pkg/models"
)

// EvaluationService is the engine entry point the transport layer calls.
// Every method is a single self-contained computation: inputs are normalized,
// one metric is computed, and nothing outlives the call.
type EvaluationService interface {
	EvaluateSSIM(ctx context.Context, original, reproduced decoder.Payload) (*models.SSIMResponse, error)
	EvaluateSmoothness(ctx context.Context, image decoder.Payload) (*models.SmoothnessResponse, error)
	EvaluateExecutionError(ctx context.Context, expectedRaw, actualRaw []interface{}) (*models.ExecutionErrorResponse, error)
}

type evaluationService struct {
	decoder        decoder.ImageDecoder
	ssim           evaluator.SSIMEvaluator
	smoothness     evaluator.SmoothnessEvaluator
	executionError evaluator.ExecutionErrorEvaluator
	events         observer.Subject
}

// NewEvaluationService creates the evaluation service
func NewEvaluationService(
	imageDecoder decoder.ImageDecoder,
	ssim evaluator.SSIMEvaluator,
	smoothness evaluator.SmoothnessEvaluator,
	executionError evaluator.ExecutionErrorEvaluator,
	events observer.Subject,
) EvaluationService {
	return &evaluationService{
		decoder:        imageDecoder,
		ssim:           ssim,
		smoothness:     smoothness,
		executionError: executionError,
		events:         events,
	}
}

// EvaluateSSIM decodes both images and computes their structural similarity.
func (s *evaluationService) EvaluateSSIM(ctx context.Context, original, reproduced decoder.Payload) (*models.SSIMResponse, error) {
	start := s.notifyStarted(ctx, "ssim")

	originalImg, err := s.decoder.Decode(original)
	if err != nil {
		s.notifyFailed(ctx, "ssim", start, err)
		return nil, err
	}
	reproducedImg, err := s.decoder.Decode(reproduced)
	if err != nil {
		s.notifyFailed(ctx, "ssim", start, err)
		return nil, err
	}

	result, err := s.ssim.Compare(originalImg, reproducedImg)
	if err != nil {
		s.notifyFailed(ctx, "ssim", start, err)
		return nil, err
	}

	s.notifyCompleted(ctx, "ssim", start)
	return &models.SSIMResponse{
		Success:        true,
		SSIMScore:      result.Score,
		Message:        "SSIM calculated successfully",
		Interpretation: result.Interpretation,
	}, nil
}

// EvaluateSmoothness decodes the image and scores its stroke smoothness.
func (s *evaluationService) EvaluateSmoothness(ctx context.Context, image decoder.Payload) (*models.SmoothnessResponse, error) {
	start := s.notifyStarted(ctx, "smoothness")

	img, err := s.decoder.Decode(image)
	if err != nil {
		s.notifyFailed(ctx, "smoothness", start, err)
		return nil, err
	}

	result, err := s.smoothness.Evaluate(img)
	if err != nil {
		s.notifyFailed(ctx, "smoothness", start, err)
		return nil, err
	}

	s.notifyCompleted(ctx, "smoothness", start)
	return &models.SmoothnessResponse{
		Success:         true,
		SmoothnessScore: result.Score,
		Message:         "Smoothness calculated successfully",
		Interpretation:  result.Interpretation,
	}, nil
}

// EvaluateExecutionError parses both toolpaths and computes their per-point
// distance statistics.
func (s *evaluationService) EvaluateExecutionError(ctx context.Context, expectedRaw, actualRaw []interface{}) (*models.ExecutionErrorResponse, error) {
	start := s.notifyStarted(ctx, "execution_error")

	expected, err := toolpath.Parse(expectedRaw)
	if err != nil {
		s.notifyFailed(ctx, "execution_error", start, err)
		return nil, err
	}
	actual, err := toolpath.Parse(actualRaw)
	if err != nil {
		s.notifyFailed(ctx, "execution_error", start, err)
		return nil, err
	}

	result, err := s.executionError.Compare(expected, actual)
	if err != nil {
		s.notifyFailed(ctx, "execution_error", start, err)
		return nil, err
	}

	s.notifyCompleted(ctx, "execution_error", start)
	return &models.ExecutionErrorResponse{
		Success:          true,
		MeanError:        result.Mean,
		IndividualErrors: result.Errors,
		Message:          "Execution error calculated successfully",
		Analysis: models.ErrorAnalysis{
			MaxError:    result.Max,
			MinError:    result.Min,
			ErrorStd:    result.StdDev,
			TotalPoints: result.Count,
		},
	}, nil
}

func (s *evaluationService) notifyStarted(ctx context.Context, metric string) time.Time {
	start := time.Now()
	s.events.NotifyObservers(ctx, observer.EvaluationEvent{
		EventType: observer.EvaluationStarted,
		Metric:    metric,
		Timestamp: start,
	})
	return start
}

func (s *evaluationService) notifyCompleted(ctx context.Context, metric string, start time.Time) {
	s.events.NotifyObservers(ctx, observer.EvaluationEvent{
		EventType:      observer.EvaluationCompleted,
		Metric:         metric,
		Timestamp:      time.Now(),
		ProcessingTime: time.Since(start),
		Success:        true,
	})
}

func (s *evaluationService) notifyFailed(ctx context.Context, metric string, start time.Time, err error) {
	s.events.NotifyObservers(ctx, observer.EvaluationEvent{
		EventType:      observer.EvaluationFailed,
		Metric:         metric,
		Timestamp:      time.Now(),
		ProcessingTime: time.Since(start),
		ErrorMessage:   err.Error(),
	})
}
