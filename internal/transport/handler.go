package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go-gcode-eval/internal/config"
	"go-gcode-eval/internal/decoder"
	apperrors "go-gcode-eval/internal/errors"
	"go-gcode-eval/internal/logger"
	"go-gcode-eval/internal/service"
	"go-gcode-eval/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const serviceVersion = "1.0.0"

// NewHandler builds the HTTP handler with all evaluation routes
func NewHandler(svc service.EvaluationService, cfg *config.Config) http.Handler {
	r := gin.Default()

	// Two image payloads plus multipart overhead bound the request body
	r.Use(requestSizeLimiter(2*cfg.MaxPayloadSize + 1024*1024))

	api := r.Group("/api")
	api.GET("/health", healthCheck)
	api.POST("/evaluate/ssim", evaluateSSIM(svc, cfg))
	api.POST("/evaluate/smoothness", evaluateSmoothness(svc, cfg))
	api.POST("/evaluate/execution-error", evaluateExecutionError(svc, cfg))

	return r
}

func evaluateSSIM(svc service.EvaluationService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logRequest(c, "ssim")

		original, reproduced, err := extractImagePair(c, cfg.MaxPayloadSize)
		if err != nil {
			respondError(c, "Invalid image data", err)
			return
		}

		result, err := svc.EvaluateSSIM(ctx, original, reproduced)
		if err != nil {
			respondError(c, "Invalid image data", err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func evaluateSmoothness(svc service.EvaluationService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logRequest(c, "smoothness")

		payload, err := extractSingleImage(c, cfg.MaxPayloadSize)
		if err != nil {
			respondError(c, "Invalid image data", err)
			return
		}

		result, err := svc.EvaluateSmoothness(ctx, payload)
		if err != nil {
			respondError(c, "Invalid image data", err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func evaluateExecutionError(svc service.EvaluationService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logRequest(c, "execution_error")

		var req models.ExecutionErrorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, "Validation error",
				bindError("both expected_toolpath and actual_toolpath are required", err))
			return
		}

		result, err := svc.EvaluateExecutionError(ctx, req.ExpectedToolpath, req.ActualToolpath)
		if err != nil {
			respondError(c, "Invalid toolpath data", err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "GCode Evaluation API",
		"version":   serviceVersion,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"endpoints": gin.H{
			"ssim":            "/api/evaluate/ssim",
			"smoothness":      "/api/evaluate/smoothness",
			"execution_error": "/api/evaluate/execution-error",
		},
	})
}

// extractImagePair reads both SSIM inputs, from multipart file fields or from
// base64 JSON fields, and tags them with the matching payload encoding.
func extractImagePair(c *gin.Context, maxSize int64) (decoder.Payload, decoder.Payload, error) {
	var zero decoder.Payload

	if isMultipart(c) {
		original, err := readFormFile(c, "original_image", maxSize)
		if err != nil {
			return zero, zero, err
		}
		reproduced, err := readFormFile(c, "reproduced_image", maxSize)
		if err != nil {
			return zero, zero, err
		}
		return original, reproduced, nil
	}

	var req models.SSIMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return zero, zero, bindError("invalid request body", err)
	}
	if req.OriginalImageData == "" || req.ReproducedImageData == "" {
		return zero, zero, apperrors.NewValidationError(
			"both original_image_data and reproduced_image_data must be provided", nil)
	}

	return decoder.Payload{Encoding: decoder.EncodingBase64, Data: []byte(req.OriginalImageData)},
		decoder.Payload{Encoding: decoder.EncodingBase64, Data: []byte(req.ReproducedImageData)},
		nil
}

// extractSingleImage reads the smoothness input from a multipart file field
// or a base64 JSON field.
func extractSingleImage(c *gin.Context, maxSize int64) (decoder.Payload, error) {
	var zero decoder.Payload

	if isMultipart(c) {
		return readFormFile(c, "image", maxSize)
	}

	var req models.SmoothnessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return zero, bindError("invalid request body", err)
	}
	if req.ImageData == "" {
		return zero, apperrors.NewValidationError("either 'image' or 'image_data' must be provided", nil)
	}

	return decoder.Payload{Encoding: decoder.EncodingBase64, Data: []byte(req.ImageData)}, nil
}

// bindError classifies a request-read failure. A body rejected by the
// MaxBytesReader cap must surface as 413, not as a malformed request.
func bindError(message string, err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return apperrors.NewPayloadTooLargeError(
			fmt.Sprintf("request body exceeds limit of %d bytes", maxBytesErr.Limit), err)
	}
	return apperrors.NewValidationError(message, err)
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

func readFormFile(c *gin.Context, field string, maxSize int64) (decoder.Payload, error) {
	var zero decoder.Payload

	header, err := c.FormFile(field)
	if err != nil {
		return zero, bindError(fmt.Sprintf("missing file field %q", field), err)
	}
	if header.Size > maxSize {
		return zero, apperrors.NewPayloadTooLargeError(
			fmt.Sprintf("file %q of %d bytes exceeds limit of %d bytes", field, header.Size, maxSize), nil)
	}

	data, err := readAll(header)
	if err != nil {
		return zero, apperrors.NewValidationError(fmt.Sprintf("failed to read file field %q", field), err)
	}

	return decoder.Payload{Encoding: decoder.EncodingRaw, Data: data}, nil
}

func readAll(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func logRequest(c *gin.Context, metric string) {
	logger.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"metric": metric,
		"ip":     c.ClientIP(),
	}).Info("Processing evaluation request")
}

func respondError(c *gin.Context, label string, err error) {
	code := determineStatusCode(err)

	// Request-shape failures keep their own label regardless of which
	// endpoint surfaced them.
	if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		label = "Validation error"
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	if code == http.StatusInternalServerError {
		// Internal failures indicate a gap in edge-case handling; hide the
		// details from the caller.
		c.AbortWithStatusJSON(code, models.ErrorResponse{
			Success: false,
			Error:   "Internal server error",
			Details: "An unexpected error occurred during evaluation",
		})
		return
	}

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Success: false,
		Error:   label,
		Details: err.Error(),
	})
}

func determineStatusCode(err error) int {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
