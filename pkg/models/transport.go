package models

// SSIMRequest carries base64 payloads for the JSON variant of the SSIM
// endpoint. The multipart variant uses file fields instead.
type SSIMRequest struct {
	OriginalImageData   string `json:"original_image_data"`
	ReproducedImageData string `json:"reproduced_image_data"`
}

// SmoothnessRequest carries the base64 payload for the JSON variant of the
// smoothness endpoint.
type SmoothnessRequest struct {
	ImageData string `json:"image_data"`
}

// ExecutionErrorRequest carries the raw toolpath arrays. Elements are kept
// untyped so the parser can reject wrong-arity or non-numeric entries itself
// instead of letting JSON binding coerce them.
type ExecutionErrorRequest struct {
	ExpectedToolpath []interface{} `json:"expected_toolpath" binding:"required"`
	ActualToolpath   []interface{} `json:"actual_toolpath" binding:"required"`
}

// SSIMResponse mirrors the documented SSIM endpoint response shape.
type SSIMResponse struct {
	Success        bool    `json:"success"`
	SSIMScore      float64 `json:"ssim_score"`
	Message        string  `json:"message"`
	Interpretation string  `json:"interpretation"`
}

// SmoothnessResponse mirrors the documented smoothness endpoint response shape.
type SmoothnessResponse struct {
	Success         bool    `json:"success"`
	SmoothnessScore float64 `json:"smoothness_score"`
	Message         string  `json:"message"`
	Interpretation  string  `json:"interpretation"`
}

// ErrorAnalysis summarizes per-point execution errors.
type ErrorAnalysis struct {
	MaxError    float64 `json:"max_error"`
	MinError    float64 `json:"min_error"`
	ErrorStd    float64 `json:"error_std"`
	TotalPoints int     `json:"total_points"`
}

// ExecutionErrorResponse mirrors the documented execution-error endpoint
// response shape.
type ExecutionErrorResponse struct {
	Success          bool          `json:"success"`
	MeanError        float64       `json:"mean_error"`
	IndividualErrors []float64     `json:"individual_errors"`
	Message          string        `json:"message"`
	Analysis         ErrorAnalysis `json:"analysis"`
}

// ErrorResponse is the envelope for all failed requests.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
