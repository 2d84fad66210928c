package dto

import "time"

// APIResponse is the envelope of every JSON reply
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in a successful envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"postgres"`
}
