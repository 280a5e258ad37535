// Package responses defines API response types used by demoapi HTTP handlers.
package responses

import "time"

// ServiceInfoResponse is the root endpoint document.
type ServiceInfoResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Metrics string `json:"metrics"`
	Health  string `json:"health"`
}

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime_seconds"`
}

// UserRegistrationRequest is the registration endpoint body.
type UserRegistrationRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// UserRegistrationResponse confirms a simulated registration.
type UserRegistrationResponse struct {
	Message  string `json:"message"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// OrderRequest is the order processing endpoint body.
type OrderRequest struct {
	UserID      int              `json:"user_id"`
	Items       []map[string]any `json:"items"`
	TotalAmount float64          `json:"total_amount"`
}

// OrderResponse confirms a simulated order.
type OrderResponse struct {
	Message        string  `json:"message"`
	OrderID        int     `json:"order_id"`
	TotalAmount    float64 `json:"total_amount"`
	ProcessingTime float64 `json:"processing_time"`
}

// LoadSimulationResponse reports how many operations were simulated.
type LoadSimulationResponse struct {
	Message    string `json:"message"`
	Operations int    `json:"operations"`
}

// AnalyticsResponse summarizes live registry state.
type AnalyticsResponse struct {
	ActiveRequests  float64   `json:"active_requests"`
	TotalRequests   float64   `json:"total_requests"`
	ErrorCount      float64   `json:"error_count"`
	AvgResponseTime float64   `json:"avg_response_time"`
	Timestamp       time.Time `json:"timestamp"`
}
