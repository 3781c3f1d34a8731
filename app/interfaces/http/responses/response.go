package responses

type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// GeneralResponse wraps a single result. Degraded marks responses assembled
// while an upstream was failing; the payload is still valid, possibly stale
// or incomplete.
type GeneralResponse[T any] struct {
	Status   string `json:"status"`
	Degraded bool   `json:"degraded,omitempty"`
	Result   T      `json:"result"`
}

type ListResponse[T any] struct {
	Status   string `json:"status"`
	Degraded bool   `json:"degraded,omitempty"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Total    int    `json:"total"`
	Results  []T    `json:"results"`
}

const (
	StatusOk       = "ok"
	StatusDegraded = "degraded"
)

// StatusFor maps a degradation flag to the response status string.
func StatusFor(degraded bool) string {
	if degraded {
		return StatusDegraded
	}
	return StatusOk
}
