package common

// HttpResponse is the JSON envelope of every API response.
type HttpResponse[T any] struct {
	Error  *string `json:"error"`
	Code   string  `json:"code,omitempty"`
	Result *T      `json:"result,omitempty"`
}
