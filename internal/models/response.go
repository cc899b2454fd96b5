package models

// Envelope codes.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the fixed JSON envelope every HTTP endpoint returns.
type APIResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK builds a success envelope.
func OK(message string, data any) APIResponse {
	return APIResponse{Code: StatusSuccess, Message: message, Data: data}
}

// Err builds an error envelope with an empty data field.
func Err(message string) APIResponse {
	return APIResponse{Code: StatusError, Message: message, Data: []any{}}
}
