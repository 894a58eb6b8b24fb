package http_common

// ErrorResponse is the uniform error body of every endpoint.
type ErrorResponse struct {
	Message string `json:"message"`
}

// PlayerHeader carries the acting participant's id on authenticated calls.
const PlayerHeader = "X-Player-Id"
