package models

// ErrorResponse is the body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// IDResponse is the body returned by create, update and delete operations.
type IDResponse struct {
	ID int64 `json:"id"`
}
