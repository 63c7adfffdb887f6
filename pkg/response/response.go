package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationErrorResponse lists every problem found in a submitted form
// definition.
type ValidationErrorResponse struct {
	Error  string      `json:"error"`
	Issues interface{} `json:"issues"`
}
