package handler

// Response is the envelope every endpoint answers with. Fields carries the
// offending field names when a submission is blocked on validation.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Fields  []string    `json:"fields,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// NewValidationErrorResponse reports a blocked submission together with the
// required fields it is missing.
func NewValidationErrorResponse(message string, fields []string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
		Fields:  fields,
	}
}
