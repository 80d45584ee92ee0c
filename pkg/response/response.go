package response

// Response is the JSON envelope shared by every service
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorData  `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorData describes a failed request
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Meta carries list metadata
type Meta struct {
	Total int `json:"total"`
}

// Success wraps data in a successful envelope
func Success(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// List wraps a slice together with its length
func List(data interface{}, total int) Response {
	return Response{Success: true, Data: data, Meta: Meta{Total: total}}
}

// Error builds a failed envelope
func Error(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorData{
			Code:    code,
			Message: message,
		},
	}
}

// BadRequest builds a 400 envelope
func BadRequest(message string) Response {
	return Error("INVALID_REQUEST", message)
}

// NotFound builds a 404 envelope
func NotFound(message string) Response {
	return Error("NOT_FOUND", message)
}

// Unauthorized builds a 401 envelope
func Unauthorized(message string) Response {
	return Error("UNAUTHORIZED", message)
}

// Forbidden builds a 403 envelope
func Forbidden(message string) Response {
	return Error("FORBIDDEN", message)
}

// InternalError builds a 500 envelope. Internals go to the logs, not to the client.
func InternalError() Response {
	return Error("INTERNAL_ERROR", "internal server error")
}
