package common

// Response is the JSON envelope returned by every endpoint.
type Response struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Errors  []string    `json:"errors"`
}

func NewSuccessResponse(code int, message string, data interface{}) Response {
	return Response{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
		Errors:  nil,
	}
}

func NewErrorResponse(code int, message string, errors ...string) Response {
	if len(errors) == 0 {
		errors = []string{message}
	}
	return Response{
		Status:  "error",
		Code:    code,
		Message: message,
		Data:    nil,
		Errors:  errors,
	}
}
