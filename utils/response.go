package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// JSONResponse defines the uniform structure for API responses.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// FieldError describes one invalid request field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, 200, 0, "success", data)
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	Respond(ctx, status, code, message, nil)
}

// ValidationError returns a 400 response carrying structured field errors.
// Binding failures from gin's validator are unpacked per field; anything else
// is reported as a single malformed-payload error.
func ValidationError(ctx *gin.Context, code int, err error) {
	var verrs validator.ValidationErrors
	fields := []FieldError{}
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Reason: fe.Tag()})
		}
	} else {
		fields = append(fields, FieldError{Field: "body", Reason: "malformed"})
	}
	ctx.JSON(http.StatusBadRequest, JSONResponse{
		Code:    code,
		Message: "invalid request payload",
		Errors:  fields,
	})
}
