package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HANSKMIEL/landscape-architecture-tool-sub005/internal/domain/recommend"
	apperrors "github.com/HANSKMIEL/landscape-architecture-tool-sub005/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// domainHTTPError translates a service error into the HTTP shape. Every
// domain tags errors with an apperrors code; the code passes through to the
// response body and only the status needs mapping here.
func domainHTTPError(err error, fallbackCode string) *HTTPError {
	code := apperrors.Code(err)
	if code == "" {
		code = fallbackCode
	}
	status := http.StatusInternalServerError
	switch code {
	case "invalid_request", recommend.CodeInvalidCriteria:
		status = http.StatusBadRequest
	case "not_found":
		status = http.StatusNotFound
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
