package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prevenio/prevenio-backend/internal/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError maps a typed api error to its status; anything untyped is a
// plain 500-class failure at the caller's chosen status.
func RespondError(c *gin.Context, status int, err error) {
	msg := "unknown error"
	code := ""
	if err != nil {
		msg = err.Error()
	}
	if typed, ok := apierr.From(err); ok {
		status = typed.Status
		code = typed.Code
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
