package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Success bool   `json:"success"`
	Code    string `json:"error_code"`
	Error   string `json:"error"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Success: false,
		Code:    code,
		Error:   message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// WriteBusiness mapeia a taxonomia para o status HTTP correspondente.
// Erros fora da taxonomia viram 500 genérico, sem vazar detalhe.
func WriteBusiness(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	msg := be.Message
	if msg == "" {
		msg = be.Code
	}

	switch be.Kind {
	case KindInvalidInput:
		BadRequest(c, be.Code, msg)
	case KindNotFound:
		NotFound(c, be.Code, msg)
	case KindConflict:
		Conflict(c, be.Code, msg)
	case KindUnauthorized:
		Unauthorized(c, be.Code, msg)
	default:
		Internal(c, be.Code, msg)
	}
}
