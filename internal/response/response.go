// Package response writes error bodies in the format selected at startup.
//
// Success bodies are always JSON. Errors default to plain text for
// compatibility with existing clients; the json format wraps them as
// {"error":{"kind":...,"message":...}}.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies an error for structured bodies.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindStorage      Kind = "storage"
	KindUnauthorized Kind = "unauthorized"
	KindNotFound     Kind = "not_found"
	KindInternal     Kind = "internal"
)

const FormatJSON = "json"

// Writer renders error responses.
type Writer struct {
	json bool
}

// NewWriter returns a Writer for format ("text" or "json").
func NewWriter(format string) Writer {
	return Writer{json: format == FormatJSON}
}

// Error writes message with status and aborts the handler chain.
func (w Writer) Error(c *gin.Context, status int, kind Kind, message string) {
	if w.json {
		c.AbortWithStatusJSON(status, gin.H{
			"error": gin.H{"kind": kind, "message": message},
		})
		return
	}
	c.Abort()
	c.String(status, message)
}

// BadRequest writes a 400 validation error.
func (w Writer) BadRequest(c *gin.Context, message string) {
	w.Error(c, http.StatusBadRequest, KindValidation, message)
}

// StorageFailure writes a 500 storage error.
func (w Writer) StorageFailure(c *gin.Context, message string) {
	w.Error(c, http.StatusInternalServerError, KindStorage, message)
}

// Internal writes a 500 with the generic server error prefix.
func (w Writer) Internal(c *gin.Context, err any) {
	w.Error(c, http.StatusInternalServerError, KindInternal, "Server error: "+describe(err))
}

func describe(err any) string {
	switch v := err.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return "unexpected failure"
	}
}
