// internal/utils/response.go
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Envelope is the wire format shared by most endpoints: the HTTP status is
// always 200 and the outcome is carried in Code, with Data holding either a
// JSON-serialized payload or a plain error message.
type Envelope struct {
	Code int    `json:"code"`
	Data string `json:"data"`
}

func EnvelopeData(c *gin.Context, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal response payload")
		EnvelopeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, Envelope{Code: http.StatusOK, Data: string(data)})
}

func EnvelopeError(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Envelope{Code: code, Data: message})
}

func EnvelopeNotFound(c *gin.Context, message string) {
	EnvelopeError(c, http.StatusNotFound, message)
}

// EnvelopeBadToken reports a malformed Authorization header.
func EnvelopeBadToken(c *gin.Context) {
	EnvelopeError(c, http.StatusForbidden, "Bad token format")
}

// EnvelopeStorageError sanitizes a storage failure: the driver error goes to
// the logs, the client only sees a generic message.
func EnvelopeStorageError(c *gin.Context, err error) {
	logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Storage error")
	EnvelopeError(c, http.StatusInternalServerError, "database error")
}
