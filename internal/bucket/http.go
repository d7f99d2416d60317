package bucket

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes exposes the upload policies so clients can pre-validate files.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.GET("/upload-policy", handler.uploadPolicy)
}

type httpHandler struct {
	service *Service
}

func (h *httpHandler) uploadPolicy(c *gin.Context) {
	out := make(gin.H, len(h.service.policies))
	for _, p := range h.service.Policies() {
		out[string(p.Kind)] = gin.H{
			"allowedMimeTypes": p.AllowedMIMETypes,
			"maxSizeBytes":     p.MaxSizeBytes,
		}
	}
	c.JSON(http.StatusOK, out)
}
