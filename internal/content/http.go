package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sarvaliya/folio/internal/response"
)

// RegisterRoutes exposes the portfolio document. A nil doc serves 404.
func RegisterRoutes(group *gin.RouterGroup, doc *Document, errs response.Writer) {
	group.GET("/portfolio", func(c *gin.Context) {
		if doc == nil {
			errs.Error(c, http.StatusNotFound, response.KindNotFound, "Portfolio content not configured")
			return
		}
		c.JSON(http.StatusOK, doc)
	})
}
