package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(w Writer, h func(w Writer, c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) { h(w, c) })

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(rr, req)
	return rr
}

func TestTextErrors(t *testing.T) {
	rr := serve(NewWriter("text"), func(w Writer, c *gin.Context) {
		w.BadRequest(c, "No file provided")
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "No file provided", rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
}

func TestJSONErrors(t *testing.T) {
	rr := serve(NewWriter("json"), func(w Writer, c *gin.Context) {
		w.StorageFailure(c, "Upload failed: bucket missing")
	})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":{"kind":"storage","message":"Upload failed: bucket missing"}}`, rr.Body.String())
}

func TestInternalDescribesPanicValues(t *testing.T) {
	rr := serve(NewWriter("text"), func(w Writer, c *gin.Context) {
		w.Internal(c, errors.New("kv unavailable"))
	})
	assert.Equal(t, "Server error: kv unavailable", rr.Body.String())

	rr = serve(NewWriter("text"), func(w Writer, c *gin.Context) {
		w.Internal(c, 42)
	})
	assert.Equal(t, "Server error: unexpected failure", rr.Body.String())
}
