package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sarvaliya/folio/internal/asset"
	"github.com/sarvaliya/folio/internal/auth"
	"github.com/sarvaliya/folio/internal/bucket"
	"github.com/sarvaliya/folio/internal/config"
	"github.com/sarvaliya/folio/internal/kv"
	"github.com/sarvaliya/folio/internal/presigned"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPrefix  = "/make-server-654b3b0b"
	testAnonKey = "public-anon-key"
)

type testEnv struct {
	handler http.Handler
	router  *gin.Engine
	admin   *fakeAdmin
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Server: config.ServerConfig{
			RoutePrefix:        testPrefix,
			MaxMultipartMemory: 16 << 20,
			ErrorFormat:        "text",
		},
		Auth:    config.AuthConfig{AnonKey: testAnonKey},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}, MaxAge: 600},
		Metrics: config.MetricsConfig{PrometheusPath: "/metrics"},
	}

	resumes := bucket.ResumePolicy("folio-resumes")
	images := bucket.ImagePolicy("folio-images")
	admin := &fakeAdmin{}
	objects := newMemoryObjects()
	pointers := kv.NewMemoryStore()

	deps := Dependencies{
		Config:        cfg,
		KV:            pointers,
		AuthService:   auth.NewService(cfg.Auth),
		BucketService: bucket.NewService(admin, nil, resumes, images),
		AssetService:  asset.NewService(objects, pointers, resumes, images, time.Hour, nil),
	}

	router := NewRouter(deps)
	router.GET(testPrefix+"/panic", func(c *gin.Context) { panic("kaboom") })
	return &testEnv{handler: NewHandler(deps), router: router, admin: admin}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	if req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+testAnonKey)
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func resumeUpload(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, testPrefix+"/upload-resume", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestPrefixedRoutesRequireAuthorization(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, testPrefix+"/health", nil)
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = env.do(t, httptest.NewRequest(http.MethodGet, testPrefix+"/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestResumeFlowThroughHandler(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, resumeUpload(t, "cv.pdf", []byte("%PDF-1.7")))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Correlation-ID"))

	rr = env.do(t, httptest.NewRequest(http.MethodGet, testPrefix+"/resume-info", nil))
	var info map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.Equal(t, true, info["hasResume"])
	assert.Equal(t, "cv.pdf", info["fileName"])

	rr = env.do(t, httptest.NewRequest(http.MethodDelete, testPrefix+"/remove-resume", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, httptest.NewRequest(http.MethodGet, testPrefix+"/resume-info", nil))
	assert.JSONEq(t, `{"hasResume":false}`, rr.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, testPrefix+"/upload-image", nil)
	req.Header.Set("Origin", "https://portfolio.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	assert.Less(t, rr.Code, 300)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "600", rr.Header().Get("Access-Control-Max-Age"))
}

func TestPanicBecomesServerError(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, testPrefix+"/panic", nil)
	req.Header.Set("Authorization", "Bearer "+testAnonKey)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Server error: kaboom", rr.Body.String())
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	env.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	env.admin.listErr = errors.New("object store down")
	rr = httptest.NewRecorder()
	env.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "object_store")
}

func TestSupplementaryRoutes(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, httptest.NewRequest(http.MethodGet, testPrefix+"/upload-policy", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var policies map[string]struct {
		MaxSizeBytes int64 `json:"maxSizeBytes"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &policies))
	assert.Equal(t, bucket.ResumeMaxBytes, policies["resume"].MaxSizeBytes)
	assert.Equal(t, bucket.ImageMaxBytes, policies["image"].MaxSizeBytes)

	rr = env.do(t, httptest.NewRequest(http.MethodGet, testPrefix+"/portfolio", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// --- fakes ---

type fakeAdmin struct {
	listErr error
}

func (f *fakeAdmin) ListBuckets(ctx context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return []string{"folio-resumes", "folio-images"}, nil
}

func (f *fakeAdmin) MakeBucket(ctx context.Context, policy bucket.Policy) error {
	return nil
}

type memoryObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	signs   int
}

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{objects: make(map[string][]byte)}
}

func (m *memoryObjects) Put(ctx context.Context, bucketName, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucketName+"/"+key] = data
	return nil
}

func (m *memoryObjects) Sign(ctx context.Context, bucketName, key string, ttl time.Duration) (presigned.SignedURL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[bucketName+"/"+key]; !ok {
		return presigned.SignedURL{}, asset.ErrObjectNotFound
	}
	m.signs++
	return presigned.SignedURL{
		URL:       fmt.Sprintf("https://objects.test/%s/%s?X-Amz-Expires=%d", bucketName, key, int(ttl.Seconds())),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

func (m *memoryObjects) Delete(ctx context.Context, bucketName, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, bucketName+"/"+key)
	return nil
}
