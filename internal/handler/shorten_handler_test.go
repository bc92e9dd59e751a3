package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"redirector/internal/config"
	"redirector/internal/domain"
	"redirector/internal/handler"
	"redirector/internal/metrics"
	"redirector/internal/service"
	"redirector/internal/shortener"
	"redirector/internal/store"
	"redirector/pkg/logger"
)

type fixedGenerator string

func (g fixedGenerator) Generate() string { return string(g) }

type ShortenerTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	store   store.Store
	cfg     *config.Config
	metrics *metrics.RequestMetrics
	router  *gin.Engine
}

func TestShortenerTestSuite(t *testing.T) {
	suite.Run(t, new(ShortenerTestSuite))
}

func (s *ShortenerTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	s.store = newTestStore(s.T(), s.mr)
	s.cfg = &config.Config{
		Environment:            "test",
		RedirectBaseURL:        "http://localhost:3000/",
		ShortCodeLength:        5,
		CodeAllocationAttempts: 10,
	}

	gen, err := shortener.NewCodeGenerator(s.cfg.ShortCodeLength)
	s.Require().NoError(err)
	s.build(gen)
}

func (s *ShortenerTestSuite) build(gen service.CodeGenerator) {
	log := logger.NewNop()
	reg := metrics.NewRegistry()
	s.metrics = metrics.NewShortenMetrics(reg)

	svc := service.NewLinkService(s.store, gen, service.Options{
		RedirectBaseURL:     s.cfg.RedirectBaseURL,
		AllocationAttempts:  s.cfg.CodeAllocationAttempts,
		StrictURLValidation: s.cfg.StrictURLValidation,
	}, log)

	s.router = handler.NewShortenerRouter(
		handler.NewShortenHandler(svc, s.metrics, log),
		handler.NewHealthHandler(s.store, log),
		metrics.Handler(reg),
		s.cfg,
		log,
	)
}

func (s *ShortenerTestSuite) post(body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/shorten", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ShortenerTestSuite) count(result string) float64 {
	return testutil.ToFloat64(s.metrics.Requests.WithLabelValues(result))
}

func (s *ShortenerTestSuite) TestShortenThenRedirect() {
	w := s.post(`{"url": "https://example.com/very/long/path"}`)
	s.Require().Equal(http.StatusCreated, w.Code)

	var resp domain.ShortenResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Regexp(`^[a-z0-9]{5}$`, resp.Code)
	s.Equal("http://localhost:3000/"+resp.Code, resp.ShortURL)
	s.Equal(1.0, s.count("ok"))

	stored, err := s.mr.Get(resp.Code)
	s.Require().NoError(err)
	s.Equal("https://example.com/very/long/path", stored)

	// the redirector resolves what the shortener wrote
	log := logger.NewNop()
	redirectMetrics := metrics.NewRedirectMetrics(metrics.NewRegistry())
	redirector := handler.NewRedirectRouter(
		handler.NewRedirectHandler(service.NewLinkService(s.store, nil, service.Options{}, log), redirectMetrics, log),
		handler.NewHealthHandler(s.store, log),
		http.NotFoundHandler(),
		s.cfg,
		log,
	)

	rw := httptest.NewRecorder()
	redirector.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/"+resp.Code, nil))
	s.Equal(http.StatusFound, rw.Code)
	s.Equal("https://example.com/very/long/path", rw.Header().Get("Location"))
}

func (s *ShortenerTestSuite) TestNoBaseURL() {
	s.cfg.RedirectBaseURL = ""
	s.build(fixedGenerator("zzzzz"))

	w := s.post(`{"url": "https://example.com"}`)

	s.Equal(http.StatusCreated, w.Code)
	s.JSONEq(`{"code": "zzzzz"}`, w.Body.String())
}

func (s *ShortenerTestSuite) TestMissingURL() {
	for _, body := range []string{`{}`, `{"url": ""}`, ``, `not json`} {
		w := s.post(body)

		s.Equal(http.StatusBadRequest, w.Code, "body %q", body)
		s.JSONEq(`{"error": "url is required"}`, w.Body.String())
	}

	s.Equal(4.0, s.count("bad_request"))
	s.Equal(0.0, s.count("ok"))
}

func (s *ShortenerTestSuite) TestStrictValidation() {
	s.cfg.StrictURLValidation = true
	s.build(fixedGenerator("vvvvv"))

	w := s.post(`{"url": "javascript:alert(1)"}`)

	s.Equal(http.StatusBadRequest, w.Code)
	s.JSONEq(`{"error": "invalid url"}`, w.Body.String())
	s.Equal(1.0, s.count("bad_request"))
	s.False(s.mr.Exists("vvvvv"))
}

func (s *ShortenerTestSuite) TestAllocationExhausted() {
	s.Require().NoError(s.mr.Set("taken", "https://existing.example"))
	s.cfg.CodeAllocationAttempts = 3
	s.build(fixedGenerator("taken"))

	w := s.post(`{"url": "https://example.com/new"}`)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.JSONEq(`{"error": "could not allocate code"}`, w.Body.String())
	s.Equal(1.0, s.count("error"))

	stored, err := s.mr.Get("taken")
	s.Require().NoError(err)
	s.Equal("https://existing.example", stored)
}

func (s *ShortenerTestSuite) TestStoreDown() {
	s.mr.Close()

	w := s.post(`{"url": "https://example.com"}`)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.JSONEq(`{"error": "internal error"}`, w.Body.String())
	s.Equal(1.0, s.count("error"))
}

func (s *ShortenerTestSuite) TestHealth() {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status": "ok"}`, w.Body.String())

	s.mr.Close()

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.JSONEq(`{"status": "redis_unavailable"}`, w.Body.String())
}

func (s *ShortenerTestSuite) TestRateLimit() {
	s.cfg.RateLimitPerMinute = 2
	s.build(fixedGenerator("unused"))

	s.Equal(http.StatusCreated, s.post(`{"url": "https://a.example"}`).Code)
	s.Equal(http.StatusBadRequest, s.post(`{}`).Code)

	w := s.post(`{"url": "https://b.example"}`)
	s.Equal(http.StatusTooManyRequests, w.Code)
	s.JSONEq(`{"error": "rate limit exceeded"}`, w.Body.String())

	// throttled requests never reach the handler
	s.Equal(1.0, s.count("ok"))
	s.Equal(1.0, s.count("bad_request"))
}

func (s *ShortenerTestSuite) TestAuthentication() {
	s.cfg.EnableAuthentication = true
	s.cfg.APIKey = "secret"
	s.build(fixedGenerator("authd"))

	w := s.post(`{"url": "https://example.com"}`)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.post(`{"url": "https://example.com"}`, "X-API-Key", "wrong")
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.post(`{"url": "https://example.com"}`, "X-API-Key", "secret")
	s.Equal(http.StatusCreated, w.Code)
}

func (s *ShortenerTestSuite) TestCORSPreflight() {
	s.cfg.Environment = "staging"
	s.cfg.CORSAllowedOrigin = "https://app.example"
	s.build(fixedGenerator("corsx"))

	req := httptest.NewRequest(http.MethodOptions, "/shorten", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNoContent, w.Code)
	s.Equal("https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = s.post(`{"url": "https://example.com"}`, "Origin", "https://evil.example")
	s.Equal(http.StatusCreated, w.Code)
	s.Empty(w.Header().Get("Access-Control-Allow-Origin"))
}
