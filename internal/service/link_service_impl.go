package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"redirector/internal/domain"
	"redirector/internal/store"
	"redirector/pkg/logger"
	"redirector/pkg/validator"
)

// CodeGenerator yields candidate short codes
type CodeGenerator interface {
	Generate() string
}

// Options tunes the link service
type Options struct {
	// LookupTimeout bounds Resolve on top of the store client's timeouts. Zero disables it.
	LookupTimeout time.Duration

	RedirectBaseURL     string
	AllocationAttempts  int
	StrictURLValidation bool
}

// linkService implements the LinkService interface
type linkService struct {
	store     store.Store
	generator CodeGenerator
	opts      Options
	logger    *logger.Logger
}

// NewLinkService creates a new link service with dependencies injected.
// generator may be nil for processes that never shorten.
func NewLinkService(
	store store.Store,
	generator CodeGenerator,
	opts Options,
	logger *logger.Logger,
) LinkService {
	if opts.AllocationAttempts < 1 {
		opts.AllocationAttempts = 1
	}

	return &linkService{
		store:     store,
		generator: generator,
		opts:      opts,
		logger:    logger,
	}
}

// Resolve returns the stored URL verbatim.
// A missing key and an empty value both yield domain.ErrURLNotFound.
func (s *linkService) Resolve(ctx context.Context, code string) (string, error) {
	// A caller hanging up does not abort the read; the result is simply discarded.
	ctx = context.WithoutCancel(ctx)
	if s.opts.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.LookupTimeout)
		defer cancel()
	}

	longURL, err := s.store.Get(ctx, code)
	if err != nil {
		return "", domain.NewStoreError("get", err)
	}

	if longURL == "" {
		return "", domain.ErrURLNotFound
	}

	return longURL, nil
}

// Shorten stores longURL under the first generated code that is not taken yet
func (s *linkService) Shorten(ctx context.Context, longURL string) (*domain.ShortenResponse, error) {
	if longURL == "" {
		return nil, domain.ErrURLRequired
	}

	// Stored values are echoed into Location headers verbatim; flag anything odd.
	if err := validator.ValidateURL(longURL); err != nil {
		if s.opts.StrictURLValidation {
			return nil, domain.NewAppError(domain.ErrInvalidURL, err.Error(), http.StatusBadRequest, false)
		}
		s.logger.Warnw("Storing URL that failed validation", "url", longURL, "reason", err.Error())
	}

	for attempt := 1; attempt <= s.opts.AllocationAttempts; attempt++ {
		code := s.generator.Generate()

		ok, err := s.store.SetNX(ctx, code, longURL)
		if err != nil {
			return nil, domain.NewStoreError("setnx", err)
		}

		if ok {
			s.logger.Infow("URL shortened", "short_code", code, "attempt", attempt)
			return s.buildResponse(code), nil
		}

		s.logger.Warnw("Short code collision detected, retrying",
			"short_code", code,
			"attempt", attempt,
		)
	}

	return nil, fmt.Errorf("%w after %d attempts", domain.ErrCodeAllocation, s.opts.AllocationAttempts)
}

func (s *linkService) buildResponse(code string) *domain.ShortenResponse {
	resp := &domain.ShortenResponse{Code: code}
	if s.opts.RedirectBaseURL != "" {
		resp.ShortURL = strings.TrimRight(s.opts.RedirectBaseURL, "/") + "/" + code
	}
	return resp
}
