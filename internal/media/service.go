package media

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/shoply/service/internal/config"
	"github.com/shoply/service/internal/storage"
)

const cleanupTimeout = 30 * time.Second

// Upload carries one file's bytes and declared attributes into the pipeline.
type Upload struct {
	Data        []byte
	ContentType string
	Size        int64
}

// UploadResult describes where an uploaded image and its renditions landed.
// The original rendition provides the primary key/URL/size.
type UploadResult struct {
	Key         string      `json:"key"`
	URL         string      `json:"url"`
	SizeBytes   int64       `json:"sizeBytes"`
	ContentType string      `json:"contentType"`
	Variants    VariantURLs `json:"variants"`
}

// Service orchestrates the upload pipeline: validate, render, store.
type Service struct {
	store     storage.ObjectStore
	renderer  *Renderer
	validator Validator
	renderSem *semaphore.Weighted
	logger    *slog.Logger
}

// NewService creates a media Service. Rendering is CPU-bound, so concurrent
// renders across requests are capped by cfg.RenderConcurrency.
func NewService(store storage.ObjectStore, cfg config.UploadConfig, logger *slog.Logger) *Service {
	concurrency := cfg.RenderConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Service{
		store:     store,
		renderer:  NewRenderer(DefaultSpecs()),
		validator: NewValidator(cfg.MaxFileSize),
		renderSem: semaphore.NewWeighted(concurrency),
		logger:    logger,
	}
}

// UploadImage validates the file, renders every rendition, and stores them.
// ownerHint, when non-empty, becomes part of the base key so callers can
// correlate stored objects with their own records.
func (s *Service) UploadImage(ctx context.Context, up Upload, ownerHint string) (*UploadResult, error) {
	if err := s.validator.Validate(up.Size, up.ContentType); err != nil {
		return nil, err
	}

	base := ownerHint
	if base == "" {
		base = uuid.NewString()
	}
	stem := fmt.Sprintf("%d-%s", time.Now().Unix(), base)

	if err := s.renderSem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire render slot: %w", err)
	}
	variants, err := s.renderer.Render(up.Data, stem)
	s.renderSem.Release(1)
	if err != nil {
		return nil, err
	}

	if err := s.storeAll(ctx, variants); err != nil {
		return nil, err
	}

	result := &UploadResult{ContentType: OutputContentType}
	for _, v := range variants {
		url := s.store.PublicURL(v.Key)
		result.Variants.set(v.Profile, url)
		if v.Profile == ProfileOriginal {
			result.Key = v.Key
			result.URL = url
			result.SizeBytes = int64(len(v.Bytes))
		}
	}
	return result, nil
}

// UploadImages runs the single-image pipeline for each file concurrently.
// Results preserve input order. If any file fails, the whole call fails and
// every file's own stored renditions are cleaned up by its pipeline.
func (s *Service) UploadImages(ctx context.Context, ups []Upload, ownerHint string) ([]*UploadResult, error) {
	results := make([]*UploadResult, len(ups))
	g, gctx := errgroup.WithContext(ctx)
	for i, up := range ups {
		hint := ownerHint
		if hint != "" && len(ups) > 1 {
			hint = fmt.Sprintf("%s-%d", ownerHint, i+1)
		}
		g.Go(func() error {
			res, err := s.UploadImage(gctx, up, hint)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteImage removes a single stored object. Deleting a missing key succeeds.
func (s *Service) DeleteImage(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: delete %q: %v", ErrStorage, key, err)
	}
	return nil
}

// DeleteAllVariants removes every rendition derived from stem, concurrently.
// It does not verify existence first: deletes are idempotent, so renditions
// missing from a partial set are skipped harmlessly.
func (s *Service) DeleteAllVariants(ctx context.Context, stem string) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range Profiles() {
		key := VariantKey(p, stem)
		g.Go(func() error {
			if err := s.store.Delete(gctx, key); err != nil {
				return fmt.Errorf("%w: delete %q: %v", ErrStorage, key, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// SignedURL produces a time-limited access URL for a stored key.
func (s *Service) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	url, err := s.store.SignedURL(ctx, key, ttl)
	if err != nil {
		return "", fmt.Errorf("%w: sign %q: %v", ErrStorage, key, err)
	}
	return url, nil
}

// storeAll uploads every rendition concurrently. The first failure cancels
// the in-flight siblings, and renditions that already landed are removed so
// a failed upload never leaves a partial set behind.
func (s *Service) storeAll(ctx context.Context, variants []Variant) error {
	stored := make([]bool, len(variants))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range variants {
		g.Go(func() error {
			err := s.store.Put(gctx, v.Key, bytes.NewReader(v.Bytes), int64(len(v.Bytes)), v.ContentType, nil)
			if err != nil {
				return fmt.Errorf("%w: put %q: %v", ErrStorage, v.Key, err)
			}
			stored[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.compensate(variants, stored)
		return err
	}
	return nil
}

// compensate deletes renditions that were stored before a sibling failed.
// Failures here are logged, not surfaced: the upload is already failed.
func (s *Service) compensate(variants []Variant, stored []bool) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	for i, v := range variants {
		if !stored[i] {
			continue
		}
		if err := s.store.Delete(ctx, v.Key); err != nil {
			s.logger.Warn("orphaned rendition left after failed upload",
				slog.String("key", v.Key),
				slog.String("error", err.Error()),
			)
		}
	}
}
