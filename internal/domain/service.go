package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/davidbz/hearth/internal/observability"
)

const responseCacheTTL = 1 * time.Hour

// GenerationService orchestrates prompt requests: client selection through the
// factory, optional response caching, and lifecycle events.
type GenerationService struct {
	factory ClientFactory
	cache   ResponseCache
	events  EventPublisher
}

// NewGenerationService creates a new generation service (DI constructor). The
// cache may be nil, in which case caching is skipped entirely.
func NewGenerationService(factory ClientFactory, cache ResponseCache, events EventPublisher) *GenerationService {
	return &GenerationService{
		factory: factory,
		cache:   cache,
		events:  events,
	}
}

// Generate runs one prompt against the named provider.
func (s *GenerationService) Generate(
	ctx context.Context,
	providerID string,
	creds CredentialSet,
	req *GenerationRequest,
) (*GenerationResult, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if providerID == "" {
		return nil, errors.New("provider id cannot be empty")
	}
	if req.Prompt == "" {
		return nil, errors.New("prompt cannot be empty")
	}

	logger := observability.FromContext(ctx)

	key := cacheKey(providerID, creds, req)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil && !errors.Is(err, ErrCacheMiss) {
			logger.Warn("response cache get failed, continuing without cache",
				observability.Error(err))
		}
		if cached != nil {
			logger.Info("response cache hit",
				observability.String("provider", providerID))
			return cached, nil
		}
	}

	client, err := s.factory.Create(ctx, providerID, creds, ClientOptions{
		Model:      req.Model,
		Parameters: req.Parameters,
	})
	if err != nil {
		return nil, fmt.Errorf("client construction failed: %w", err)
	}

	s.publish(ctx, "generation.started", map[string]any{
		"provider": providerID,
		"variant":  client.Variant(),
	})

	start := time.Now()
	text, err := client.Generate(ctx, req.Prompt)
	if err != nil {
		s.publish(ctx, "generation.failed", map[string]any{
			"provider": providerID,
			"variant":  client.Variant(),
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	s.publish(ctx, "generation.succeeded", map[string]any{
		"provider":    providerID,
		"variant":     client.Variant(),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	result := &GenerationResult{
		Text:     text,
		Provider: providerID,
		Model:    req.Model,
	}

	if s.cache != nil {
		if setErr := s.cache.Set(ctx, key, result, responseCacheTTL); setErr != nil {
			logger.Warn("failed to store result in cache",
				observability.Error(setErr))
		}
	}

	return result, nil
}

// GenerateFromPortableConfig runs a prompt through a client rehydrated from an
// exported bundle. The bundle's prompt template, when present, is used as the
// prompt unless the caller supplies one.
func (s *GenerationService) GenerateFromPortableConfig(
	ctx context.Context,
	cfg *PortableConfig,
	prompt string,
) (*GenerationResult, error) {
	if cfg == nil {
		return nil, errors.New("portable config cannot be nil")
	}
	if prompt == "" {
		prompt = cfg.PromptTemplate
	}
	if prompt == "" {
		return nil, errors.New("prompt cannot be empty")
	}

	client, err := s.factory.CreateFromPortableConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("client construction failed: %w", err)
	}

	text, err := client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	return &GenerationResult{
		Text:     text,
		Provider: cfg.ProviderID,
		Model:    cfg.Model,
	}, nil
}

func (s *GenerationService) publish(ctx context.Context, eventType string, data map[string]any) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, eventType, data)
}

// cacheKey fingerprints a request. The credential set is part of the
// fingerprint: every caller brings their own keys, so a cached result is only
// ever served back to the credentials that produced it.
func cacheKey(providerID string, creds CredentialSet, req *GenerationRequest) string {
	fields := make([]string, 0, len(creds))
	for name := range creds {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	sum := sha256.New()
	fmt.Fprintf(sum, "%s\x00%s\x00%s", providerID, req.Model, req.Prompt)
	params, _ := json.Marshal(req.Parameters)
	sum.Write([]byte{0})
	sum.Write(params)
	for _, name := range fields {
		fmt.Fprintf(sum, "\x00%s\x00%s", name, creds[name])
	}

	return "hearth:response:" + hex.EncodeToString(sum.Sum(nil))
}
