// Package translator resolves property names through a layered waterfall:
// fixed geography, the local translation store, fuzzy matching, and finally
// the AI model.
package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pricofy/property-translator/internal/domain"
	"github.com/pricofy/property-translator/internal/grok"
	"github.com/pricofy/property-translator/internal/match"
	"github.com/pricofy/property-translator/internal/store"
)

const (
	// fuzzyThreshold is the minimum similarity for a layer-2 match.
	fuzzyThreshold = 0.75

	// slangMinConfidence gates verified entries used in the fixed lookup.
	slangMinConfidence = 0.8
)

// Store is the subset of the translation store the service needs.
type Store interface {
	GetGeo(ctx context.Context, chineseName string) (string, error)
	GetVerifiedMin(ctx context.Context, chineseName string, minConfidence float64) (string, error)
	GetOfficial(ctx context.Context, chineseName string) (*store.Official, error)
	GetVerified(ctx context.Context, chineseName string) (*store.Verified, error)
	AllTranslations(ctx context.Context) (map[string]string, error)
	BumpUsage(ctx context.Context, chineseName string) error
	SaveHistory(ctx context.Context, res *domain.Result) error
	Stats(ctx context.Context) (*domain.Stats, error)
}

// AI is the model client used for the final layer.
type AI interface {
	AnalyzeAndTranslate(ctx context.Context, name string, reqContext map[string]string) (*grok.Analysis, error)
}

// Service runs the translation waterfall.
type Service struct {
	store      Store
	ai         AI
	fuzzyMatch bool
	log        *slog.Logger
}

// New creates a Service. When fuzzyMatch is false, layer 2 is skipped.
func New(st Store, ai AI, fuzzyMatch bool, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: st, ai: ai, fuzzyMatch: fuzzyMatch, log: log}
}

// Translate resolves one property name. The name must be non-empty.
func (s *Service) Translate(ctx context.Context, name string, reqContext map[string]string) (*domain.Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("translator: name is required")
	}

	if match.IsEnglish(name) {
		return &domain.Result{
			ChineseName: name,
			EnglishName: name,
			Confidence:  0.98,
			Method:      "already_english",
			Layer:       0,
			Source:      "input_validation",
		}, nil
	}

	// Layer 0: fixed geography and high-confidence verified entries.
	// Store errors here are logged and the waterfall continues.
	if res, err := s.fixedLookup(ctx, name); err != nil {
		s.log.Error("fixed lookup failed", "name", name, "error", err)
	} else if res != nil {
		return res, nil
	}

	// Layer 1: exact store lookups.
	res, err := s.storeLookup(ctx, name)
	if err != nil {
		return nil, err
	}
	if res != nil {
		return res, nil
	}

	// Layer 2: fuzzy match against every known translation.
	if s.fuzzyMatch {
		res, err := s.fuzzyLookup(ctx, name)
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
	}

	// Layer 3: ask the model.
	res = s.aiTranslate(ctx, name, reqContext)
	if err := s.store.SaveHistory(ctx, res); err != nil {
		s.log.Error("save history failed", "name", name, "error", err)
	}
	return res, nil
}

func (s *Service) fixedLookup(ctx context.Context, name string) (*domain.Result, error) {
	en, err := s.store.GetGeo(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		en, err = s.store.GetVerifiedMin(ctx, name, slangMinConfidence)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.Result{
		ChineseName: name,
		EnglishName: en,
		Confidence:  0.99,
		Method:      "geo_lookup",
		Layer:       0,
		Source:      "geo_locations",
		Reasoning:   "fixed geography lookup",
	}, nil
}

func (s *Service) storeLookup(ctx context.Context, name string) (*domain.Result, error) {
	official, err := s.store.GetOfficial(ctx, name)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if official != nil {
		s.bumpUsage(ctx, name)
		return &domain.Result{
			ChineseName: name,
			EnglishName: official.EnglishName,
			Confidence:  official.Confidence,
			Method:      "official_lookup",
			Layer:       1,
			Source:      official.Source,
			Reasoning:   fmt.Sprintf("official translation from %s", official.Source),
		}, nil
	}

	verified, err := s.store.GetVerified(ctx, name)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if verified != nil {
		s.bumpUsage(ctx, name)
		return &domain.Result{
			ChineseName: name,
			EnglishName: verified.EnglishName,
			Confidence:  verified.Confidence,
			Method:      "verified_lookup",
			Layer:       1,
			Source:      "verified_database",
			Reasoning:   fmt.Sprintf("verified translation, used %d times", verified.UsageCount),
		}, nil
	}
	return nil, nil
}

func (s *Service) fuzzyLookup(ctx context.Context, name string) (*domain.Result, error) {
	known, err := s.store.AllTranslations(ctx)
	if err != nil {
		return nil, err
	}
	cand, ok := match.Best(name, known, fuzzyThreshold)
	if !ok {
		return nil, nil
	}
	adjusted := match.AdjustTranslation(name, cand.ChineseName, cand.EnglishName)
	return &domain.Result{
		ChineseName: name,
		EnglishName: adjusted,
		Confidence:  cand.Similarity * 0.89,
		Method:      "fuzzy_matching",
		Layer:       2,
		Source:      "similar_property",
		Reasoning: fmt.Sprintf("adjusted from similar property %q, similarity %.2f",
			cand.ChineseName, cand.Similarity),
	}, nil
}

func (s *Service) aiTranslate(ctx context.Context, name string, reqContext map[string]string) *domain.Result {
	analysis, err := s.ai.AnalyzeAndTranslate(ctx, name, reqContext)
	if err != nil {
		s.log.Warn("AI translation failed", "name", name, "error", err)
		analysis = grok.Fallback(name)
	}

	confidence := analysis.Confidence
	method := analysis.Method
	reasoning := analysis.Reasoning
	source := "grok"

	// Live-search verified answers get a confidence boost.
	if strings.HasPrefix(method, "live_search") {
		confidence = min(confidence+0.1, 0.95)
		reasoning += " (verified with live search)"
		source = "grok_live_search"
	}
	if method == "fallback" {
		source = "fallback"
	}

	return &domain.Result{
		ChineseName:    name,
		EnglishName:    analysis.EnglishName,
		Confidence:     confidence,
		Method:         method,
		Layer:          3,
		Source:         source,
		Reasoning:      reasoning,
		SearchAnalysis: analysis.SearchAnalysis,
	}
}

func (s *Service) bumpUsage(ctx context.Context, name string) {
	if err := s.store.BumpUsage(ctx, name); err != nil {
		s.log.Error("bump usage failed", "name", name, "error", err)
	}
}

// Stats returns history aggregates from the store.
func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	return s.store.Stats(ctx)
}
