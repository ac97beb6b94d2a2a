package translator

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pricofy/property-translator/internal/grok"
	"github.com/pricofy/property-translator/internal/store"
)

// fakeAI returns a canned analysis or error.
type fakeAI struct {
	analysis *grok.Analysis
	err      error
	calls    int
}

func (f *fakeAI) AnalyzeAndTranslate(ctx context.Context, name string, reqContext map[string]string) (*grok.Analysis, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

func newTestService(t *testing.T, ai *fakeAI, fuzzy bool) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.Open error: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(st, ai, fuzzy, nil), st
}

func TestTranslateEmptyName(t *testing.T) {
	svc, _ := newTestService(t, &fakeAI{}, false)
	if _, err := svc.Translate(context.Background(), "  ", nil); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestTranslateAlreadyEnglish(t *testing.T) {
	ai := &fakeAI{}
	svc, _ := newTestService(t, ai, false)

	res, err := svc.Translate(context.Background(), "The Seal", nil)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if res.Method != "already_english" || res.Layer != 0 {
		t.Errorf("result = %+v", res)
	}
	if res.EnglishName != "The Seal" {
		t.Errorf("EnglishName = %q", res.EnglishName)
	}
	if res.Confidence != 0.98 {
		t.Errorf("Confidence = %v, want 0.98", res.Confidence)
	}
	if ai.calls != 0 {
		t.Errorf("AI called %d times, want 0", ai.calls)
	}
}

func TestTranslateGeoLookup(t *testing.T) {
	ai := &fakeAI{}
	svc, _ := newTestService(t, ai, false)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"seeded area", "銅鑼灣", "Causeway Bay"},
		{"station via base area", "銅鑼灣站", "Causeway Bay Station"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Translate(context.Background(), tt.input, nil)
			if err != nil {
				t.Fatalf("Translate error: %v", err)
			}
			if res.EnglishName != tt.expected {
				t.Errorf("EnglishName = %q, want %q", res.EnglishName, tt.expected)
			}
			if res.Method != "geo_lookup" || res.Layer != 0 || res.Confidence != 0.99 {
				t.Errorf("result = %+v", res)
			}
		})
	}
	if ai.calls != 0 {
		t.Errorf("AI called %d times, want 0", ai.calls)
	}
}

func TestTranslateHighConfidenceVerifiedInFixedLayer(t *testing.T) {
	ai := &fakeAI{}
	svc, st := newTestService(t, ai, false)
	ctx := context.Background()

	if err := st.PutVerified(ctx, "堅城", "Kennedy Town", 0.9); err != nil {
		t.Fatal(err)
	}

	res, err := svc.Translate(ctx, "堅城", nil)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if res.Method != "geo_lookup" || res.Layer != 0 {
		t.Errorf("result = %+v", res)
	}
	if res.EnglishName != "Kennedy Town" {
		t.Errorf("EnglishName = %q", res.EnglishName)
	}
}

func TestTranslateOfficialLookup(t *testing.T) {
	ai := &fakeAI{}
	svc, st := newTestService(t, ai, false)
	ctx := context.Background()

	if err := st.PutOfficial(ctx, "黃埔花園", "Whampoa Garden", "developer_site", 0.97); err != nil {
		t.Fatal(err)
	}

	res, err := svc.Translate(ctx, "黃埔花園", nil)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if res.Method != "official_lookup" || res.Layer != 1 {
		t.Errorf("result = %+v", res)
	}
	if res.EnglishName != "Whampoa Garden" || res.Source != "developer_site" {
		t.Errorf("result = %+v", res)
	}
	if res.Confidence != 0.97 {
		t.Errorf("Confidence = %v", res.Confidence)
	}
}

func TestTranslateVerifiedLookupBumpsUsage(t *testing.T) {
	ai := &fakeAI{}
	svc, st := newTestService(t, ai, false)
	ctx := context.Background()

	// Below the fixed-layer confidence gate so layer 1 handles it.
	if err := st.PutVerified(ctx, "慧安園", "Well On Garden", 0.7); err != nil {
		t.Fatal(err)
	}

	res, err := svc.Translate(ctx, "慧安園", nil)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if res.Method != "verified_lookup" || res.Layer != 1 {
		t.Errorf("result = %+v", res)
	}

	v, err := st.GetVerified(ctx, "慧安園")
	if err != nil {
		t.Fatal(err)
	}
	if v.UsageCount != 1 {
		t.Errorf("UsageCount = %d, want 1", v.UsageCount)
	}
}

func TestTranslateFuzzyMatching(t *testing.T) {
	ai := &fakeAI{}
	svc, st := newTestService(t, ai, true)
	ctx := context.Background()

	if err := st.PutVerified(ctx, "麗城花園", "Belvedere Garden", 0.7); err != nil {
		t.Fatal(err)
	}

	res, err := svc.Translate(ctx, "麗城花園二期", nil)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if res.Method != "fuzzy_matching" || res.Layer != 2 {
		t.Fatalf("result = %+v", res)
	}
	if res.EnglishName != "Belvedere Garden Phase 2" {
		t.Errorf("EnglishName = %q, want %q", res.EnglishName, "Belvedere Garden Phase 2")
	}
	if res.Confidence <= 0 || res.Confidence >= 0.9 {
		t.Errorf("Confidence = %v, want similarity*0.89", res.Confidence)
	}
	if ai.calls != 0 {
		t.Errorf("AI called %d times, want 0", ai.calls)
	}
}

func TestTranslateFuzzyDisabledGoesToAI(t *testing.T) {
	ai := &fakeAI{analysis: &grok.Analysis{
		EnglishName: "Belvedere Garden Phase 2",
		Confidence:  0.8,
		Method:      "knowledge_base",
	}}
	svc, st := newTestService(t, ai, false)
	ctx := context.Background()

	if err := st.PutVerified(ctx, "麗城花園", "Belvedere Garden", 0.7); err != nil {
		t.Fatal(err)
	}

	res, err := svc.Translate(ctx, "麗城花園二期", nil)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if res.Layer != 3 {
		t.Errorf("Layer = %d, want 3", res.Layer)
	}
	if ai.calls != 1 {
		t.Errorf("AI called %d times, want 1", ai.calls)
	}
}

func TestTranslateAIResultSavedToHistory(t *testing.T) {
	ai := &fakeAI{analysis: &grok.Analysis{
		EnglishName:    "Cullinan Sky",
		Confidence:     0.85,
		Method:         "knowledge_base",
		Reasoning:      "known development",
		SearchAnalysis: map[string]any{"official_found": true},
	}}
	svc, _ := newTestService(t, ai, false)
	ctx := context.Background()

	res, err := svc.Translate(ctx, "天璽天", map[string]string{"developer": "新鴻基"})
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if res.EnglishName != "Cullinan Sky" || res.Layer != 3 || res.Source != "grok" {
		t.Errorf("result = %+v", res)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if stats.TotalTranslations != 1 {
		t.Errorf("TotalTranslations = %d, want 1", stats.TotalTranslations)
	}
	if stats.LayerDistribution[3] != 1 {
		t.Errorf("LayerDistribution = %v", stats.LayerDistribution)
	}
}

func TestTranslateLiveSearchBoost(t *testing.T) {
	ai := &fakeAI{analysis: &grok.Analysis{
		EnglishName: "Cullinan Sky",
		Confidence:  0.9,
		Method:      "live_search_official",
	}}
	svc, _ := newTestService(t, ai, false)

	res, err := svc.Translate(context.Background(), "天璽天", nil)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	// 0.9 + 0.1 boost is capped at 0.95.
	if res.Confidence != 0.95 {
		t.Errorf("Confidence = %v, want 0.95", res.Confidence)
	}
	if res.Source != "grok_live_search" {
		t.Errorf("Source = %q", res.Source)
	}
}

func TestTranslateAIFailureFallsBack(t *testing.T) {
	ai := &fakeAI{err: errors.New("boom")}
	svc, _ := newTestService(t, ai, false)

	res, err := svc.Translate(context.Background(), "金輝豪庭", nil)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if res.Method != "fallback" || res.Source != "fallback" {
		t.Errorf("result = %+v", res)
	}
	if res.EnglishName != "金輝豪庭 Residence" {
		t.Errorf("EnglishName = %q", res.EnglishName)
	}
	if res.Confidence != 0.3 {
		t.Errorf("Confidence = %v, want 0.3", res.Confidence)
	}
}
