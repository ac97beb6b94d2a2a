package match

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"both empty", "", "", 1},
		{"identical", "abc", "abc", 1},
		{"disjoint", "abc", "xyz", 0},
		{"partial overlap", "abcd", "bcde", 0.75}, // "bcd" matches: 2*3/8
		{"chinese names", "麗城花園", "麗城花園", 1},
		{"chinese partial", "麗城花園", "麗城花園二期", 0.8}, // 2*4/10
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.a, tt.b)
			if !almostEqual(got, tt.expected) {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestRatioIsSymmetricEnough(t *testing.T) {
	a, b := "富麗花園2座", "富麗花園"
	if got, want := Ratio(a, b), Ratio(b, a); !almostEqual(got, want) {
		t.Errorf("Ratio not symmetric: %v vs %v", got, want)
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"arabic phase", "麗城花園2期", "麗城花園"},
		{"chinese phase", "麗城花園二期", "麗城花園"},
		{"ordinal phase", "麗城花園第三期", "麗城花園"},
		{"block", "富麗花園2座", "富麗花園"},
		{"letter block", "富麗花園A座", "富麗花園"},
		{"street number", "明珠大廈8號", "明珠大廈"},
		{"nothing to strip", "黃埔花園", "黃埔花園"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanName(tt.input); got != tt.expected {
				t.Errorf("CleanName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSimilarityUsesCleanedNames(t *testing.T) {
	// The raw names differ by the phase marker; cleaned they are identical.
	sim := Similarity("麗城花園二期", "麗城花園")
	if !almostEqual(sim, 1) {
		t.Errorf("Similarity = %v, want 1", sim)
	}
}

func TestBest(t *testing.T) {
	known := map[string]string{
		"麗城花園": "Belvedere Garden",
		"黃埔花園": "Whampoa Garden",
		"慧安園":  "Well On Garden",
	}

	cand, ok := Best("麗城花園2座", known, 0.75)
	if !ok {
		t.Fatal("Best() found no candidate")
	}
	if cand.ChineseName != "麗城花園" {
		t.Errorf("ChineseName = %q, want 麗城花園", cand.ChineseName)
	}
	if cand.Similarity < 0.75 {
		t.Errorf("Similarity = %v, want >= 0.75", cand.Similarity)
	}

	if _, ok := Best("天璽天", known, 0.75); ok {
		t.Error("Best() matched an unrelated name")
	}
}

func TestAdjustTranslation(t *testing.T) {
	tests := []struct {
		name             string
		target, match    string
		matchTranslation string
		expected         string
	}{
		{"block suffix", "富麗花園2座", "富麗花園", "Flourish Garden", "Flourish Garden Block 2"},
		{"phase suffix", "麗城花園二期", "麗城花園", "Belvedere Garden", "Belvedere Garden Phase 2"},
		{"no extra part", "麗城花園", "麗城花園", "Belvedere Garden", "Belvedere Garden"},
		{"target shorter", "麗城", "麗城花園", "Belvedere Garden", "Belvedere Garden"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustTranslation(tt.target, tt.match, tt.matchTranslation)
			if got != tt.expected {
				t.Errorf("AdjustTranslation() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTranslateSuffix(t *testing.T) {
	tests := []struct {
		name     string
		suffix   string
		expected string
	}{
		{"arabic block", "2座", "Block 2"},
		{"letter block", "A座", "Block A"},
		{"arabic phase", "3期", "Phase 3"},
		{"chinese phase", "二期", "Phase 2"},
		{"ordinal phase", "第三期", "Phase 3"},
		{"east block", "東座", "East Block"},
		{"new wing", "新翼", "New Wing"},
		{"floor", "12樓", "Floor 12"},
		{"digit beats direction", "2東座", "Floor 2"},
		{"bare letter", "B", "Block B"},
		{"unknown", "?!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TranslateSuffix(tt.suffix); got != tt.expected {
				t.Errorf("TranslateSuffix(%q) = %q, want %q", tt.suffix, got, tt.expected)
			}
		})
	}
}

func TestChineseToArabic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"一", "1"},
		{"九", "9"},
		{"十", "10"},
		{"十一", "11"},
		{"二十", "20"},
		{"二十五", "25"},
		{"甲", "甲"}, // unrecognized passes through
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ChineseToArabic(tt.input); got != tt.expected {
				t.Errorf("ChineseToArabic(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTransliterate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"known characters", "金海", "Golden Ocean"},
		{"bare digit", "2", "Block 2"},
		{"bare letter", "A", "Block A"},
		{"unknown characters", "？？", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transliterate(tt.input); got != tt.expected {
				t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsEnglish(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"plain english", "The Seal", true},
		{"english with digits", "Tower 2", true},
		{"chinese", "麗城花園", false},
		{"mixed", "麗城Garden", false},
		{"empty", "", false},
		{"punctuation only", "?!", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEnglish(tt.text); got != tt.expected {
				t.Errorf("IsEnglish(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}
