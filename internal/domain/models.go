// Package domain contains the core domain types for the property translator.
package domain

// Request is the input to the property translator.
type Request struct {
	Name    string            `json:"name"`
	Context map[string]string `json:"context,omitempty"`
}

// Result is the outcome of resolving one property name.
// Layer records which stage of the waterfall produced the translation:
// 0 = fixed lookup, 1 = translation store, 2 = fuzzy match, 3 = AI.
type Result struct {
	ChineseName    string         `json:"chinese_name"`
	EnglishName    string         `json:"english_name"`
	Confidence     float64        `json:"confidence"`
	Method         string         `json:"method"`
	Layer          int            `json:"layer"`
	Source         string         `json:"source,omitempty"`
	Reasoning      string         `json:"reasoning,omitempty"`
	Alternatives   []string       `json:"alternatives,omitempty"`
	SearchAnalysis map[string]any `json:"search_analysis,omitempty"`
}

// Stats summarizes the translation history.
type Stats struct {
	LayerDistribution  map[int]int    `json:"layer_distribution"`
	MethodDistribution map[string]int `json:"method_distribution"`
	AverageConfidence  float64        `json:"average_confidence"`
	TotalTranslations  int            `json:"total_translations"`
}
