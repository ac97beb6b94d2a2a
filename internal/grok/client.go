// Package grok calls the xAI chat completions API to translate property
// names that the local store cannot resolve.
package grok

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultBaseURL is the xAI API endpoint.
	DefaultBaseURL = "https://api.x.ai/v1"

	// DefaultModel is the chat model used for translation analysis.
	DefaultModel = "grok-3"

	maxRetries = 3
)

// ErrNoAPIKey is returned when the client is constructed without a key.
var ErrNoAPIKey = errors.New("grok: no API key configured")

// Analysis is the parsed outcome of one translation request.
type Analysis struct {
	EnglishName    string
	Confidence     float64
	Method         string
	Reasoning      string
	SearchAnalysis map[string]any
}

// Client is an xAI chat completions client.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *resty.Client
	backoff time.Duration
}

// New creates a Client. An empty apiKey is allowed; AnalyzeAndTranslate
// then fails with ErrNoAPIKey and callers degrade to their fallback.
func New(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    resty.New().SetTimeout(60 * time.Second),
		backoff: time.Second,
	}
}

// Available reports whether the client holds an API key.
func (c *Client) Available() bool { return c.apiKey != "" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Model       string        `json:"model"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AnalyzeAndTranslate asks the model for the official English name of a
// property, returning the parsed analysis.
func (c *Client) AnalyzeAndTranslate(ctx context.Context, name string, reqContext map[string]string) (*Analysis, error) {
	if !c.Available() {
		return nil, ErrNoAPIKey
	}

	body := chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: "You are a professional Hong Kong property translation expert."},
			{Role: "user", Content: buildPrompt(name, reqContext)},
		},
		Model:       c.model,
		Stream:      false,
		Temperature: 0,
	}

	content, err := c.complete(ctx, body)
	if err != nil {
		return nil, err
	}
	return parseResponse(content, name), nil
}

func (c *Client) complete(ctx context.Context, body chatRequest) (string, error) {
	url := c.baseURL + "/chat/completions"

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		var resp chatResponse
		r, err := c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetHeader("Authorization", "Bearer "+c.apiKey).
			SetBody(body).
			SetResult(&resp).
			Post(url)
		if err != nil {
			lastErr = err
			continue
		}
		switch {
		case r.StatusCode() == 200:
			if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
				return "", errors.New("grok: response missing content")
			}
			return resp.Choices[0].Message.Content, nil
		case r.StatusCode() == 401:
			return "", errors.New("grok: API key invalid or expired")
		case r.StatusCode() == 429:
			// Rate limited: exponential backoff, then retry.
			wait := c.backoff * (1 << attempt)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
			lastErr = fmt.Errorf("grok: rate limited (HTTP 429)")
		default:
			return "", fmt.Errorf("grok: HTTP %d: %s", r.StatusCode(), r.String())
		}
	}
	return "", fmt.Errorf("grok: retries exhausted: %w", lastErr)
}

func buildPrompt(name string, reqContext map[string]string) string {
	var ctxLines []string
	for k, v := range reqContext {
		ctxLines = append(ctxLines, fmt.Sprintf("- %s: %s", k, v))
	}
	ctxText := "none"
	if len(ctxLines) > 0 {
		ctxText = strings.Join(ctxLines, "\n")
	}

	return fmt.Sprintf(`Determine the official English name of the Hong Kong property %q.

1. If an official English name is known, provide it directly.
2. Otherwise, provide a professional name following Hong Kong estate naming conventions.
3. Reply with JSON only, in this exact shape:

{
  "search_summary": {
    "official_found": true/false,
    "sources_considered": ["knowledge_base"],
    "confidence": 0.0-1.0
  },
  "translation": {
    "english": "Example Name",
    "method": "knowledge_base" or "professional",
    "reason": "brief justification"
  }
}

Available context:
%s`, name, ctxText)
}

// Wire shapes accepted from the model. Older prompts used
// search_analysis/translation_result with different field names; both are
// still parsed.
type modelResponse struct {
	SearchSummary  map[string]any `json:"search_summary"`
	Translation    *modelTrans    `json:"translation"`
	SearchAnalysis map[string]any `json:"search_analysis"`
	TransResult    *modelTrans    `json:"translation_result"`
}

type modelTrans struct {
	English     string   `json:"english"`
	EnglishName string   `json:"english_name"`
	Confidence  *float64 `json:"confidence"`
	Method      string   `json:"method"`
	Reason      string   `json:"reason"`
	Reasoning   string   `json:"reasoning"`
}

// parseResponse extracts an Analysis from raw model output. It never fails:
// unusable content degrades to the "<name> Residence" fallback.
func parseResponse(content, name string) *Analysis {
	s := strings.TrimSpace(content)
	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := strings.TrimPrefix(s[idx+3:], "json")
		if j := strings.Index(rest, "```"); j >= 0 {
			s = strings.TrimSpace(rest[:j])
		}
	}

	var parsed modelResponse
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		// Sometimes the JSON object is wrapped in prose.
		if i, j := strings.Index(s, "{"), strings.LastIndex(s, "}"); i >= 0 && j > i {
			err = json.Unmarshal([]byte(s[i:j+1]), &parsed)
		}
		if err != nil {
			return extractFromText(s, name)
		}
	}

	trans := parsed.Translation
	if trans == nil {
		trans = parsed.TransResult
	}
	if trans == nil {
		return extractFromText(s, name)
	}

	english := trans.English
	if english == "" {
		english = trans.EnglishName
	}
	if english == "" {
		english = name + " Residence"
	}

	summary := parsed.SearchSummary
	if summary == nil {
		summary = parsed.SearchAnalysis
	}

	confidence := 0.6
	if trans.Confidence != nil {
		confidence = *trans.Confidence
	} else if summary != nil {
		if v, ok := summary["confidence"].(float64); ok {
			confidence = v
		}
	}

	method := trans.Method
	if method == "" {
		method = "grok"
	}
	reasoning := trans.Reason
	if reasoning == "" {
		reasoning = trans.Reasoning
	}

	return &Analysis{
		EnglishName:    english,
		Confidence:     confidence,
		Method:         method,
		Reasoning:      reasoning,
		SearchAnalysis: summary,
	}
}

var englishNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`English name[：:]\s*["']?([A-Za-z][A-Za-z\s]+)["']?`),
	regexp.MustCompile(`[Tt]ranslation[：:]\s*["']?([A-Za-z][A-Za-z\s]+)["']?`),
	regexp.MustCompile(`["']([A-Z][A-Za-z\s]{2,30})["']`),
}

// extractFromText salvages a name from non-JSON model output.
func extractFromText(content, name string) *Analysis {
	var english string
	for _, re := range englishNamePatterns {
		if m := re.FindStringSubmatch(content); m != nil {
			english = strings.TrimSpace(m[1])
			break
		}
	}
	if english == "" {
		return Fallback(name)
	}

	confidence := 0.75
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "official") || strings.Contains(lower, "confirmed"):
		confidence = 0.9
	case strings.Contains(lower, "possibly") || strings.Contains(lower, "uncertain"):
		confidence = 0.6
	}

	return &Analysis{
		EnglishName: english,
		Confidence:  confidence,
		Method:      "text_extraction",
		Reasoning:   fmt.Sprintf("extracted %q from unstructured model output", english),
	}
}

// Fallback is the degraded result used when the model is unreachable or
// returns nothing usable.
func Fallback(name string) *Analysis {
	return &Analysis{
		EnglishName: name + " Residence",
		Confidence:  0.3,
		Method:      "fallback",
		Reasoning:   "AI service unavailable, degraded translation",
	}
}
