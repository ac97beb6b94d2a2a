package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/pricofy/property-translator/internal/domain"
)

type stubTranslator struct {
	result *domain.Result
	err    error
	calls  int
}

func (s *stubTranslator) Translate(ctx context.Context, name string, reqContext map[string]string) (*domain.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		request    Request
		translator *stubTranslator
		wantError  string
		wantCalls  int
	}{
		{
			name:    "valid request",
			request: Request{Name: "麗城花園"},
			translator: &stubTranslator{result: &domain.Result{
				ChineseName: "麗城花園",
				EnglishName: "Belvedere Garden",
				Method:      "official_lookup",
				Layer:       1,
			}},
			wantCalls: 1,
		},
		{
			name:       "missing name",
			request:    Request{},
			translator: &stubTranslator{},
			wantError:  "name is required",
			wantCalls:  0,
		},
		{
			name:       "translator failure",
			request:    Request{Name: "麗城花園"},
			translator: &stubTranslator{err: errors.New("store unavailable")},
			wantError:  "store unavailable",
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Handle(context.Background(), tt.translator, tt.request)
			if err != nil {
				t.Fatalf("Handle returned error: %v", err)
			}
			if resp.Error != tt.wantError {
				t.Errorf("Error = %q, want %q", resp.Error, tt.wantError)
			}
			if tt.translator.calls != tt.wantCalls {
				t.Errorf("translator calls = %d, want %d", tt.translator.calls, tt.wantCalls)
			}
			if tt.wantError == "" && resp.Result == nil {
				t.Error("Result is nil for successful request")
			}
		})
	}
}

func TestHandlePassesContext(t *testing.T) {
	var gotContext map[string]string
	tr := translatorFunc(func(ctx context.Context, name string, reqContext map[string]string) (*domain.Result, error) {
		gotContext = reqContext
		return &domain.Result{ChineseName: name, EnglishName: "X"}, nil
	})

	req := Request{Name: "天璽天", Context: map[string]string{"developer": "新鴻基"}}
	if _, err := Handle(context.Background(), tr, req); err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if gotContext["developer"] != "新鴻基" {
		t.Errorf("context not passed through: %v", gotContext)
	}
}

type translatorFunc func(ctx context.Context, name string, reqContext map[string]string) (*domain.Result, error)

func (f translatorFunc) Translate(ctx context.Context, name string, reqContext map[string]string) (*domain.Result, error) {
	return f(ctx, name, reqContext)
}
