// Package handler provides the Lambda handler for the property translator.
package handler

import (
	"context"
	"fmt"

	"github.com/pricofy/property-translator/internal/domain"
)

// Translator resolves a property name to its English translation.
type Translator interface {
	Translate(ctx context.Context, name string, reqContext map[string]string) (*domain.Result, error)
}

// Request is the input to the property translator.
type Request struct {
	Name    string            `json:"name"`
	Context map[string]string `json:"context,omitempty"`
}

// Response is the output from the property translator.
type Response struct {
	Result *domain.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Handle processes a translation request. Validation and translation
// failures are reported in the response Error field rather than failing
// the invocation.
func Handle(ctx context.Context, t Translator, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return &Response{Error: err.Error()}, nil
	}

	res, err := t.Translate(ctx, req.Name, req.Context)
	if err != nil {
		return &Response{Error: err.Error()}, nil
	}

	return &Response{Result: res}, nil
}

// validateRequest checks the request is valid.
func validateRequest(req Request) error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}
