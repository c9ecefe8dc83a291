// Package api serves the OpenAPI description of the ledger HTTP API.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openapiYAML []byte

var (
	swaggerOnce sync.Once
	swaggerDoc  *openapi3.T
	swaggerErr  error
)

// GetSwagger returns the embedded OpenAPI document, parsed and validated once.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		swaggerDoc, swaggerErr = loadSwagger(openapiYAML)
	})
	return swaggerDoc, swaggerErr
}

func loadSwagger(data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse openapi document: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}
