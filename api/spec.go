package api

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed api.yaml
var document []byte

// GetSwagger returns the parsed and validated API document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	swagger, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}

	err = swagger.Validate(loader.Context)
	if err != nil {
		return nil, fmt.Errorf("invalid Swagger: %w", err)
	}

	return swagger, nil
}
