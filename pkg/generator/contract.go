package generator

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed contract/generator.yaml
var embeddedContract []byte

const contractOperationID = "generateObituary"

// Contract holds the response schema the endpoint promises to honour.
type Contract struct {
	response *openapi3.Schema
}

var (
	defaultContractOnce sync.Once
	defaultContract     *Contract
	defaultContractErr  error
)

// DefaultContract parses the embedded OpenAPI description once.
func DefaultContract() (*Contract, error) {
	defaultContractOnce.Do(func() {
		defaultContract, defaultContractErr = LoadContract(context.Background(), embeddedContract)
	})
	return defaultContract, defaultContractErr
}

// LoadContract parses an OpenAPI 3 document and extracts the JSON schema of
// the 200 response of the generateObituary operation.
func LoadContract(ctx context.Context, raw []byte) (*Contract, error) {
	if len(raw) == 0 {
		return nil, errors.New("generator: contract document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("generator: load contract: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("generator: validate contract: %w", err)
	}
	if spec.Paths == nil {
		return nil, errors.New("generator: contract does not contain any paths")
	}

	for _, item := range spec.Paths.Map() {
		if item == nil || item.Post == nil || item.Post.OperationID != contractOperationID {
			continue
		}
		schema, err := responseSchema(item.Post.Responses)
		if err != nil {
			return nil, err
		}
		return &Contract{response: schema}, nil
	}
	return nil, fmt.Errorf("generator: contract operation %q not found", contractOperationID)
}

// ValidateResponse checks a decoded JSON value against the response schema.
func (c *Contract) ValidateResponse(value any) error {
	if c == nil || c.response == nil {
		return nil
	}
	return c.response.VisitJSON(value)
}

func responseSchema(responses *openapi3.Responses) (*openapi3.Schema, error) {
	if responses == nil {
		return nil, errors.New("generator: contract operation has no responses")
	}
	ref, ok := responses.Map()["200"]
	if !ok || ref == nil || ref.Value == nil {
		return nil, errors.New("generator: contract operation has no 200 response")
	}
	media, ok := ref.Value.Content["application/json"]
	if !ok || media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, errors.New("generator: contract 200 response has no JSON schema")
	}
	return media.Schema.Value, nil
}
