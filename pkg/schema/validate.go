package schema

import (
	"bytes"
	"fmt"

	"github.com/cfglint/cfglint/pkg/parser"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaURL is the address schemas are registered under before
// compilation; documents never reference it.
const schemaURL = "config:///schema.json"

// Validate checks instance against a JSON-encoded schema. On
// violations it returns a *ValidationErrors carrying one Problem per
// engine failure, positioned against tree when one is supplied. A nil
// tree or empty filePath degrades to location-free problems.
//
// A schema that fails to parse or compile is a programming error of
// the embedding application and is returned as a plain wrapped error.
func Validate(schemaJSON []byte, instance any, tree *parser.Node, filePath string) error {
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
		return fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	err = compiled.Validate(instance)
	if err == nil {
		return nil
	}
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}

	leaves := flatten(validationErr)
	problems := make([]*Problem, 0, len(leaves))
	for _, leaf := range leaves {
		problems = append(problems, newProblem(leaf, schemaDoc, instance, tree, filePath))
	}

	return &ValidationErrors{FilePath: filePath, Problems: problems}
}

// flatten walks the engine's error tree down to its leaves. Grouping
// nodes (the root schema error, composition branches with causes) only
// repeat what their causes say more precisely.
func flatten(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, flatten(cause)...)
	}
	return leaves
}
