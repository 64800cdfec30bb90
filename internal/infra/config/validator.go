// Where: cli/internal/infra/config/validator.go
// What: JSON schema validation for the config file.
// Why: Reject typos and malformed values before they reach a request URL.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

const schemaURL = "config.schema.json"

//go:embed schema/config.schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

func validate(content []byte) error {
	sch, err := loadSchema()
	if err != nil {
		return err
	}

	jsonData, err := yaml.YAMLToJSON(content)
	if err != nil {
		return errors.Wrap(err, "convert yaml to json")
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return errors.Wrap(err, "unmarshal json")
	}
	return sch.Validate(document)
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = errors.Wrap(err, "load config schema")
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}
