package model

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Validator checks parsed CV documents against the JSON schema shipped in
// the templates directory.
type Validator struct {
	schemaPath string
}

func NewValidator(schemaPath string) *Validator {
	return &Validator{schemaPath: schemaPath}
}

// ValidateMap validates a generic map (as produced by parsing the YAML
// document) against the schema. All violations are folded into one error
// message so the editor can show them at once.
func (v *Validator) ValidateMap(m map[string]interface{}) error {
	// Use an absolute canonical file:// path for the schema so loaders on
	// all platforms resolve file references correctly.
	abs, err := filepath.Abs(v.schemaPath)
	if err != nil {
		return err
	}
	schemaLoader := gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(abs))
	docLoader := gojsonschema.NewGoLoader(m)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
