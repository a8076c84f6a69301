// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema returns a validator that checks the value against a JSON
// Schema document. The raw string is decoded as JSON when possible;
// otherwise it is treated as a plain JSON string, so schemas like
// {"type": "string", "minLength": 1} apply naturally to unquoted values.
//
// On success the decoded value is returned, which means numeric and
// structured variables come back as their JSON types rather than strings.
// The schema is compiled on first use and cached.
func JSONSchema(schemaJSON string) Validator {
	var (
		once     sync.Once
		compiled *gojsonschema.Schema
		compErr  error
	)
	return ValidatorFunc(func(raw *string) (any, error) {
		if raw == nil {
			return nil, ErrRequired
		}

		once.Do(func() {
			compiled, compErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
		})
		if compErr != nil {
			return nil, fmt.Errorf("invalid JSON schema: %w", compErr)
		}

		var doc any
		if err := json.Unmarshal([]byte(*raw), &doc); err != nil {
			doc = *raw
		}

		result, err := compiled.Validate(gojsonschema.NewGoLoader(doc))
		if err != nil {
			return nil, fmt.Errorf("schema validation failed: %w", err)
		}
		if !result.Valid() {
			msgs := make([]string, 0, len(result.Errors()))
			for _, desc := range result.Errors() {
				msgs = append(msgs, desc.Description())
			}
			return nil, fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
		}
		return doc, nil
	})
}
