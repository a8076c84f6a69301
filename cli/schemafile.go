// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stacklok/envguard-core/env"
	"github.com/stacklok/envguard-core/schema"
)

// schemaFile is the parsed shape of a schema declaration file.
type schemaFile struct {
	Namespace string
	Prefix    string
	Server    schema.Group
	Client    schema.Group
}

// fieldSpec declares one field's validator in the schema file.
type fieldSpec struct {
	Type       string   `yaml:"type"`
	CEL        string   `yaml:"cel"`
	JSONSchema string   `yaml:"jsonschema"`
	Enum       []string `yaml:"enum"`
	Optional   bool     `yaml:"optional"`
	Default    *string  `yaml:"default"`
}

// loadSchemaFile parses a YAML schema declaration. Field order within the
// server and client blocks is preserved, so validation errors report in
// declaration order.
func loadSchemaFile(path string) (*schemaFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}
	if len(doc.Content) == 0 {
		return &schemaFile{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema file must be a mapping at the top level")
	}

	out := &schemaFile{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		value := root.Content[i+1]
		switch key {
		case "namespace":
			out.Namespace = value.Value
		case "prefix":
			out.Prefix = value.Value
		case "server":
			group, err := decodeGroup(value)
			if err != nil {
				return nil, fmt.Errorf("invalid server block: %w", err)
			}
			out.Server = group
		case "client":
			group, err := decodeGroup(value)
			if err != nil {
				return nil, fmt.Errorf("invalid client block: %w", err)
			}
			out.Client = group
		default:
			return nil, fmt.Errorf("unknown schema file key %q", key)
		}
	}
	return out, nil
}

func decodeGroup(node *yaml.Node) (schema.Group, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping of field names")
	}
	var group schema.Group
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var spec fieldSpec
		if err := node.Content[i+1].Decode(&spec); err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		v, err := spec.validator()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		group = append(group, schema.Field{Name: name, Validator: v})
	}
	return group, nil
}

// validator builds the field's validator from its declaration. Exactly one
// base (type, cel, or jsonschema) applies; optional and default wrap it.
func (s fieldSpec) validator() (schema.Validator, error) {
	var base schema.Validator
	switch {
	case s.CEL != "":
		base = schema.CEL(s.CEL)
	case s.JSONSchema != "":
		base = schema.JSONSchema(s.JSONSchema)
	case len(s.Enum) > 0:
		base = schema.Enum(s.Enum...)
	default:
		switch s.Type {
		case "", "string":
			base = schema.NonEmpty()
		case "bool":
			base = schema.Bool()
		case "int":
			base = schema.Int()
		case "url":
			base = schema.URL()
		default:
			return nil, fmt.Errorf("unknown type %q", s.Type)
		}
	}
	if s.Default != nil {
		return schema.Default(base, *s.Default), nil
	}
	if s.Optional {
		return schema.Optional(base), nil
	}
	return base, nil
}

// loadEnvFile parses a KEY=VALUE file into a raw environment. Blank lines
// and lines starting with # are skipped.
func loadEnvFile(path string) (env.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	out := env.Map{}
	for lineNo, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("malformed line %d: expected KEY=VALUE", lineNo+1)
		}
		out[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"`)
	}
	return out, nil
}
