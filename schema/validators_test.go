// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestBuiltinValidators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		validator Validator
		raw       *string
		want      any
		wantErr   bool
	}{
		{name: "string present", validator: String(), raw: ptr("x"), want: "x"},
		{name: "string absent", validator: String(), raw: nil, wantErr: true},
		{name: "nonempty rejects empty", validator: NonEmpty(), raw: ptr(""), wantErr: true},
		{name: "bool true", validator: Bool(), raw: ptr("true"), want: true},
		{name: "bool numeric", validator: Bool(), raw: ptr("1"), want: true},
		{name: "bool invalid", validator: Bool(), raw: ptr("yes"), wantErr: true},
		{name: "int valid", validator: Int(), raw: ptr("42"), want: 42},
		{name: "int negative", validator: Int(), raw: ptr("-7"), want: -7},
		{name: "int invalid", validator: Int(), raw: ptr("4.2"), wantErr: true},
		{name: "url valid", validator: URL(), raw: ptr("https://api.example.com"), want: "https://api.example.com"},
		{name: "url missing scheme", validator: URL(), raw: ptr("api.example.com"), wantErr: true},
		{name: "url missing host", validator: URL(), raw: ptr("https://"), wantErr: true},
		{name: "url with fragment", validator: URL(), raw: ptr("https://a.example.com/#frag"), wantErr: true},
		{name: "enum member", validator: Enum("dev", "prod"), raw: ptr("dev"), want: "dev"},
		{name: "enum non-member", validator: Enum("dev", "prod"), raw: ptr("staging"), wantErr: true},
		{name: "optional absent", validator: Optional(Int()), raw: nil, want: nil},
		{name: "optional present still validated", validator: Optional(Int()), raw: ptr("nope"), wantErr: true},
		{name: "default applied when absent", validator: Default(Int(), "10"), raw: nil, want: 10},
		{name: "default ignored when present", validator: Default(Int(), "10"), raw: ptr("3"), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.validator.Validate(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCELValidator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		expr    string
		raw     *string
		wantErr bool
	}{
		{
			name: "satisfied expression",
			expr: `value.startsWith("https://")`,
			raw:  ptr("https://api.example.com"),
		},
		{
			name:    "unsatisfied expression",
			expr:    `value.startsWith("https://")`,
			raw:     ptr("http://api.example.com"),
			wantErr: true,
		},
		{
			name:    "absent value",
			expr:    `value != ""`,
			raw:     nil,
			wantErr: true,
		},
		{
			name:    "syntax error surfaces as validation failure",
			expr:    `value.startsWith(`,
			raw:     ptr("x"),
			wantErr: true,
		},
		{
			name:    "non-boolean expression rejected",
			expr:    `value + "suffix"`,
			raw:     ptr("x"),
			wantErr: true,
		},
		{
			name: "length bound",
			expr: `value.size() <= 16`,
			raw:  ptr("short"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := CEL(tt.expr).Validate(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, *tt.raw, got)
		})
	}
}

func TestJSONSchemaValidator(t *testing.T) {
	t.Parallel()

	t.Run("plain string against string schema", func(t *testing.T) {
		t.Parallel()

		v := JSONSchema(`{"type": "string", "minLength": 3}`)
		got, err := v.Validate(ptr("hello"))
		require.NoError(t, err)
		assert.Equal(t, "hello", got)

		_, err = v.Validate(ptr("hi"))
		require.Error(t, err)
	})

	t.Run("numeric value decoded as JSON", func(t *testing.T) {
		t.Parallel()

		v := JSONSchema(`{"type": "integer", "minimum": 1}`)
		got, err := v.Validate(ptr("42"))
		require.NoError(t, err)
		assert.Equal(t, float64(42), got)

		_, err = v.Validate(ptr("0"))
		require.Error(t, err)
	})

	t.Run("structured value", func(t *testing.T) {
		t.Parallel()

		v := JSONSchema(`{"type": "object", "required": ["host"]}`)
		got, err := v.Validate(ptr(`{"host": "db.example.com"}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"host": "db.example.com"}, got)

		_, err = v.Validate(ptr(`{}`))
		require.Error(t, err)
	})

	t.Run("absent value", func(t *testing.T) {
		t.Parallel()

		_, err := JSONSchema(`{"type": "string"}`).Validate(nil)
		assert.ErrorIs(t, err, ErrRequired)
	})

	t.Run("invalid schema surfaces as validation failure", func(t *testing.T) {
		t.Parallel()

		_, err := JSONSchema(`{not json`).Validate(ptr("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON schema")
	})
}
