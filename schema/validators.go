// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// ErrRequired indicates a variable was absent but the validator requires
// a value.
var ErrRequired = errors.New("required but not set")

// String accepts any present value and returns it as a string.
func String() Validator {
	return ValidatorFunc(func(raw *string) (any, error) {
		if raw == nil {
			return nil, ErrRequired
		}
		return *raw, nil
	})
}

// NonEmpty accepts any present, non-empty value.
func NonEmpty() Validator {
	return ValidatorFunc(func(raw *string) (any, error) {
		if raw == nil {
			return nil, ErrRequired
		}
		if *raw == "" {
			return nil, errors.New("must not be empty")
		}
		return *raw, nil
	})
}

// Bool parses the value with strconv.ParseBool.
func Bool() Validator {
	return ValidatorFunc(func(raw *string) (any, error) {
		if raw == nil {
			return nil, ErrRequired
		}
		b, err := strconv.ParseBool(*raw)
		if err != nil {
			return nil, fmt.Errorf("not a boolean: %q", *raw)
		}
		return b, nil
	})
}

// Int parses the value as a base-10 integer.
func Int() Validator {
	return ValidatorFunc(func(raw *string) (any, error) {
		if raw == nil {
			return nil, ErrRequired
		}
		n, err := strconv.Atoi(*raw)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", *raw)
		}
		return n, nil
	})
}

// URL parses the value as an absolute URL. The value must include a scheme
// and a host and must not contain a fragment.
func URL() Validator {
	return ValidatorFunc(func(raw *string) (any, error) {
		if raw == nil {
			return nil, ErrRequired
		}
		parsed, err := url.Parse(*raw)
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if parsed.Scheme == "" {
			return nil, fmt.Errorf("URL must include a scheme (e.g., https://): %s", *raw)
		}
		if parsed.Host == "" {
			return nil, fmt.Errorf("URL must include a host: %s", *raw)
		}
		if parsed.Fragment != "" {
			return nil, fmt.Errorf("URL must not contain fragments (#): %s", *raw)
		}
		return *raw, nil
	})
}

// Enum accepts only one of the given values.
func Enum(allowed ...string) Validator {
	set := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		set[v] = struct{}{}
	}
	return ValidatorFunc(func(raw *string) (any, error) {
		if raw == nil {
			return nil, ErrRequired
		}
		if _, ok := set[*raw]; !ok {
			return nil, fmt.Errorf("must be one of %v, got %q", allowed, *raw)
		}
		return *raw, nil
	})
}

// Optional wraps a validator so that an absent value yields nil instead of
// an error. A present value still goes through the wrapped validator.
func Optional(v Validator) Validator {
	return ValidatorFunc(func(raw *string) (any, error) {
		if raw == nil {
			return nil, nil
		}
		return v.Validate(raw)
	})
}

// Default wraps a validator so that an absent value is replaced with def
// before validation. The default itself must satisfy the wrapped validator.
func Default(v Validator, def string) Validator {
	return ValidatorFunc(func(raw *string) (any, error) {
		if raw == nil {
			raw = &def
		}
		return v.Validate(raw)
	})
}
