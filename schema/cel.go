// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

const (
	// maxExpressionLength is the maximum allowed length for a CEL
	// expression. This limit prevents DoS via excessively long expressions.
	maxExpressionLength = 10000

	// celCostLimit is the runtime cost limit for CEL program evaluation.
	// This prevents DoS via expensive operations in expressions.
	celCostLimit = 1000000
)

// celEnvCache holds the lazily-initialized CEL environment shared by every
// CEL validator. All expressions see a single declared variable, "value",
// bound to the raw string under validation.
var celEnvCache struct {
	once sync.Once
	env  *cel.Env
	err  error
}

func celEnv() (*cel.Env, error) {
	celEnvCache.once.Do(func() {
		celEnvCache.env, celEnvCache.err = cel.NewEnv(
			cel.Variable("value", cel.StringType),
		)
	})
	return celEnvCache.env, celEnvCache.err
}

// celProgram compiles an expression lazily on first use and caches the
// compiled program for the validator's lifetime.
type celProgram struct {
	source  string
	once    sync.Once
	program cel.Program
	err     error
}

func (p *celProgram) compile() (cel.Program, error) {
	p.once.Do(func() {
		if len(p.source) > maxExpressionLength {
			p.err = fmt.Errorf("expression length %d exceeds maximum of %d",
				len(p.source), maxExpressionLength)
			return
		}

		env, err := celEnv()
		if err != nil {
			p.err = fmt.Errorf("failed to get CEL environment: %w", err)
			return
		}

		parsedAst, issues := env.Parse(p.source)
		if issues.Err() != nil {
			p.err = fmt.Errorf("CEL parse error in expression %q: %w", p.source, issues.Err())
			return
		}

		checkedAst, issues := env.Check(parsedAst)
		if issues.Err() != nil {
			p.err = fmt.Errorf("CEL check error in expression %q: %w", p.source, issues.Err())
			return
		}

		// Cost limit bounds evaluation work per call.
		p.program, p.err = env.Program(checkedAst, cel.CostLimit(celCostLimit))
		if p.err != nil {
			p.err = fmt.Errorf("failed to create CEL program for %q: %w", p.source, p.err)
		}
	})
	return p.program, p.err
}

// CEL returns a validator that accepts a value when the given CEL
// expression evaluates to true. The expression sees the raw string as the
// variable "value":
//
//	schema.CEL(`value.startsWith("https://")`)
//
// The expression is compiled on first use; compilation failures surface as
// validation errors for the field.
func CEL(expr string) Validator {
	prog := &celProgram{source: expr}
	return ValidatorFunc(func(raw *string) (any, error) {
		if raw == nil {
			return nil, ErrRequired
		}
		program, err := prog.compile()
		if err != nil {
			return nil, err
		}

		out, _, err := program.Eval(map[string]any{"value": *raw})
		if err != nil {
			return nil, fmt.Errorf("CEL evaluation failed: %w", err)
		}
		ok, isBool := out.Value().(bool)
		if !isBool {
			return nil, fmt.Errorf("CEL expression %q returned %T, expected bool", expr, out.Value())
		}
		if !ok {
			return nil, fmt.Errorf("value does not satisfy expression %q", expr)
		}
		return *raw, nil
	})
}
