// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package inject

import (
	"encoding/json"
	"fmt"

	"golang.org/x/net/http/httpguts"

	"github.com/stacklok/envguard-core/logger"
	"github.com/stacklok/envguard-core/validation/keys"
)

// Render serializes client-safe values into the injection script and seals
// the payload into the registry under the namespace's channel key.
//
// Keys that fail sanitization are discarded with a warning rather than
// failing the render: one bad key must not take down the page. Values are
// never discarded: JSON encoding escapes control characters and quotes,
// which is sufficient to prevent breakout from a script-literal context.
// A string value that would be rejected as an HTTP header field still
// draws a warning, since such values usually indicate an upstream encoding
// problem.
//
// The returned script defines the payload as a non-writable,
// non-configurable property on the global object, so it is tamper-resistant
// after injection. The UI-framework collaborator is responsible for
// emitting the script into the page.
func Render(registry *Registry, namespace string, values map[string]any) (string, error) {
	key := ChannelKey(namespace)

	safe := make(map[string]any, len(values))
	for name, value := range values {
		if _, err := keys.Sanitize(name); err != nil {
			logger.Warnw("discarding unsafe injection key", "key", name, "error", err.Error())
			continue
		}
		if s, isString := value.(string); isString && !httpguts.ValidHeaderFieldValue(s) {
			logger.Warnw("injection value contains control characters", "key", name)
		}
		safe[name] = value
	}

	encoded, err := json.Marshal(safe)
	if err != nil {
		return "", fmt.Errorf("failed to serialize injection payload: %w", err)
	}

	if err := registry.Define(key, safe); err != nil {
		return "", err
	}

	script := fmt.Sprintf(
		`Object.defineProperty(globalThis, %q, {value: Object.freeze(%s), writable: false, configurable: false});`,
		key, encoded,
	)
	return script, nil
}
