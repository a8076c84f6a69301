// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package inject carries client-safe values from server-side computation to
browser-side read access through a well-known global location.

# Write Side

Render runs on the server. It sanitizes keys, drops values unsafe for
script embedding, JSON-encodes the survivors, seals the payload into the
Registry, and returns the script text the UI-framework collaborator embeds
in the page:

	script, err := inject.Render(inject.Default, "", clientValues)

The script defines the payload as a non-writable, non-configurable frozen
property, making it tamper-resistant after injection.

# Read Side

A Reader resolves the channel lazily on first access and caches the
outcome. When the payload is absent, development mode falls back to
public-prefixed names from a secondary raw source with a warning;
production fails with ErrNotInitialized. An unsealed payload is reported
as a tampering signal in development but never blocks access.

# Namespaces

ChannelKey derives the global property name from an optional namespace, so
multiple independent configurations coexist without collision:

	inject.ChannelKey("")      // "__ENVGUARD"
	inject.ChannelKey("admin") // "__ENVGUARD_admin"
*/
package inject
