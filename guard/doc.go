// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package guard wraps a merged value set in an access-control layer that
blocks client-side reads of server-only values.

Go has no transparent property interception, so the guard surfaces as an
explicit accessor: callers read through Get instead of field syntax. The
enforcement guarantee is the same. Every read evaluates the policy, and
server-only values are categorically unreachable from a client context:

	acc := guard.Wrap(merged, serverKeys, guard.WithContext(execctx.Client))

	v, err := acc.Get("NEXT_PUBLIC_API_URL") // ok
	_, err = acc.Get("DATABASE_URL")         // *SecurityError

Enumeration is held to the same standard: Keys and Has never reveal
server-only names under a guarded accessor, even though the underlying
value set contains them.

Under server and edge contexts the accessor is unguarded: server code is
always entitled to read everything. Guarded or not is decided once at
construction.
*/
package guard
