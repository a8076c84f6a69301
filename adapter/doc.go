// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package adapter decides, per execution context, how server and client
values are sourced and validated.

Three variants implement one interface:

  - Server validates both groups synchronously against the raw environment.
  - Client never resolves server values and reads client values lazily from
    the injection channel.
  - Edge behaves like Server today; it is a distinct type so edge-specific
    restrictions can diverge without an interface change.

ForContext maps a detected execution context to its adapter. Callers can
also construct an adapter directly as an escape hatch for testing or forced
contexts.
*/
package adapter
