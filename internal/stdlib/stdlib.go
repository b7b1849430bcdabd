// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package stdlib embeds the snip prelude.
package stdlib

import _ "embed"

// Prelude is the snip source loaded into every runtime unless disabled.
//
//go:embed prelude.snip
var Prelude string
