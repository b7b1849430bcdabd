// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package snip

import "nickandperla.net/snip/internal/stdlib"

// DefaultPrelude contains the standard library definitions that are
// automatically loaded unless WithNoStdlib is given.
var DefaultPrelude = stdlib.Prelude

// preludeName is the stored definition that overrides the prelude source.
const preludeName = "__prelude__"
