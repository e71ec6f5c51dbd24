// Copyright © 2024 compgraph authors. All rights reserved.

// Package reducer provides the Reducer capability interface and the
// built-in group reductions spec.md §4 names.
package reducer

import "github.com/dkovalenko/compgraph"

// Reducer receives one contiguous group at a time — the group's key
// column names (not their values; every row in the group carries the
// same values for these columns, and a reducer reads them off the rows
// itself when it needs them) and a RowStream over the group's rows — and
// emits zero or more rows. A reducer must consume its input lazily and
// may stop before exhausting it; spec.md §4.5 requires Group-Reduce to
// discard whatever the reducer left unread before moving to the next
// group, not the reducer itself.
type Reducer interface {
	Apply(keys []string, rows compgraph.RowStream) compgraph.RowStream
}
