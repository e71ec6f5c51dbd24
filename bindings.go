// Copyright © 2024 compgraph authors. All rights reserved.

package compgraph

// Bindings maps a graph's named data sources (set up by FromIterator/
// FromFile at graph-construction time) to the actual data supplied at
// Execute time — the Go equivalent of graph.py's run(**kwargs): a
// source stage is declared once, by name, and bound to its data only
// when the graph runs, so the same graph can be replayed against
// different inputs (and so a Join's right-hand graph can be executed
// again, against the same Bindings, each time Execute needs it).
type Bindings map[string]Binding

// Binding supplies the data for one named source. Exactly one of
// Rows/Path is meaningful, matching how the source stage that declared
// the name was built (FromIterator or FromFile); binding the wrong kind
// fails with MissingBinding when the graph runs.
type Binding struct {
	rows     []Row
	path     string
	isPath   bool
}

// WithIterator binds name to an in-memory sequence of rows.
func WithIterator(rows []Row) Binding {
	return Binding{rows: rows}
}

// WithFile binds name to a file path, to be read with the parser the
// source stage was built with.
func WithFile(path string) Binding {
	return Binding{path: path, isPath: true}
}

func (b Bindings) lookup(name string) (Binding, error) {
	v, ok := b[name]
	if !ok {
		return Binding{}, NewError(MissingBinding, "no binding for source "+name)
	}
	return v, nil
}
