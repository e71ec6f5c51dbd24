// Copyright © 2024 compgraph authors. All rights reserved.

package compgraph

// stage is one link of a Graph's pipeline, applied in order to the
// stream produced by whatever precedes it. Mirrors graph.py's
// (operation, args) pairs pushed by push_operations.
type stage interface {
	apply(upstream RowStream, b Bindings) (RowStream, error)
}

// Graph is an ordered pipeline of stages rooted at a single source —
// spec.md §2's computational graph. Every builder method appends one
// stage to the receiver in place and returns that same *Graph, matching
// graph.py's fluent self-returning builder methods (map/reduce/sort/join).
// Execute never modifies the graph, so a built Graph can be re-Execute'd.
type Graph struct {
	source source
	stages []stage
}

// FromIterator returns a Graph whose source is the row sequence bound
// to name at Execute time (Bindings.lookup via WithIterator).
func FromIterator(name string) *Graph {
	return &Graph{source: source{name: name}}
}

// FromFile returns a Graph whose source is the file bound to name at
// Execute time (WithFile), parsed line-by-line with parser.
func FromFile(name string, parser RowParser) *Graph {
	return &Graph{source: source{name: name, parser: parser}}
}

// Map appends a Map stage using m.
func (g *Graph) Map(m RowMapper) *Graph {
	g.stages = append(g.stages, mapStage{m: m})
	return g
}

// Reduce appends a Group-Reduce stage using r, grouping by keys. The
// upstream must already be ordered by keys — compose with Sort(keys)
// first when it isn't.
func (g *Graph) Reduce(r RowReducer, keys []string) *Graph {
	g.stages = append(g.stages, reduceStage{r: r, keys: keys})
	return g
}

// SortBy appends a Sort stage ordering the stream by keys.
func (g *Graph) SortBy(keys []string, opts SortOptions) *Graph {
	g.stages = append(g.stages, sortStage{keys: keys, opts: opts})
	return g
}

// Join appends a Join stage combining this graph's stream so far with
// other's stream (other is executed against the same Bindings passed
// to Execute, every time this stage runs), on keys, using j.
func (g *Graph) Join(j RowJoiner, other *Graph, keys []string) *Graph {
	g.stages = append(g.stages, joinStage{j: j, other: other, keys: keys})
	return g
}

// Execute runs the graph against b, returning a lazily-evaluated
// RowStream. The caller must Close the returned stream once done with
// it (or after draining it fully) to release any file handles or sort
// spill files held by the pipeline — mirrors graph.py's run(**kwargs),
// generalized from an eager generator to compgraph's pull model.
func (g *Graph) Execute(b Bindings) (RowStream, error) {
	s, err := g.source.open(b)
	if err != nil {
		return nil, err
	}
	for _, st := range g.stages {
		s, err = st.apply(s, b)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

type mapStage struct{ m RowMapper }

func (st mapStage) apply(upstream RowStream, _ Bindings) (RowStream, error) {
	return NewMapStream(upstream, st.m), nil
}

type reduceStage struct {
	r    RowReducer
	keys []string
}

func (st reduceStage) apply(upstream RowStream, _ Bindings) (RowStream, error) {
	return NewReduceStream(upstream, st.keys, st.r), nil
}

type sortStage struct {
	keys []string
	opts SortOptions
}

func (st sortStage) apply(upstream RowStream, _ Bindings) (RowStream, error) {
	return Sort(upstream, st.keys, st.opts), nil
}

type joinStage struct {
	j     RowJoiner
	other *Graph
	keys  []string
}

func (st joinStage) apply(upstream RowStream, b Bindings) (RowStream, error) {
	right, err := st.other.Execute(b)
	if err != nil {
		return nil, err
	}
	return NewJoinStream(upstream, right, st.keys, st.j), nil
}
