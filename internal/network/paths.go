package network

// Path is an alternating Species, Reaction, ..., Species node sequence.
type Path []Node

// IDs returns the node IDs along the path.
func (p Path) IDs() []string {
	ids := make([]string, len(p))
	for i, n := range p {
		ids[i] = n.ID()
	}
	return ids
}

// pathSearch is the state of a backtracking depth-first search for all
// simple paths between two nodes.
type pathSearch struct {
	g       *Graph
	visited map[Node]bool
	path    []Node
	paths   []Path
}

// AllSimplePaths returns every simple path (no repeated nodes) from source
// to target, in deterministic traversal order. Enumeration is exhaustive and
// exponential in the worst case; model-sized graphs keep it tractable.
// Unknown nodes or source == target yield no paths.
func (g *Graph) AllSimplePaths(source, target Node) []Path {
	if !g.members[source] || !g.members[target] || source == target {
		return nil
	}
	s := &pathSearch{
		g:       g,
		visited: map[Node]bool{source: true},
		path:    []Node{source},
	}
	s.run(source, target)
	return s.paths
}

func (s *pathSearch) run(u, target Node) {
	for _, n := range s.g.succ[u] {
		if s.visited[n] {
			continue
		}
		s.path = append(s.path, n)
		if n == target {
			// Complete path; copy it out of the shared backtracking slice.
			p := make(Path, len(s.path))
			copy(p, s.path)
			s.paths = append(s.paths, p)
		} else {
			s.visited[n] = true
			s.run(n, target)
			s.visited[n] = false
		}
		s.path = s.path[:len(s.path)-1]
	}
}
