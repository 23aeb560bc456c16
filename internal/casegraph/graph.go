package casegraph

import "sort"

// FindCycle reports a cycle in the case index graph, if one exists. Edges map
// a case id to the case ids it indexes. The returned slice walks the cycle in
// order; nil means the graph is acyclic. Iteration order is made deterministic
// so repeated checks over the same graph report the same cycle.
func FindCycle(edges map[string][]string) []string {
	const (
		white = iota // unvisited
		gray         // on the current DFS path
		black        // fully explored
	)

	color := make(map[string]int, len(edges))
	parent := make(map[string]string)

	nodes := make([]string, 0, len(edges))
	for node := range edges {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	var cycleStart, cycleEnd string

	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = gray
		for _, next := range edges[node] {
			if color[next] == gray {
				cycleStart, cycleEnd = next, node
				return true
			}
			if color[next] == white {
				parent[next] = node
				if visit(next) {
					return true
				}
			}
		}
		color[node] = black
		return false
	}

	for _, node := range nodes {
		if color[node] == white && visit(node) {
			var cycle []string
			for at := cycleEnd; at != cycleStart; at = parent[at] {
				cycle = append(cycle, at)
			}
			cycle = append(cycle, cycleStart)
			// Reverse into path order.
			for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
				cycle[i], cycle[j] = cycle[j], cycle[i]
			}
			return cycle
		}
	}
	return nil
}
