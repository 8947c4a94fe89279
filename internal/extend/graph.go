package extend

import "fmt"

// dependencyGraph is a directed graph over selector strings, used to
// detect cyclical extend chains (A extends B extends A) before the
// fixed-point rewrite in Apply runs. Adapted from the teacher's
// internal/resolver.DependencyGraph (cycle/topological-sort DFS over
// token-alias dependencies); here the nodes are component-selector
// strings and an edge from->to (added by buildExtendGraph as
// Target->Source) means "rulesets matching from also gain to in their
// selector list" (spec §4.6).
type dependencyGraph struct {
	dependencies map[string][]string
	nodes        map[string]bool
}

func newDependencyGraph() *dependencyGraph {
	return &dependencyGraph{
		dependencies: make(map[string][]string),
		nodes:        make(map[string]bool),
	}
}

func (g *dependencyGraph) addEdge(from, to string) {
	g.nodes[from] = true
	g.nodes[to] = true
	g.dependencies[from] = append(g.dependencies[from], to)
}

// hasCycle returns true if the graph contains a circular extend chain.
func (g *dependencyGraph) hasCycle() bool {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	for node := range g.nodes {
		if g.hasCycleDFS(node, visited, recStack) {
			return true
		}
	}
	return false
}

func (g *dependencyGraph) hasCycleDFS(node string, visited, recStack map[string]bool) bool {
	if recStack[node] {
		return true
	}
	if visited[node] {
		return false
	}

	visited[node] = true
	recStack[node] = true

	for _, dep := range g.dependencies[node] {
		if g.hasCycleDFS(dep, visited, recStack) {
			return true
		}
	}

	recStack[node] = false
	return false
}

// findCycle returns the cycle path if one exists, or nil.
func (g *dependencyGraph) findCycle() []string {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	var path []string

	for node := range g.nodes {
		if cycle := g.findCycleDFS(node, visited, recStack, path); cycle != nil {
			return cycle
		}
	}
	return nil
}

func (g *dependencyGraph) findCycleDFS(node string, visited, recStack map[string]bool, path []string) []string {
	if recStack[node] {
		cycleStart := -1
		for i, n := range path {
			if n == node {
				cycleStart = i
				break
			}
		}
		if cycleStart == -1 {
			panic(fmt.Sprintf("extend cycle invariant violated: %q in recStack but not in path %v", node, path))
		}
		return append(path[cycleStart:], node)
	}
	if visited[node] {
		return nil
	}

	visited[node] = true
	recStack[node] = true
	path = append(path, node)

	for _, dep := range g.dependencies[node] {
		if cycle := g.findCycleDFS(dep, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	recStack[node] = false
	return nil
}
