package knowledge

import (
	"sort"

	"github.com/nimbusdesk/gonimbus/internal/store"
)

// LinkGraph is an adjacency view over the link collection. Nodes are
// entities keyed as "type:id"; every link contributes an edge in both
// directions weighted by its strength.
type LinkGraph struct {
	nodes map[string]GraphNode
	edges map[string]map[string]float64
}

// GraphNode identifies one entity in the graph.
type GraphNode struct {
	Key        string           `json:"key"`
	EntityType store.EntityType `json:"entityType"`
	EntityID   string           `json:"entityId"`
}

func nodeKey(t store.EntityType, id string) string {
	return string(t) + ":" + id
}

// buildGraph folds links into an adjacency structure. Parallel links
// between the same endpoints accumulate weight.
func buildGraph(links []store.KnowledgeLink) *LinkGraph {
	g := &LinkGraph{
		nodes: make(map[string]GraphNode),
		edges: make(map[string]map[string]float64),
	}
	for _, l := range links {
		src := g.ensure(l.SourceType, l.SourceID)
		dst := g.ensure(l.TargetType, l.TargetID)
		g.addEdge(src, dst, float64(l.Strength))
		g.addEdge(dst, src, float64(l.Strength))
	}
	return g
}

func (g *LinkGraph) ensure(t store.EntityType, id string) string {
	key := nodeKey(t, id)
	if _, ok := g.nodes[key]; !ok {
		g.nodes[key] = GraphNode{Key: key, EntityType: t, EntityID: id}
	}
	return key
}

func (g *LinkGraph) addEdge(from, to string, weight float64) {
	if g.edges[from] == nil {
		g.edges[from] = make(map[string]float64)
	}
	g.edges[from][to] += weight
}

// Neighbor is a graph node reached from a starting entity, with the hop
// count it was first reached at and the accumulated edge weight from its
// closest predecessor.
type Neighbor struct {
	GraphNode
	Distance int     `json:"distance"`
	Weight   float64 `json:"weight"`
}

// neighborhood walks breadth-first from a starting node up to maxDepth
// hops. The start node itself is not included. Results are ordered by
// distance, then weight descending, then key.
func (g *LinkGraph) neighborhood(startKey string, maxDepth int) []Neighbor {
	if maxDepth < 1 {
		return nil
	}
	if _, ok := g.nodes[startKey]; !ok {
		return nil
	}

	visited := map[string]bool{startKey: true}
	frontier := []string{startKey}
	var result []Neighbor

	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, key := range frontier {
			for adj, weight := range g.edges[key] {
				if visited[adj] {
					continue
				}
				visited[adj] = true
				next = append(next, adj)
				result = append(result, Neighbor{
					GraphNode: g.nodes[adj],
					Distance:  depth,
					Weight:    weight,
				})
			}
		}
		frontier = next
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Distance != result[j].Distance {
			return result[i].Distance < result[j].Distance
		}
		if result[i].Weight != result[j].Weight {
			return result[i].Weight > result[j].Weight
		}
		return result[i].Key < result[j].Key
	})
	return result
}

// centrality computes normalized degree centrality per node,
// degree / (n-1) over the undirected view.
func (g *LinkGraph) centrality() map[string]float64 {
	n := len(g.nodes)
	result := make(map[string]float64, n)
	if n <= 1 {
		for key := range g.nodes {
			result[key] = 0
		}
		return result
	}
	normalizer := float64(n - 1)
	for key := range g.nodes {
		result[key] = float64(len(g.edges[key])) / normalizer
	}
	return result
}

// Neighborhood walks the link graph outward from an entity, returning
// everything reachable within maxDepth hops, nearest first.
func (e *Engine) Neighborhood(entityType store.EntityType, id string, maxDepth int) []Neighbor {
	e.mu.Lock()
	links := make([]store.KnowledgeLink, len(e.links))
	copy(links, e.links)
	e.mu.Unlock()

	return buildGraph(links).neighborhood(nodeKey(entityType, id), maxDepth)
}

// Centrality reports normalized degree centrality for every linked
// entity, keyed as "type:id".
func (e *Engine) Centrality() map[string]float64 {
	e.mu.Lock()
	links := make([]store.KnowledgeLink, len(e.links))
	copy(links, e.links)
	e.mu.Unlock()

	return buildGraph(links).centrality()
}
