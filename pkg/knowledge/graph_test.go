package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbusdesk/gonimbus/internal/store"
)

func linkEntities(t *testing.T, e *Engine, pairs [][2]string) {
	t.Helper()
	for _, p := range pairs {
		_, err := e.CreateLink(store.EntityNote, p[0], store.EntityNote, p[1], "note-note", nil)
		require.NoError(t, err)
	}
}

func TestNeighborhoodByDepth(t *testing.T) {
	e, _ := newTestEngine(t)
	// a - b - c - d, plus a - x
	linkEntities(t, e, [][2]string{
		{"a", "b"},
		{"b", "c"},
		{"c", "d"},
		{"a", "x"},
	})

	oneHop := e.Neighborhood(store.EntityNote, "a", 1)
	require.Len(t, oneHop, 2)
	assert.Equal(t, "b", oneHop[0].EntityID)
	assert.Equal(t, "x", oneHop[1].EntityID)
	for _, n := range oneHop {
		assert.Equal(t, 1, n.Distance)
	}

	twoHops := e.Neighborhood(store.EntityNote, "a", 2)
	require.Len(t, twoHops, 3)
	assert.Equal(t, 2, twoHops[2].Distance)
	assert.Equal(t, "c", twoHops[2].EntityID)

	all := e.Neighborhood(store.EntityNote, "a", 10)
	assert.Len(t, all, 4, "whole component reachable")
}

func TestNeighborhoodWeightOrdering(t *testing.T) {
	e, _ := newTestEngine(t)
	linkEntities(t, e, [][2]string{
		{"hub", "weak"},
		{"hub", "strong"},
		{"hub", "strong"}, // reinforcement, strength 2
	})

	neighbors := e.Neighborhood(store.EntityNote, "hub", 1)
	require.Len(t, neighbors, 2)
	assert.Equal(t, "strong", neighbors[0].EntityID)
	assert.Equal(t, float64(2), neighbors[0].Weight)
	assert.Equal(t, "weak", neighbors[1].EntityID)
}

func TestNeighborhoodUnknownStart(t *testing.T) {
	e, _ := newTestEngine(t)
	linkEntities(t, e, [][2]string{{"a", "b"}})

	assert.Nil(t, e.Neighborhood(store.EntityNote, "ghost", 3))
	assert.Nil(t, e.Neighborhood(store.EntityNote, "a", 0))
}

func TestCentrality(t *testing.T) {
	e, _ := newTestEngine(t)
	// Star: hub touches three leaves.
	linkEntities(t, e, [][2]string{
		{"hub", "l1"},
		{"hub", "l2"},
		{"hub", "l3"},
	})

	c := e.Centrality()
	require.Len(t, c, 4)
	assert.InDelta(t, 1.0, c["note:hub"], 1e-9)
	assert.InDelta(t, 1.0/3.0, c["note:l1"], 1e-9)
}

func TestCentralitySingleNodeGraph(t *testing.T) {
	e, _ := newTestEngine(t)
	c := e.Centrality()
	assert.Empty(t, c)
}
