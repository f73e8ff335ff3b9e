// Package semantic stores embedding vectors for notes and tasks and
// answers nearest-neighbor queries over them. Embeddings are produced
// by the host application; this package only indexes and persists them.
package semantic

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/fogfish/hnsw"
	"github.com/fogfish/hnsw/vector"
	"github.com/hack-pad/hackpadfs"
	kvector "github.com/kshard/vector"
)

// Index is an HNSW index over cosine distance, keyed by entity id.
// HNSW keys are numeric, so string entity ids are mapped through an
// internal table that persists alongside the graph.
type Index struct {
	mu     sync.RWMutex
	index  *hnsw.HNSW[vector.VF32]
	fs     hackpadfs.FS
	path   string
	nextID uint32
	byKey  map[uint32]string
	byID   map[string]uint32
}

// snapshot is the on-disk form: the HNSW node set plus the id table.
type snapshot struct {
	Nodes  hnsw.Nodes[vector.VF32]
	ByKey  map[uint32]string
	NextID uint32
}

// Open loads the index at path, or starts an empty one when no file
// exists there yet.
func Open(fs hackpadfs.FS, path string) (*Index, error) {
	idx := &Index{
		fs:    fs,
		path:  path,
		byKey: make(map[uint32]string),
		byID:  make(map[string]uint32),
	}
	if err := idx.load(); err != nil {
		idx.index = hnsw.New[vector.VF32](vector.SurfaceVF32(kvector.Cosine()))
	}
	return idx, nil
}

// Add indexes an embedding under an entity id. Re-adding an id inserts
// a new point for it; searches resolve to the id either way.
func (x *Index) Add(id string, vec []float32) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.index.Size() > 0 {
		if dim := len(x.index.Head().Vec); len(vec) != dim {
			return fmt.Errorf("add %q: vector dimension mismatch: expected %d, got %d", id, dim, len(vec))
		}
	}

	key, ok := x.byID[id]
	if !ok {
		key = x.nextID
		x.nextID++
		x.byID[id] = key
		x.byKey[key] = id
	}
	x.index.Insert(vector.VF32{Key: key, Vec: vec})
	return nil
}

// Search returns the ids of the k entities nearest to vec, closest
// first. Duplicate hits from re-added ids collapse to one result.
func (x *Index) Search(vec []float32, k int) ([]string, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.index.Size() == 0 {
		return nil, nil
	}
	if dim := len(x.index.Head().Vec); len(vec) != dim {
		return nil, fmt.Errorf("search: vector dimension mismatch: expected %d, got %d", dim, len(vec))
	}

	ef := k * 2
	if ef < 100 {
		ef = 100
	}
	results := x.index.Search(vector.VF32{Vec: vec}, k, ef)

	seen := make(map[string]bool, len(results))
	ids := make([]string, 0, len(results))
	for _, r := range results {
		id, ok := x.byKey[r.Key]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// Size reports the number of indexed points.
func (x *Index) Size() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.index.Size()
}

// Save persists the graph and id table.
func (x *Index) Save() error {
	x.mu.Lock()
	defer x.mu.Unlock()

	snap := snapshot{
		Nodes:  x.index.Nodes(),
		ByKey:  x.byKey,
		NextID: x.nextID,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err := hackpadfs.WriteFullFile(x.fs, x.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write index file: %w", err)
	}
	return nil
}

func (x *Index) load() error {
	content, err := hackpadfs.ReadFile(x.fs, x.path)
	if err != nil {
		return err
	}

	var snap snapshot
	if err := gob.NewDecoder(bytes.NewReader(content)).Decode(&snap); err != nil {
		return fmt.Errorf("decode index: %w", err)
	}

	x.index = hnsw.FromNodes[vector.VF32](vector.SurfaceVF32(kvector.Cosine()), snap.Nodes)
	x.byKey = snap.ByKey
	x.nextID = snap.NextID
	x.byID = make(map[string]uint32, len(snap.ByKey))
	for key, id := range snap.ByKey {
		x.byID[id] = key
	}
	return nil
}
