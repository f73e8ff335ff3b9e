package store

import (
	"sort"
	"time"
)

// MergeServerAndLocal unions a server-fetched collection with the local
// (possibly offline-created) one. An item counts as already online when its
// id matches a server item, or when a server item carries a tempId matching
// the local id. Offline-only items are appended, then the whole sequence is
// ordered most-recently-modified first, falling back to creation time.
//
// The merge is deterministic: the same two input snapshots always produce
// the same output (stable sort, stable iteration over input order).
func MergeServerAndLocal[T Syncable](server, local []T) []T {
	merged := make([]T, 0, len(server)+len(local))
	merged = append(merged, server...)

	online := make(map[string]bool, len(server)*2)
	for _, item := range server {
		online[item.EntityID()] = true
		if tmp := item.EntityTempID(); tmp != "" {
			online[tmp] = true
		}
	}

	for _, item := range local {
		if online[item.EntityID()] {
			continue
		}
		merged = append(merged, item)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return mergeKey(merged[i]).After(mergeKey(merged[j]))
	})
	return merged
}

func mergeKey[T Syncable](item T) time.Time {
	if m := item.ModifiedTime(); !m.IsZero() {
		return m
	}
	return item.CreatedTime()
}
