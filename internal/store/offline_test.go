package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyKV wraps a KV and fails writes to one configured key.
// Simulates quota exhaustion mid-mutation.
type flakyKV struct {
	KV
	failKey string
}

func (f *flakyKV) Set(key, value string) error {
	if key == f.failKey {
		return fmt.Errorf("set %q: %w", key, ErrStorageFull)
	}
	return f.KV.Set(key, value)
}

func strPtr(s string) *string { return &s }

// =============================================================================
// Note / Task CRUD
// =============================================================================

func TestCreateNoteStampsAndEnqueues(t *testing.T) {
	s := NewOfflineStore(NewMemKV())

	n, err := s.CreateNote(Note{Title: "Meeting prep", Content: "agenda items", Tags: []string{"work"}})
	require.NoError(t, err)
	require.NotNil(t, n)

	assert.Contains(t, n.ID, "offline_", "local ids are namespaced")
	assert.True(t, n.IsOffline)
	assert.True(t, n.NeedsSync)
	assert.False(t, n.CreatedAt.IsZero())
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)

	queue := s.Queue()
	require.Len(t, queue, 1)
	assert.Equal(t, ActionCreate, queue[0].Action)
	assert.Equal(t, EntityNote, queue[0].Entity)
	assert.Equal(t, n.ID, queue[0].EntityID)

	var snapshot Note
	require.NoError(t, json.Unmarshal(queue[0].Data, &snapshot))
	assert.Equal(t, "Meeting prep", snapshot.Title)
}

func TestCreatePrependsMostRecentFirst(t *testing.T) {
	s := NewOfflineStore(NewMemKV())

	first, err := s.CreateNote(Note{Title: "first"})
	require.NoError(t, err)
	second, err := s.CreateNote(Note{Title: "second"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID, "ids stay distinct under fast successive calls")

	notes := s.Notes()
	require.Len(t, notes, 2)
	assert.Equal(t, "second", notes[0].Title)
	assert.Equal(t, "first", notes[1].Title)
}

func TestUpdateNoteMergesPatch(t *testing.T) {
	s := NewOfflineStore(NewMemKV())

	n, err := s.CreateNote(Note{Title: "draft", Content: "v1", Tags: []string{"a"}})
	require.NoError(t, err)

	updated, err := s.UpdateNote(n.ID, NotePatch{Content: strPtr("v2")})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "draft", updated.Title, "unpatched fields survive")
	assert.Equal(t, "v2", updated.Content)
	assert.Equal(t, []string{"a"}, updated.Tags)
	assert.True(t, updated.NeedsSync)
	assert.False(t, updated.UpdatedAt.Before(n.UpdatedAt))

	queue := s.Queue()
	require.Len(t, queue, 2)
	assert.Equal(t, ActionUpdate, queue[1].Action)
}

func TestUpdateMissingIsNoop(t *testing.T) {
	s := NewOfflineStore(NewMemKV())

	updated, err := s.UpdateNote("nope", NotePatch{Title: strPtr("x")})
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.Empty(t, s.Queue(), "no queue entry for a missed update")

	task, err := s.UpdateTask("nope", TaskPatch{Title: strPtr("x")})
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestDeleteCarriesSnapshot(t *testing.T) {
	s := NewOfflineStore(NewMemKV())

	task, err := s.CreateTask(Task{Title: "write report", Priority: PriorityHigh})
	require.NoError(t, err)

	ok, err := s.DeleteTask(task.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, s.Tasks())

	queue := s.Queue()
	require.Len(t, queue, 2)
	assert.Equal(t, ActionDelete, queue[1].Action)

	var snapshot Task
	require.NoError(t, json.Unmarshal(queue[1].Data, &snapshot))
	assert.Equal(t, "write report", snapshot.Title, "delete entry carries pre-delete snapshot")

	ok, err = s.DeleteTask(task.ID)
	require.NoError(t, err)
	assert.False(t, ok, "second delete reports not found")
}

// =============================================================================
// Queue ordering and atomicity
// =============================================================================

func TestQueueFIFOOrder(t *testing.T) {
	s := NewOfflineStore(NewMemKV())

	for i := 0; i < 5; i++ {
		_, err := s.Enqueue(ActionUpdate, EntityTask, fmt.Sprintf("t%d", i), map[string]int{"i": i})
		require.NoError(t, err)
	}

	queue := s.Queue()
	require.Len(t, queue, 5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, fmt.Sprintf("t%d", i), queue[i].EntityID)
		if i > 0 {
			assert.Greater(t, queue[i].Seq, queue[i-1].Seq, "seq is strictly monotonic")
		}
	}
}

func TestQueueOrderSurvivesReopen(t *testing.T) {
	kv := NewMemKV()
	s := NewOfflineStore(kv)
	_, err := s.Enqueue(ActionCreate, EntityNote, "n1", nil)
	require.NoError(t, err)
	_, err = s.Enqueue(ActionUpdate, EntityNote, "n1", nil)
	require.NoError(t, err)

	// Reopen over the same substrate; new entries continue the sequence.
	reopened := NewOfflineStore(kv)
	_, err = reopened.Enqueue(ActionDelete, EntityNote, "n1", nil)
	require.NoError(t, err)

	queue := reopened.Queue()
	require.Len(t, queue, 3)
	assert.Equal(t, ActionCreate, queue[0].Action)
	assert.Equal(t, ActionUpdate, queue[1].Action)
	assert.Equal(t, ActionDelete, queue[2].Action)
	assert.Greater(t, queue[2].Seq, queue[1].Seq)
}

func TestRemoveAndClearQueue(t *testing.T) {
	s := NewOfflineStore(NewMemKV())

	e1, err := s.Enqueue(ActionCreate, EntityNote, "n1", nil)
	require.NoError(t, err)
	_, err = s.Enqueue(ActionCreate, EntityNote, "n2", nil)
	require.NoError(t, err)

	ok, err := s.RemoveQueueEntry(e1.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, s.Queue(), 1)

	ok, err = s.RemoveQueueEntry("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.ClearQueue())
	assert.Empty(t, s.Queue())
}

func TestMutationRollsBackWhenEnqueueFails(t *testing.T) {
	inner := NewMemKV()
	s := NewOfflineStore(&flakyKV{KV: inner, failKey: KeySyncQueue})

	_, err := s.CreateNote(Note{Title: "doomed"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageFull)

	// The collection write must have been rolled back: no orphaned note
	// without a matching queue entry.
	assert.Empty(t, s.Notes())
	assert.Empty(t, s.Queue())
}

func TestMutationSkipsEnqueueWhenPersistFails(t *testing.T) {
	inner := NewMemKV()
	s := NewOfflineStore(&flakyKV{KV: inner, failKey: KeyTasks})

	_, err := s.CreateTask(Task{Title: "doomed"})
	require.Error(t, err)
	assert.Empty(t, s.Queue(), "no queue entry referencing un-persisted state")
}

// =============================================================================
// Corruption recovery
// =============================================================================

func TestCorruptedCollectionRecoversAsEmpty(t *testing.T) {
	kv := NewMemKV()
	require.NoError(t, kv.Set(KeyNotes, "{not json"))
	require.NoError(t, kv.Set(KeySyncQueue, "also broken"))

	s := NewOfflineStore(kv)
	assert.Empty(t, s.Notes())
	assert.Empty(t, s.Queue())

	// The store keeps working after recovery.
	n, err := s.CreateNote(Note{Title: "fresh start"})
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Len(t, s.Notes(), 1)
}

// =============================================================================
// Flags, profile, recents
// =============================================================================

func TestOfflineModeAndLastSync(t *testing.T) {
	s := NewOfflineStore(NewMemKV())

	assert.False(t, s.OfflineMode())
	require.NoError(t, s.SetOfflineMode(true))
	assert.True(t, s.OfflineMode())

	_, ok := s.LastSync()
	assert.False(t, ok)

	when := time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)
	require.NoError(t, s.SetLastSync(when))
	got, ok := s.LastSync()
	require.True(t, ok)
	assert.True(t, got.Equal(when))

	require.NoError(t, s.SetOfflineMode(false))
	assert.False(t, s.OfflineMode())
}

// The flag accessors share the store mutex with every other operation,
// so concurrent use must stay race-free.
func TestOfflineFlagsConcurrentAccess(t *testing.T) {
	s := NewOfflineStore(NewMemKV())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.SetOfflineMode(i%2 == 0))
			s.OfflineMode()
			assert.NoError(t, s.SetLastSync(time.Date(2026, 3, 10, i, 0, 0, 0, time.UTC)))
			s.LastSync()
			_, err := s.CreateNote(Note{Title: "concurrent"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Notes(), 8)
	_, ok := s.LastSync()
	assert.True(t, ok)
}

func TestBehaviorProfileRoundTrip(t *testing.T) {
	s := NewOfflineStore(NewMemKV())

	p := BehaviorProfile{
		DurationByPriority: map[string]int{PriorityHigh: 45},
		ProductivityHours:  map[int]int{9: 3, 14: 1},
	}
	require.NoError(t, s.SaveBehaviorProfile(p))

	loaded := s.BehaviorProfile()
	assert.Equal(t, 45, loaded.DurationByPriority[PriorityHigh])
	assert.Equal(t, 3, loaded.ProductivityHours[9])
}

func TestRecentTasksCapped(t *testing.T) {
	s := NewOfflineStore(NewMemKV())

	for i := 0; i < 7; i++ {
		require.NoError(t, s.PushRecentTask(Task{ID: fmt.Sprintf("t%d", i)}))
	}

	recent := s.RecentTasks()
	require.Len(t, recent, 5)
	assert.Equal(t, "t6", recent[0].ID, "newest first")
}
