package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// ErrStorageFull signals that the backing medium rejected a write
// (quota exceeded or medium unavailable).
var ErrStorageFull = errors.New("store: storage medium rejected write")

// OfflineStore owns the persisted collections and the sync queue.
// A single logical mutation (mutate collection, persist, enqueue) is atomic
// from the caller's perspective: if the persist fails the enqueue does not
// run, and if the enqueue fails the collection write is rolled back.
type OfflineStore struct {
	mu  sync.Mutex
	kv  KV
	seq int64
}

// NewOfflineStore creates an offline store over the given substrate.
// The sequence counter resumes past any entries already in the queue so
// replay order stays monotonic across restarts.
func NewOfflineStore(kv KV) *OfflineStore {
	s := &OfflineStore{kv: kv}
	for _, e := range readList[SyncEntry](kv, KeySyncQueue) {
		if e.Seq > s.seq {
			s.seq = e.Seq
		}
	}
	return s
}

// readList loads a JSON array from the substrate. Malformed payloads are
// recovered by treating the collection as empty; the condition is logged
// and never propagated.
func readList[T any](kv KV, key string) []T {
	raw, ok, err := kv.Get(key)
	if err != nil || !ok || raw == "" {
		return nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("store: corrupted payload at %q, treating as empty: %v", key, err)
		return nil
	}
	return items
}

func writeList[T any](kv KV, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("store: marshal %q: %w", key, err)
	}
	return kv.Set(key, string(data))
}

// restore puts a key back to its pre-mutation value.
func (s *OfflineStore) restore(key, prev string, existed bool) {
	var err error
	if existed {
		err = s.kv.Set(key, prev)
	} else {
		err = s.kv.Delete(key)
	}
	if err != nil {
		log.Printf("store: rollback of %q failed: %v", key, err)
	}
}

func (s *OfflineStore) nextSeq() int64 {
	s.seq++
	return s.seq
}

// newOfflineID mints a locally-namespaced id. The seq component keeps ids
// distinct under fast successive calls where millis collide.
func (s *OfflineStore) newOfflineID() string {
	return fmt.Sprintf("offline_%d_%d", time.Now().UnixMilli(), s.nextSeq())
}

// ---------------------------------------------------------------------------
// Collections
// ---------------------------------------------------------------------------

// Notes returns the persisted note collection, most recent first.
func (s *OfflineStore) Notes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readList[Note](s.kv, KeyNotes)
}

// Tasks returns the persisted task collection, most recent first.
func (s *OfflineStore) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readList[Task](s.kv, KeyTasks)
}

// SaveNotes replaces the note collection wholesale (used by the reconciler
// after a merge). No queue entry is written.
func (s *OfflineStore) SaveNotes(notes []Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeList(s.kv, KeyNotes, notes)
}

// SaveTasks replaces the task collection wholesale.
func (s *OfflineStore) SaveTasks(tasks []Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeList(s.kv, KeyTasks, tasks)
}

// ---------------------------------------------------------------------------
// Note CRUD
// ---------------------------------------------------------------------------

// CreateNote persists a new offline note and enqueues a CREATE entry
// carrying the full snapshot. The returned note has its id and stamps set.
func (s *OfflineStore) CreateNote(data Note) (*Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	data.ID = s.newOfflineID()
	data.CreatedAt = now
	data.UpdatedAt = now
	data.IsOffline = true
	data.NeedsSync = true

	notes := readList[Note](s.kv, KeyNotes)
	updated := append([]Note{data}, notes...)

	if err := s.mutate(KeyNotes, updated, ActionCreate, EntityNote, data.ID, data); err != nil {
		return nil, err
	}
	return &data, nil
}

// UpdateNote merges patch over the stored note, restamps updatedAt, and
// enqueues an UPDATE entry with the merged snapshot. Returns nil (no-op,
// no queue entry) if id is not found.
func (s *OfflineStore) UpdateNote(id string, patch NotePatch) (*Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := readList[Note](s.kv, KeyNotes)
	idx := -1
	for i := range notes {
		if notes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}

	n := notes[idx]
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	if patch.Tags != nil {
		n.Tags = patch.Tags
	}
	n.UpdatedAt = time.Now()
	n.NeedsSync = true
	notes[idx] = n

	if err := s.mutate(KeyNotes, notes, ActionUpdate, EntityNote, id, n); err != nil {
		return nil, err
	}
	return &n, nil
}

// DeleteNote removes the note and enqueues a DELETE entry carrying the
// pre-delete snapshot. Returns false if id is not found.
func (s *OfflineStore) DeleteNote(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := readList[Note](s.kv, KeyNotes)
	idx := -1
	for i := range notes {
		if notes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	snapshot := notes[idx]
	updated := append(notes[:idx:idx], notes[idx+1:]...)

	if err := s.mutate(KeyNotes, updated, ActionDelete, EntityNote, id, snapshot); err != nil {
		return false, err
	}
	return true, nil
}

// ---------------------------------------------------------------------------
// Task CRUD
// ---------------------------------------------------------------------------

// CreateTask persists a new offline task and enqueues a CREATE entry.
func (s *OfflineStore) CreateTask(data Task) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	data.ID = s.newOfflineID()
	data.CreatedAt = now
	data.UpdatedAt = now
	data.IsOffline = true
	data.NeedsSync = true

	tasks := readList[Task](s.kv, KeyTasks)
	updated := append([]Task{data}, tasks...)

	if err := s.mutate(KeyTasks, updated, ActionCreate, EntityTask, data.ID, data); err != nil {
		return nil, err
	}
	return &data, nil
}

// UpdateTask merges patch over the stored task. Returns nil if not found.
func (s *OfflineStore) UpdateTask(id string, patch TaskPatch) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := readList[Task](s.kv, KeyTasks)
	idx := -1
	for i := range tasks {
		if tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}

	t := tasks[idx]
	patch.apply(&t)
	t.UpdatedAt = time.Now()
	t.NeedsSync = true
	tasks[idx] = t

	if err := s.mutate(KeyTasks, tasks, ActionUpdate, EntityTask, id, t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTask removes the task. Returns false if id is not found.
func (s *OfflineStore) DeleteTask(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := readList[Task](s.kv, KeyTasks)
	idx := -1
	for i := range tasks {
		if tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	snapshot := tasks[idx]
	updated := append(tasks[:idx:idx], tasks[idx+1:]...)

	if err := s.mutate(KeyTasks, updated, ActionDelete, EntityTask, id, snapshot); err != nil {
		return false, err
	}
	return true, nil
}

// mutate writes the collection and the matching queue entry as one unit.
// Caller must hold s.mu.
func (s *OfflineStore) mutate(key string, collection any, action SyncAction, entity EntityType, entityID string, snapshot any) error {
	prev, existed, err := s.kv.Get(key)
	if err != nil {
		return fmt.Errorf("store: read %q: %w", key, err)
	}

	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("store: marshal %q: %w", key, err)
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("store: persist %q: %w", key, err)
	}

	if _, err := s.enqueueLocked(action, entity, entityID, snapshot); err != nil {
		s.restore(key, prev, existed)
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Sync queue
// ---------------------------------------------------------------------------

// Enqueue appends a mutation record to the outbox and returns it.
func (s *OfflineStore) Enqueue(action SyncAction, entity EntityType, entityID string, snapshot any) (*SyncEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enqueueLocked(action, entity, entityID, snapshot)
}

func (s *OfflineStore) enqueueLocked(action SyncAction, entity EntityType, entityID string, snapshot any) (*SyncEntry, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("store: marshal sync snapshot: %w", err)
	}

	seq := s.nextSeq()
	entry := SyncEntry{
		ID:        fmt.Sprintf("sync_%d_%d", time.Now().UnixMilli(), seq),
		Seq:       seq,
		Timestamp: time.Now(),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Data:      data,
	}

	queue := readList[SyncEntry](s.kv, KeySyncQueue)
	queue = append(queue, entry)
	if err := writeList(s.kv, KeySyncQueue, queue); err != nil {
		s.seq-- // give the seq back, nothing was recorded
		return nil, fmt.Errorf("store: enqueue: %w", err)
	}
	return &entry, nil
}

// Queue returns pending entries in enqueue (FIFO) order. Multiple queued
// mutations for the same entity are all retained; replay order must equal
// enqueue order.
func (s *OfflineStore) Queue() []SyncEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readList[SyncEntry](s.kv, KeySyncQueue)
}

// RemoveQueueEntry deletes a confirmed entry. Returns false if absent.
func (s *OfflineStore) RemoveQueueEntry(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := readList[SyncEntry](s.kv, KeySyncQueue)
	idx := -1
	for i := range queue {
		if queue[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	queue = append(queue[:idx:idx], queue[idx+1:]...)
	if err := writeList(s.kv, KeySyncQueue, queue); err != nil {
		return false, err
	}
	return true, nil
}

// ClearQueue drops every pending entry.
func (s *OfflineStore) ClearQueue() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeList(s.kv, KeySyncQueue, []SyncEntry{})
}

// ---------------------------------------------------------------------------
// Flags and auxiliary keys
// ---------------------------------------------------------------------------

// LastSync returns the recorded last successful sync time.
func (s *OfflineStore) LastSync() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(KeyLastSync)
	if err != nil || !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		log.Printf("store: corrupted %q, ignoring: %v", KeyLastSync, err)
		return time.Time{}, false
	}
	return t, true
}

// SetLastSync records the last successful sync time.
func (s *OfflineStore) SetLastSync(t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.kv.Set(KeyLastSync, t.Format(time.RFC3339))
}

// OfflineMode reports whether the app was flagged as disconnected.
func (s *OfflineStore) OfflineMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(KeyOfflineMode)
	return err == nil && ok && raw == "true"
}

// SetOfflineMode flags connectivity state.
func (s *OfflineStore) SetOfflineMode(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if enabled {
		return s.kv.Set(KeyOfflineMode, "true")
	}
	return s.kv.Set(KeyOfflineMode, "false")
}

// BehaviorProfile loads the learned scheduling profile.
func (s *OfflineStore) BehaviorProfile() BehaviorProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(KeyBehavior)
	if err != nil || !ok {
		return BehaviorProfile{}
	}
	var p BehaviorProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Printf("store: corrupted %q, resetting profile: %v", KeyBehavior, err)
		return BehaviorProfile{}
	}
	return p
}

// SaveBehaviorProfile persists the profile.
func (s *OfflineStore) SaveBehaviorProfile(p BehaviorProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("store: marshal behavior profile: %w", err)
	}
	return s.kv.Set(KeyBehavior, string(data))
}

// RecentTasks returns the short history used for context-switch scoring.
func (s *OfflineStore) RecentTasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readList[Task](s.kv, KeyRecentTasks)
}

// PushRecentTask records a task the user just worked on, keeping the five
// most recent.
func (s *OfflineStore) PushRecentTask(t Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent := readList[Task](s.kv, KeyRecentTasks)
	recent = append([]Task{t}, recent...)
	if len(recent) > 5 {
		recent = recent[:5]
	}
	return writeList(s.kv, KeyRecentTasks, recent)
}

// Links loads the knowledge-link collection for the graph engine.
func (s *OfflineStore) Links() []KnowledgeLink {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readList[KnowledgeLink](s.kv, KeyLinks)
}

// SaveLinks persists the knowledge-link collection.
func (s *OfflineStore) SaveLinks(links []KnowledgeLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeList(s.kv, KeyLinks, links)
}

// ---------------------------------------------------------------------------
// Patches
// ---------------------------------------------------------------------------

// NotePatch is a partial note update. Nil fields are left unchanged.
type NotePatch struct {
	Title   *string
	Content *string
	Tags    []string
}

// TaskPatch is a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title             *string
	Priority          *string
	DueDate           *time.Time
	EstimatedDuration *int
	Category          *string
	Tags              []string
	Dependencies      []string
	ScheduledTime     *time.Time
	ScheduledEndTime  *time.Time
	AutoScheduled     *bool
	SchedulingReason  *string
	SchedulingScore   *float64
	Completed         *bool
}

func (p TaskPatch) apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.EstimatedDuration != nil {
		t.EstimatedDuration = *p.EstimatedDuration
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Tags != nil {
		t.Tags = p.Tags
	}
	if p.Dependencies != nil {
		t.Dependencies = p.Dependencies
	}
	if p.ScheduledTime != nil {
		t.ScheduledTime = p.ScheduledTime
	}
	if p.ScheduledEndTime != nil {
		t.ScheduledEndTime = p.ScheduledEndTime
	}
	if p.AutoScheduled != nil {
		t.AutoScheduled = *p.AutoScheduled
	}
	if p.SchedulingReason != nil {
		t.SchedulingReason = *p.SchedulingReason
	}
	if p.SchedulingScore != nil {
		t.SchedulingScore = *p.SchedulingScore
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
