// Package store provides offline-first persistence for the GoNimbus core.
// This is the unified data layer replacing localStorage access in TypeScript.
package store

import (
	"encoding/json"
	"time"
)

// Storage keys used by the offline store. The hosting SPA reads the same
// keys, so the names match the TypeScript client exactly.
const (
	KeyNotes       = "offline_notes"
	KeyTasks       = "offline_tasks"
	KeySyncQueue   = "sync_queue"
	KeyLastSync    = "last_sync_timestamp"
	KeyOfflineMode = "offline_mode_enabled"
	KeyLinks       = "knowledge_links"
	KeyBehavior    = "user_behavior"
	KeyRecentTasks = "recent_tasks"
)

// EntityType identifies a content collection.
type EntityType string

const (
	EntityNote       EntityType = "note"
	EntityTask       EntityType = "task"
	EntityDictionary EntityType = "dictionary"
	EntityDocument   EntityType = "document"
	EntityReminder   EntityType = "reminder"
)

// Priority levels for tasks.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// SyncAction is the kind of mutation recorded in the sync queue.
type SyncAction string

const (
	ActionCreate SyncAction = "CREATE"
	ActionUpdate SyncAction = "UPDATE"
	ActionDelete SyncAction = "DELETE"
)

// Note is a persisted note record.
type Note struct {
	ID        string    `json:"id"`
	TempID    string    `json:"tempId,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	IsOffline bool      `json:"isOffline,omitempty"`
	NeedsSync bool      `json:"needsSync,omitempty"`
}

// Recurrence describes a repeating task pattern.
// Interval defaults to 1 when zero.
type Recurrence struct {
	Type     string `json:"type"` // daily | weekly | monthly | yearly
	Interval int    `json:"interval,omitempty"`
}

// Task is a persisted task record.
type Task struct {
	ID                  string      `json:"id"`
	TempID              string      `json:"tempId,omitempty"`
	Title               string      `json:"title"`
	Priority            string      `json:"priority,omitempty"` // urgent | high | medium | low
	DueDate             *time.Time  `json:"dueDate,omitempty"`
	EstimatedDuration   int         `json:"estimatedDuration,omitempty"` // minutes
	Category            string      `json:"category,omitempty"`
	Tags                []string    `json:"tags,omitempty"`
	Dependencies        []string    `json:"dependencies,omitempty"` // task IDs this task waits on
	ScheduledTime       *time.Time  `json:"scheduledTime,omitempty"`
	ScheduledEndTime    *time.Time  `json:"scheduledEndTime,omitempty"`
	AutoScheduled       bool        `json:"autoScheduled,omitempty"`
	SchedulingReason    string      `json:"schedulingReason,omitempty"`
	SchedulingScore     float64     `json:"schedulingScore,omitempty"`
	Completed           bool        `json:"completed,omitempty"`
	Recurrence          *Recurrence `json:"recurrence,omitempty"`
	ParentTaskID        string      `json:"parentTaskId,omitempty"`
	IsRecurringInstance bool        `json:"isRecurringInstance,omitempty"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
	IsOffline           bool        `json:"isOffline,omitempty"`
	NeedsSync           bool        `json:"needsSync,omitempty"`
}

// CalendarEvent is a calendar entry supplied by the hosting app.
type CalendarEvent struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Category string    `json:"category,omitempty"`
	TaskID   string    `json:"taskId,omitempty"` // set on synthetic events from auto-scheduling
}

// SyncEntry is one pending mutation in the outbox.
// Seq is assigned monotonically at enqueue time; replay order equals
// enqueue order even when wall-clock timestamps collide.
type SyncEntry struct {
	ID        string          `json:"id"`
	Seq       int64           `json:"seq"`
	Timestamp time.Time       `json:"timestamp"`
	Action    SyncAction      `json:"action"`
	Entity    EntityType      `json:"entity"`
	EntityID  string          `json:"entityId"`
	Data      json.RawMessage `json:"data"`
}

// KnowledgeLink is a typed, weighted association between two content
// entities. Strength counts reinforcements and never decreases.
type KnowledgeLink struct {
	ID         string         `json:"id"`
	SourceType EntityType     `json:"sourceType"`
	SourceID   string         `json:"sourceId"`
	TargetType EntityType     `json:"targetType"`
	TargetID   string         `json:"targetId"`
	LinkType   string         `json:"linkType"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	Strength   int            `json:"strength"`
}

// BehaviorProfile is the learned scheduling state, updated only by task
// completions. Hour maps key on hour-of-day (0-23), serialized as JSON
// string keys for the SPA.
type BehaviorProfile struct {
	// CategoryHours counts completions per category per hour-of-day.
	CategoryHours map[string]map[int]int `json:"categoryHours,omitempty"`
	// DurationByPriority records the last observed actual duration
	// (minutes) per priority. Overwrite, not a rolling average.
	DurationByPriority map[string]int `json:"durationByPriority,omitempty"`
	// DaySuccess counts completions per weekday name.
	DaySuccess map[string]int `json:"daySuccess,omitempty"`
	// ProductivityHours is the global completion-hour histogram.
	ProductivityHours map[int]int `json:"productivityHours,omitempty"`
}

// Syncable is implemented by entities that participate in server/local
// reconciliation.
type Syncable interface {
	EntityID() string
	EntityTempID() string
	CreatedTime() time.Time
	ModifiedTime() time.Time
}

func (n Note) EntityID() string        { return n.ID }
func (n Note) EntityTempID() string    { return n.TempID }
func (n Note) CreatedTime() time.Time  { return n.CreatedAt }
func (n Note) ModifiedTime() time.Time { return n.UpdatedAt }

func (t Task) EntityID() string        { return t.ID }
func (t Task) EntityTempID() string    { return t.TempID }
func (t Task) CreatedTime() time.Time  { return t.CreatedAt }
func (t Task) ModifiedTime() time.Time { return t.UpdatedAt }

// ToJSON converts a store model to JSON bytes.
func ToJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

// FromJSON parses JSON bytes into a store model.
func FromJSON[T any](data []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
