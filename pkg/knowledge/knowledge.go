// Package knowledge maintains the weighted, typed link graph between
// content entities (notes, tasks, dictionary entries) and derives related
// content and suggestions from it. Link discovery is driven by the
// keyword similarity engine; dictionary links use headword containment.
package knowledge

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nimbusdesk/gonimbus/internal/store"
	"github.com/nimbusdesk/gonimbus/pkg/keywords"
)

// Similarity thresholds for automatic linking and suggestions.
const (
	AutoLinkThreshold   = 0.3
	SuggestionThreshold = 0.2
)

// LinkStore is the persistence port for the link collection.
// *store.OfflineStore satisfies it.
type LinkStore interface {
	Links() []store.KnowledgeLink
	SaveLinks([]store.KnowledgeLink) error
}

// Snapshot carries the content collections a linking pass scans against.
// The engine never fetches data itself; the hosting app passes it in.
type Snapshot struct {
	Notes      []store.Note
	Tasks      []store.Task
	Dictionary []DictionaryEntry
}

// Engine owns the in-memory link collection and persists it through the
// store after every mutation.
type Engine struct {
	mu    sync.Mutex
	links []store.KnowledgeLink
	store LinkStore
	seq   int64
}

// NewEngine loads existing links from the store.
func NewEngine(s LinkStore) *Engine {
	return &Engine{links: s.Links(), store: s}
}

// ---------------------------------------------------------------------------
// Link CRUD
// ---------------------------------------------------------------------------

// CreateLink records a link between two entities. Repeat creation with the
// same ordered (sourceType, sourceId, targetType, targetId) tuple reinforces
// the existing link: strength is incremented and metadata shallow-merged.
func (e *Engine) CreateLink(srcType store.EntityType, srcID string, dstType store.EntityType, dstID, linkType string, metadata map[string]any) (*store.KnowledgeLink, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.links {
		l := &e.links[i]
		if l.SourceType == srcType && l.SourceID == srcID && l.TargetType == dstType && l.TargetID == dstID {
			l.Strength++
			if len(metadata) > 0 {
				if l.Metadata == nil {
					l.Metadata = make(map[string]any, len(metadata))
				}
				for k, v := range metadata {
					l.Metadata[k] = v
				}
			}
			if err := e.store.SaveLinks(e.links); err != nil {
				return nil, fmt.Errorf("knowledge: persist links: %w", err)
			}
			link := *l
			return &link, nil
		}
	}

	e.seq++
	link := store.KnowledgeLink{
		ID:         fmt.Sprintf("link_%d_%d", time.Now().UnixMilli(), e.seq),
		SourceType: srcType,
		SourceID:   srcID,
		TargetType: dstType,
		TargetID:   dstID,
		LinkType:   linkType,
		Metadata:   metadata,
		CreatedAt:  time.Now(),
		Strength:   1,
	}
	e.links = append(e.links, link)
	if err := e.store.SaveLinks(e.links); err != nil {
		return nil, fmt.Errorf("knowledge: persist links: %w", err)
	}
	return &link, nil
}

// RemoveLink deletes a link by id. Returns false if absent.
func (e *Engine) RemoveLink(id string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.links {
		if e.links[i].ID == id {
			e.links = append(e.links[:i:i], e.links[i+1:]...)
			if err := e.store.SaveLinks(e.links); err != nil {
				return false, fmt.Errorf("knowledge: persist links: %w", err)
			}
			return true, nil
		}
	}
	return false, nil
}

// LinksFor returns every link where the entity appears as either endpoint.
func (e *Engine) LinksFor(entityType store.EntityType, id string) []store.KnowledgeLink {
	e.mu.Lock()
	defer e.mu.Unlock()

	var result []store.KnowledgeLink
	for _, l := range e.links {
		if (l.SourceType == entityType && l.SourceID == id) ||
			(l.TargetType == entityType && l.TargetID == id) {
			result = append(result, l)
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Auto-linking
// ---------------------------------------------------------------------------

// AutoLink scans the snapshot for content similar to the given text and
// creates links from the entity to each hit. Notes and tasks link when
// keyword similarity reaches AutoLinkThreshold; dictionary entries link
// when their headword appears in the content.
func (e *Engine) AutoLink(content string, entityType store.EntityType, entityID string, snap Snapshot) ([]store.KnowledgeLink, error) {
	var created []store.KnowledgeLink
	kw := keywords.Extract(content)

	for _, n := range snap.Notes {
		if entityType == store.EntityNote && n.ID == entityID {
			continue
		}
		sim := keywords.Similarity(content, n.Title+" "+n.Content)
		if sim < AutoLinkThreshold {
			continue
		}
		link, err := e.CreateLink(entityType, entityID, store.EntityNote, n.ID,
			linkType(entityType, store.EntityNote),
			map[string]any{"similarity": sim, "keywords": kw})
		if err != nil {
			return created, err
		}
		created = append(created, *link)
	}

	for _, t := range snap.Tasks {
		if entityType == store.EntityTask && t.ID == entityID {
			continue
		}
		sim := keywords.Similarity(content, taskText(t))
		if sim < AutoLinkThreshold {
			continue
		}
		link, err := e.CreateLink(entityType, entityID, store.EntityTask, t.ID,
			linkType(entityType, store.EntityTask),
			map[string]any{"similarity": sim, "keywords": kw})
		if err != nil {
			return created, err
		}
		created = append(created, *link)
	}

	dict, err := CompileDictionary(snap.Dictionary)
	if err != nil {
		return created, fmt.Errorf("knowledge: compile dictionary: %w", err)
	}
	for _, entry := range dict.Match(content) {
		link, err := e.CreateLink(entityType, entityID, store.EntityDictionary, entry.ID,
			linkType(entityType, store.EntityDictionary),
			map[string]any{"word": entry.Word})
		if err != nil {
			return created, err
		}
		created = append(created, *link)
	}

	return created, nil
}

func linkType(a, b store.EntityType) string {
	return string(a) + "-" + string(b)
}

func taskText(t store.Task) string {
	parts := []string{t.Title, t.Category}
	parts = append(parts, t.Tags...)
	return strings.Join(parts, " ")
}

// ---------------------------------------------------------------------------
// Related content
// ---------------------------------------------------------------------------

// RelatedContent groups the opposite endpoints of an entity's links by
// collection. References to deleted entities are silently skipped.
type RelatedContent struct {
	Notes      []store.Note      `json:"notes,omitempty"`
	Tasks      []store.Task      `json:"tasks,omitempty"`
	Dictionary []DictionaryEntry `json:"dictionary,omitempty"`
}

// Related dereferences each link's opposite endpoint against the snapshot.
func (e *Engine) Related(entityType store.EntityType, id string, snap Snapshot) RelatedContent {
	noteByID := make(map[string]store.Note, len(snap.Notes))
	for _, n := range snap.Notes {
		noteByID[n.ID] = n
	}
	taskByID := make(map[string]store.Task, len(snap.Tasks))
	for _, t := range snap.Tasks {
		taskByID[t.ID] = t
	}
	dictByID := make(map[string]DictionaryEntry, len(snap.Dictionary))
	for _, d := range snap.Dictionary {
		dictByID[d.ID] = d
	}

	var related RelatedContent
	seen := make(map[string]bool)

	for _, l := range e.LinksFor(entityType, id) {
		otherType, otherID := l.TargetType, l.TargetID
		if l.TargetType == entityType && l.TargetID == id {
			otherType, otherID = l.SourceType, l.SourceID
		}
		key := string(otherType) + ":" + otherID
		if seen[key] {
			continue
		}
		seen[key] = true

		switch otherType {
		case store.EntityNote:
			if n, ok := noteByID[otherID]; ok {
				related.Notes = append(related.Notes, n)
			}
		case store.EntityTask:
			if t, ok := taskByID[otherID]; ok {
				related.Tasks = append(related.Tasks, t)
			}
		case store.EntityDictionary:
			if d, ok := dictByID[otherID]; ok {
				related.Dictionary = append(related.Dictionary, d)
			}
		}
	}
	return related
}

// ---------------------------------------------------------------------------
// Suggestions
// ---------------------------------------------------------------------------

// ScoredNote is a note with its similarity to the queried content.
type ScoredNote struct {
	Note       store.Note `json:"note"`
	Similarity float64    `json:"similarity"`
}

// ScoredTask is a task with its similarity to the queried content.
type ScoredTask struct {
	Task       store.Task `json:"task"`
	Similarity float64    `json:"similarity"`
}

// Action is a recommended follow-up derived from content triggers.
type Action struct {
	Type   string `json:"type"` // create_task | create_reminder
	Reason string `json:"reason"`
}

// Suggestions is the result of a low-threshold similarity scan.
type Suggestions struct {
	RelatedNotes     []ScoredNote      `json:"relatedNotes,omitempty"`
	RelatedTasks     []ScoredTask      `json:"relatedTasks,omitempty"`
	RelatedWords     []DictionaryEntry `json:"relatedWords,omitempty"`
	SuggestedActions []Action          `json:"suggestedActions,omitempty"`
}

var taskTriggers = []string{"todo", "task", "deadline", "finish", "complete", "schedule", "due"}
var reminderTriggers = []string{"remind", "remember", "forget", "appointment", "follow up"}

// Suggest runs the similarity scan at SuggestionThreshold and derives
// action suggestions from keyword triggers.
func (e *Engine) Suggest(content string, entityType store.EntityType, snap Snapshot) Suggestions {
	var out Suggestions

	for _, n := range snap.Notes {
		sim := keywords.Similarity(content, n.Title+" "+n.Content)
		if sim >= SuggestionThreshold {
			out.RelatedNotes = append(out.RelatedNotes, ScoredNote{Note: n, Similarity: sim})
		}
	}
	sort.SliceStable(out.RelatedNotes, func(i, j int) bool {
		return out.RelatedNotes[i].Similarity > out.RelatedNotes[j].Similarity
	})

	for _, t := range snap.Tasks {
		sim := keywords.Similarity(content, taskText(t))
		if sim >= SuggestionThreshold {
			out.RelatedTasks = append(out.RelatedTasks, ScoredTask{Task: t, Similarity: sim})
		}
	}
	sort.SliceStable(out.RelatedTasks, func(i, j int) bool {
		return out.RelatedTasks[i].Similarity > out.RelatedTasks[j].Similarity
	})

	if dict, err := CompileDictionary(snap.Dictionary); err == nil {
		out.RelatedWords = dict.Match(content)
	}

	lower := strings.ToLower(content)
	for _, trigger := range taskTriggers {
		if strings.Contains(lower, trigger) {
			out.SuggestedActions = append(out.SuggestedActions, Action{
				Type:   "create_task",
				Reason: "content mentions " + trigger,
			})
			break
		}
	}
	for _, trigger := range reminderTriggers {
		if strings.Contains(lower, trigger) {
			out.SuggestedActions = append(out.SuggestedActions, Action{
				Type:   "create_reminder",
				Reason: "content mentions " + trigger,
			})
			break
		}
	}

	return out
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

// ConnectedEntity is an entity ranked by link degree.
type ConnectedEntity struct {
	Type   store.EntityType `json:"type"`
	ID     string           `json:"id"`
	Degree int              `json:"degree"`
}

// Stats summarizes the link graph.
type Stats struct {
	TotalLinks            int                   `json:"totalLinks"`
	LinksByType           map[string]int        `json:"linksByType"`
	StrongestLinks        []store.KnowledgeLink `json:"strongestLinks"`
	MostConnectedEntities []ConnectedEntity     `json:"mostConnectedEntities"`
}

// Stats computes graph-level statistics: totals, per-type counts, the ten
// strongest links and the most connected entities.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	byType := make(map[string]int)
	degree := make(map[string]int)
	entity := make(map[string]ConnectedEntity)

	for _, l := range e.links {
		byType[l.LinkType]++

		srcKey := string(l.SourceType) + ":" + l.SourceID
		dstKey := string(l.TargetType) + ":" + l.TargetID
		degree[srcKey]++
		degree[dstKey]++
		entity[srcKey] = ConnectedEntity{Type: l.SourceType, ID: l.SourceID}
		entity[dstKey] = ConnectedEntity{Type: l.TargetType, ID: l.TargetID}
	}

	strongest := make([]store.KnowledgeLink, len(e.links))
	copy(strongest, e.links)
	sort.SliceStable(strongest, func(i, j int) bool {
		return strongest[i].Strength > strongest[j].Strength
	})
	if len(strongest) > 10 {
		strongest = strongest[:10]
	}

	connected := make([]ConnectedEntity, 0, len(entity))
	for key, ent := range entity {
		ent.Degree = degree[key]
		connected = append(connected, ent)
	}
	sort.SliceStable(connected, func(i, j int) bool {
		if connected[i].Degree != connected[j].Degree {
			return connected[i].Degree > connected[j].Degree
		}
		return connected[i].ID < connected[j].ID
	})
	if len(connected) > 10 {
		connected = connected[:10]
	}

	return Stats{
		TotalLinks:            len(e.links),
		LinksByType:           byType,
		StrongestLinks:        strongest,
		MostConnectedEntities: connected,
	}
}
