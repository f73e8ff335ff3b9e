//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"
	"time"

	"github.com/hack-pad/hackpadfs/indexeddb"
	"github.com/nimbusdesk/gonimbus/internal/store"
	"github.com/nimbusdesk/gonimbus/pkg/keywords"
	"github.com/nimbusdesk/gonimbus/pkg/knowledge"
	"github.com/nimbusdesk/gonimbus/pkg/schedule"
	"github.com/nimbusdesk/gonimbus/pkg/semantic"
)

// Version info
const Version = "0.1.0"

// Global state
var offline *store.OfflineStore
var links *knowledge.Engine
var semIndex *semantic.Index

func main() {
	println("[GoNimbus] WASM Ready v" + Version)

	js.Global().Set("GoNimbus", js.ValueOf(map[string]interface{}{
		"version":    js.FuncOf(getVersion),
		"initialize": js.FuncOf(initialize),

		// Offline store + sync queue
		"createNote":       js.FuncOf(createNote),
		"updateNote":       js.FuncOf(updateNote),
		"deleteNote":       js.FuncOf(deleteNote),
		"getNotes":         js.FuncOf(getNotes),
		"createTask":       js.FuncOf(createTask),
		"updateTask":       js.FuncOf(updateTask),
		"deleteTask":       js.FuncOf(deleteTask),
		"getTasks":         js.FuncOf(getTasks),
		"getSyncQueue":     js.FuncOf(getSyncQueue),
		"removeQueueEntry": js.FuncOf(removeQueueEntry),
		"clearSyncQueue":   js.FuncOf(clearSyncQueue),
		"mergeNotes":       js.FuncOf(mergeNotes),
		"mergeTasks":       js.FuncOf(mergeTasks),
		"getOfflineMode":   js.FuncOf(getOfflineMode),
		"setOfflineMode":   js.FuncOf(setOfflineMode),
		"getLastSync":      js.FuncOf(getLastSync),
		"setLastSync":      js.FuncOf(setLastSync),

		// Keywords + similarity
		"extractKeywords": js.FuncOf(extractKeywords),
		"similarity":      js.FuncOf(similarity),

		// Knowledge links
		"createLink":         js.FuncOf(createLink),
		"removeLink":         js.FuncOf(removeLink),
		"autoLink":           js.FuncOf(autoLink),
		"relatedContent":     js.FuncOf(relatedContent),
		"contentSuggestions": js.FuncOf(contentSuggestions),
		"graphStats":         js.FuncOf(graphStats),
		"graphNeighborhood":  js.FuncOf(graphNeighborhood),
		"graphCentrality":    js.FuncOf(graphCentrality),

		// Scheduling heuristics
		"taskPriority":        js.FuncOf(taskPriority),
		"availableSlots":      js.FuncOf(availableSlots),
		"optimalSlots":        js.FuncOf(optimalSlots),
		"autoSchedule":        js.FuncOf(autoSchedule),
		"expandRecurring":     js.FuncOf(expandRecurring),
		"analyzeDependencies": js.FuncOf(analyzeDependencies),
		"dailyAgenda":         js.FuncOf(dailyAgenda),
		"recordCompletion":    js.FuncOf(recordCompletion),

		// Embedding index
		"initVectors":   js.FuncOf(initVectors),
		"addVector":     js.FuncOf(addVector),
		"searchVectors": js.FuncOf(searchVectors),
		"saveVectors":   js.FuncOf(saveVectors),
	}))

	select {}
}

// initialize opens the IndexedDB-backed offline store.
// Args: [] (uses the default "gonimbus" DB)
func initialize(this js.Value, args []js.Value) interface{} {
	fs, err := indexeddb.NewFS(context.Background(), "gonimbus", indexeddb.Options{})
	if err != nil {
		return errorResult("failed to create idb fs: " + err.Error())
	}

	kv := store.NewFSStore(fs, ".")
	offline = store.NewOfflineStore(kv)
	links = knowledge.NewEngine(offline)

	println("[GoNimbus] ✅ Offline store initialized")
	return successResult("initialized")
}

func requireStore() interface{} {
	if offline == nil {
		return errorResult("store not initialized; call initialize() first")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Offline store + sync queue
// ---------------------------------------------------------------------------

// createNote: [noteJSON string]
func createNote(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: noteJSON")
	}
	data, err := store.FromJSON[store.Note]([]byte(args[0].String()))
	if err != nil {
		return errorResult("invalid note json: " + err.Error())
	}
	note, err := offline.CreateNote(*data)
	if err != nil {
		return errorResult("create failed: " + err.Error())
	}
	return marshalResult(note)
}

// updateNote: [id string, patchJSON string]
func updateNote(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	if len(args) < 2 {
		return errorResult("requires 2 args: id, patchJSON")
	}
	patch, err := store.FromJSON[store.NotePatch]([]byte(args[1].String()))
	if err != nil {
		return errorResult("invalid patch json: " + err.Error())
	}
	note, err := offline.UpdateNote(args[0].String(), *patch)
	if err != nil {
		return errorResult("update failed: " + err.Error())
	}
	if note == nil {
		return "null"
	}
	return marshalResult(note)
}

// deleteNote: [id string]
func deleteNote(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: id")
	}
	ok, err := offline.DeleteNote(args[0].String())
	if err != nil {
		return errorResult("delete failed: " + err.Error())
	}
	return marshalResult(map[string]bool{"deleted": ok})
}

func getNotes(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	return marshalResult(offline.Notes())
}

// createTask: [taskJSON string]
func createTask(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: taskJSON")
	}
	data, err := store.FromJSON[store.Task]([]byte(args[0].String()))
	if err != nil {
		return errorResult("invalid task json: " + err.Error())
	}
	task, err := offline.CreateTask(*data)
	if err != nil {
		return errorResult("create failed: " + err.Error())
	}
	return marshalResult(task)
}

// updateTask: [id string, patchJSON string]
func updateTask(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	if len(args) < 2 {
		return errorResult("requires 2 args: id, patchJSON")
	}
	patch, err := store.FromJSON[store.TaskPatch]([]byte(args[1].String()))
	if err != nil {
		return errorResult("invalid patch json: " + err.Error())
	}
	task, err := offline.UpdateTask(args[0].String(), *patch)
	if err != nil {
		return errorResult("update failed: " + err.Error())
	}
	if task == nil {
		return "null"
	}
	return marshalResult(task)
}

// deleteTask: [id string]
func deleteTask(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: id")
	}
	ok, err := offline.DeleteTask(args[0].String())
	if err != nil {
		return errorResult("delete failed: " + err.Error())
	}
	return marshalResult(map[string]bool{"deleted": ok})
}

func getTasks(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	return marshalResult(offline.Tasks())
}

func getSyncQueue(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	return marshalResult(offline.Queue())
}

// removeQueueEntry: [entryId string]
func removeQueueEntry(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: entryId")
	}
	ok, err := offline.RemoveQueueEntry(args[0].String())
	if err != nil {
		return errorResult("remove failed: " + err.Error())
	}
	return marshalResult(map[string]bool{"removed": ok})
}

func clearSyncQueue(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	if err := offline.ClearQueue(); err != nil {
		return errorResult("clear failed: " + err.Error())
	}
	return successResult("cleared")
}

// mergeNotes reconciles server notes with local state and persists the
// result. Args: [serverNotesJSON string]
func mergeNotes(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: serverNotesJSON")
	}
	var server []store.Note
	if err := json.Unmarshal([]byte(args[0].String()), &server); err != nil {
		return errorResult("invalid notes json: " + err.Error())
	}
	merged := store.MergeServerAndLocal(server, offline.Notes())
	if err := offline.SaveNotes(merged); err != nil {
		return errorResult("persist failed: " + err.Error())
	}
	return marshalResult(merged)
}

// mergeTasks: [serverTasksJSON string]
func mergeTasks(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: serverTasksJSON")
	}
	var server []store.Task
	if err := json.Unmarshal([]byte(args[0].String()), &server); err != nil {
		return errorResult("invalid tasks json: " + err.Error())
	}
	merged := store.MergeServerAndLocal(server, offline.Tasks())
	if err := offline.SaveTasks(merged); err != nil {
		return errorResult("persist failed: " + err.Error())
	}
	return marshalResult(merged)
}

func getOfflineMode(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	return offline.OfflineMode()
}

// setOfflineMode: [enabled bool]
func setOfflineMode(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: enabled")
	}
	if err := offline.SetOfflineMode(args[0].Bool()); err != nil {
		return errorResult("set failed: " + err.Error())
	}
	return successResult("ok")
}

func getLastSync(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	t, ok := offline.LastSync()
	if !ok {
		return "null"
	}
	return t.Format(time.RFC3339)
}

// setLastSync: [timestampRFC3339 string] — empty uses now
func setLastSync(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	t := time.Now()
	if len(args) > 0 && args[0].String() != "" {
		parsed, err := time.Parse(time.RFC3339, args[0].String())
		if err != nil {
			return errorResult("invalid timestamp: " + err.Error())
		}
		t = parsed
	}
	if err := offline.SetLastSync(t); err != nil {
		return errorResult("set failed: " + err.Error())
	}
	return successResult("ok")
}

// ---------------------------------------------------------------------------
// Keywords + similarity
// ---------------------------------------------------------------------------

// extractKeywords: [text string]
func extractKeywords(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return "[]"
	}
	return marshalResult(keywords.Extract(args[0].String()))
}

// similarity: [a string, b string]
func similarity(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: textA, textB")
	}
	return keywords.Similarity(args[0].String(), args[1].String())
}

// ---------------------------------------------------------------------------
// Knowledge links
// ---------------------------------------------------------------------------

func requireLinks() interface{} {
	if links == nil {
		return errorResult("store not initialized; call initialize() first")
	}
	return nil
}

// snapshot assembles the content collections a linking pass scans
// against, local store plus an optional dictionary JSON argument.
func snapshot(dictJSON string) (knowledge.Snapshot, error) {
	snap := knowledge.Snapshot{
		Notes: offline.Notes(),
		Tasks: offline.Tasks(),
	}
	if dictJSON != "" && dictJSON != "null" && dictJSON != "[]" {
		if err := json.Unmarshal([]byte(dictJSON), &snap.Dictionary); err != nil {
			return snap, err
		}
	}
	return snap, nil
}

// createLink: [srcType, srcId, dstType, dstId, linkType, metadataJSON]
func createLink(this js.Value, args []js.Value) interface{} {
	if e := requireLinks(); e != nil {
		return e
	}
	if len(args) < 5 {
		return errorResult("requires 5+ args: srcType, srcId, dstType, dstId, linkType, [metadataJSON]")
	}
	var metadata map[string]any
	if len(args) > 5 && args[5].String() != "" && args[5].String() != "null" {
		if err := json.Unmarshal([]byte(args[5].String()), &metadata); err != nil {
			return errorResult("invalid metadata json: " + err.Error())
		}
	}
	link, err := links.CreateLink(
		store.EntityType(args[0].String()), args[1].String(),
		store.EntityType(args[2].String()), args[3].String(),
		args[4].String(), metadata)
	if err != nil {
		return errorResult("create link failed: " + err.Error())
	}
	return marshalResult(link)
}

// removeLink: [linkId string]
func removeLink(this js.Value, args []js.Value) interface{} {
	if e := requireLinks(); e != nil {
		return e
	}
	if len(args) < 1 {
		return errorResult("requires 1 arg: linkId")
	}
	ok, err := links.RemoveLink(args[0].String())
	if err != nil {
		return errorResult("remove link failed: " + err.Error())
	}
	return marshalResult(map[string]bool{"removed": ok})
}

// autoLink: [content, entityType, entityId, dictionaryJSON]
func autoLink(this js.Value, args []js.Value) interface{} {
	if e := requireLinks(); e != nil {
		return e
	}
	if len(args) < 3 {
		return errorResult("requires 3+ args: content, entityType, entityId, [dictionaryJSON]")
	}
	dictJSON := ""
	if len(args) > 3 {
		dictJSON = args[3].String()
	}
	snap, err := snapshot(dictJSON)
	if err != nil {
		return errorResult("invalid dictionary json: " + err.Error())
	}
	created, err := links.AutoLink(args[0].String(), store.EntityType(args[1].String()), args[2].String(), snap)
	if err != nil {
		return errorResult("auto-link failed: " + err.Error())
	}
	return marshalResult(created)
}

// relatedContent: [entityType, entityId, dictionaryJSON]
func relatedContent(this js.Value, args []js.Value) interface{} {
	if e := requireLinks(); e != nil {
		return e
	}
	if len(args) < 2 {
		return errorResult("requires 2+ args: entityType, entityId, [dictionaryJSON]")
	}
	dictJSON := ""
	if len(args) > 2 {
		dictJSON = args[2].String()
	}
	snap, err := snapshot(dictJSON)
	if err != nil {
		return errorResult("invalid dictionary json: " + err.Error())
	}
	return marshalResult(links.Related(store.EntityType(args[0].String()), args[1].String(), snap))
}

// contentSuggestions: [content, entityType, dictionaryJSON]
func contentSuggestions(this js.Value, args []js.Value) interface{} {
	if e := requireLinks(); e != nil {
		return e
	}
	if len(args) < 2 {
		return errorResult("requires 2+ args: content, entityType, [dictionaryJSON]")
	}
	dictJSON := ""
	if len(args) > 2 {
		dictJSON = args[2].String()
	}
	snap, err := snapshot(dictJSON)
	if err != nil {
		return errorResult("invalid dictionary json: " + err.Error())
	}
	return marshalResult(links.Suggest(args[0].String(), store.EntityType(args[1].String()), snap))
}

func graphStats(this js.Value, args []js.Value) interface{} {
	if e := requireLinks(); e != nil {
		return e
	}
	return marshalResult(links.Stats())
}

// graphNeighborhood: [entityType, entityId, maxDepth]
func graphNeighborhood(this js.Value, args []js.Value) interface{} {
	if e := requireLinks(); e != nil {
		return e
	}
	if len(args) < 3 {
		return errorResult("requires 3 args: entityType, entityId, maxDepth")
	}
	return marshalResult(links.Neighborhood(store.EntityType(args[0].String()), args[1].String(), args[2].Int()))
}

func graphCentrality(this js.Value, args []js.Value) interface{} {
	if e := requireLinks(); e != nil {
		return e
	}
	return marshalResult(links.Centrality())
}

// ---------------------------------------------------------------------------
// Scheduling heuristics
// ---------------------------------------------------------------------------

func parseEvents(raw string) ([]store.CalendarEvent, error) {
	var events []store.CalendarEvent
	if raw == "" || raw == "null" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		return nil, err
	}
	return events, nil
}

func parsePrefs(raw string) (schedule.Preferences, error) {
	prefs := schedule.DefaultPreferences()
	if raw == "" || raw == "null" {
		return prefs, nil
	}
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return prefs, err
	}
	return prefs, nil
}

// taskPriority: [taskJSON, eventsJSON]
func taskPriority(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	if len(args) < 1 {
		return errorResult("requires 1+ args: taskJSON, [eventsJSON]")
	}
	var task store.Task
	if err := json.Unmarshal([]byte(args[0].String()), &task); err != nil {
		return errorResult("invalid task json: " + err.Error())
	}
	var events []store.CalendarEvent
	if len(args) > 1 {
		parsed, err := parseEvents(args[1].String())
		if err != nil {
			return errorResult("invalid events json: " + err.Error())
		}
		events = parsed
	}
	score := schedule.TaskPriority(task, offline.Tasks(), events, offline.BehaviorProfile(), offline.RecentTasks())
	return score
}

// availableSlots: [eventsJSON, dateRFC3339]
func availableSlots(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: eventsJSON, date")
	}
	events, err := parseEvents(args[0].String())
	if err != nil {
		return errorResult("invalid events json: " + err.Error())
	}
	date, err := time.Parse(time.RFC3339, args[1].String())
	if err != nil {
		return errorResult("invalid date: " + err.Error())
	}
	return marshalResult(schedule.AvailableSlots(events, date))
}

// optimalSlots: [taskJSON, eventsJSON, prefsJSON]
func optimalSlots(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2+ args: taskJSON, eventsJSON, [prefsJSON]")
	}
	var task store.Task
	if err := json.Unmarshal([]byte(args[0].String()), &task); err != nil {
		return errorResult("invalid task json: " + err.Error())
	}
	events, err := parseEvents(args[1].String())
	if err != nil {
		return errorResult("invalid events json: " + err.Error())
	}
	prefs := schedule.DefaultPreferences()
	if len(args) > 2 {
		prefs, err = parsePrefs(args[2].String())
		if err != nil {
			return errorResult("invalid prefs json: " + err.Error())
		}
	}
	return marshalResult(schedule.OptimalSlots(task, events, prefs))
}

// autoSchedule: [eventsJSON, prefsJSON] — schedules the store's open tasks
func autoSchedule(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	var events []store.CalendarEvent
	if len(args) > 0 {
		parsed, err := parseEvents(args[0].String())
		if err != nil {
			return errorResult("invalid events json: " + err.Error())
		}
		events = parsed
	}
	prefs := schedule.DefaultPreferences()
	if len(args) > 1 {
		parsed, err := parsePrefs(args[1].String())
		if err != nil {
			return errorResult("invalid prefs json: " + err.Error())
		}
		prefs = parsed
	}
	scheduled := schedule.AutoSchedule(offline.Tasks(), events, prefs, offline.BehaviorProfile(), offline.RecentTasks())
	return marshalResult(scheduled)
}

// expandRecurring: [taskJSON, startRFC3339, endRFC3339]
func expandRecurring(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("requires 3 args: taskJSON, start, end")
	}
	var task store.Task
	if err := json.Unmarshal([]byte(args[0].String()), &task); err != nil {
		return errorResult("invalid task json: " + err.Error())
	}
	start, err := time.Parse(time.RFC3339, args[1].String())
	if err != nil {
		return errorResult("invalid start: " + err.Error())
	}
	end, err := time.Parse(time.RFC3339, args[2].String())
	if err != nil {
		return errorResult("invalid end: " + err.Error())
	}
	return marshalResult(schedule.ExpandRecurring(task, start, end))
}

func analyzeDependencies(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	return marshalResult(schedule.AnalyzeDependencies(offline.Tasks()))
}

// dailyAgenda: [eventsJSON, dateRFC3339]
func dailyAgenda(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	if len(args) < 2 {
		return errorResult("requires 2 args: eventsJSON, date")
	}
	events, err := parseEvents(args[0].String())
	if err != nil {
		return errorResult("invalid events json: " + err.Error())
	}
	date, err := time.Parse(time.RFC3339, args[1].String())
	if err != nil {
		return errorResult("invalid date: " + err.Error())
	}
	return marshalResult(schedule.DailyAgenda(offline.Tasks(), events, offline.Notes(), date))
}

// recordCompletion: [taskJSON, actualDurationMinutes]
func recordCompletion(this js.Value, args []js.Value) interface{} {
	if e := requireStore(); e != nil {
		return e
	}
	if len(args) < 2 {
		return errorResult("requires 2 args: taskJSON, actualDuration")
	}
	var task store.Task
	if err := json.Unmarshal([]byte(args[0].String()), &task); err != nil {
		return errorResult("invalid task json: " + err.Error())
	}
	profile := schedule.RecordCompletion(offline.BehaviorProfile(), task, time.Now(), args[1].Int())
	if err := offline.SaveBehaviorProfile(profile); err != nil {
		return errorResult("persist failed: " + err.Error())
	}
	if err := offline.PushRecentTask(task); err != nil {
		return errorResult("persist failed: " + err.Error())
	}
	return marshalResult(profile)
}

// ---------------------------------------------------------------------------
// Embedding index
// ---------------------------------------------------------------------------

// initVectors opens the IndexedDB-backed embedding index.
func initVectors(this js.Value, args []js.Value) interface{} {
	fs, err := indexeddb.NewFS(context.Background(), "gonimbus", indexeddb.Options{})
	if err != nil {
		return errorResult("failed to create idb fs: " + err.Error())
	}
	semIndex, err = semantic.Open(fs, "semantic.bin")
	if err != nil {
		return errorResult("failed to load embedding index: " + err.Error())
	}
	return successResult("embedding index initialized")
}

// addVector: [id string, vectorJSON string]
func addVector(this js.Value, args []js.Value) interface{} {
	if semIndex == nil {
		return errorResult("embedding index not initialized")
	}
	if len(args) < 2 {
		return errorResult("requires 2 args: id, vectorJSON")
	}
	var vec []float32
	if err := json.Unmarshal([]byte(args[1].String()), &vec); err != nil {
		return errorResult("invalid vector json: " + err.Error())
	}
	if err := semIndex.Add(args[0].String(), vec); err != nil {
		return errorResult("add failed: " + err.Error())
	}
	return successResult("added")
}

// searchVectors: [vectorJSON string, k int]
func searchVectors(this js.Value, args []js.Value) interface{} {
	if semIndex == nil {
		return errorResult("embedding index not initialized")
	}
	if len(args) < 2 {
		return errorResult("requires 2 args: vectorJSON, k")
	}
	var vec []float32
	if err := json.Unmarshal([]byte(args[0].String()), &vec); err != nil {
		return errorResult("invalid vector json: " + err.Error())
	}
	ids, err := semIndex.Search(vec, args[1].Int())
	if err != nil {
		return errorResult("search failed: " + err.Error())
	}
	return marshalResult(ids)
}

func saveVectors(this js.Value, args []js.Value) interface{} {
	if semIndex == nil {
		return errorResult("embedding index not initialized")
	}
	if err := semIndex.Save(); err != nil {
		return errorResult("save failed: " + err.Error())
	}
	return successResult("saved")
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

func marshalResult(v interface{}) interface{} {
	jsonBytes, err := store.ToJSON(v)
	if err != nil {
		return errorResult(err.Error())
	}
	return string(jsonBytes)
}

func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}
