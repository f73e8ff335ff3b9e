package main

import (
	"fmt"
	"log"

	"github.com/nimbusdesk/gonimbus/internal/store"
)

func main() {
	fmt.Println("Testing MemKV...")
	run(store.NewMemKV())

	sqlite, err := store.NewSQLiteKV()
	if err != nil {
		log.Fatalf("NewSQLiteKV failed: %v", err)
	}
	fmt.Println("\nTesting SQLiteKV...")
	run(sqlite)

	fmt.Println("\n✅ All checks passed!")
}

func run(kv store.KV) {
	defer kv.Close()
	s := store.NewOfflineStore(kv)

	note, err := s.CreateNote(store.Note{
		Title:   "Quarterly budget",
		Content: "Draft numbers for Q2",
		Tags:    []string{"finance"},
	})
	if err != nil {
		log.Fatalf("CreateNote failed: %v", err)
	}
	fmt.Println("  ✓ CreateNote works:", note.ID)

	title := "Quarterly budget (rev 2)"
	updated, err := s.UpdateNote(note.ID, store.NotePatch{Title: &title})
	if err != nil {
		log.Fatalf("UpdateNote failed: %v", err)
	}
	if updated == nil || updated.Title != title {
		log.Fatalf("UpdateNote returned %+v", updated)
	}
	fmt.Println("  ✓ UpdateNote works")

	task, err := s.CreateTask(store.Task{
		Title:    "File budget report",
		Priority: store.PriorityHigh,
	})
	if err != nil {
		log.Fatalf("CreateTask failed: %v", err)
	}
	fmt.Println("  ✓ CreateTask works:", task.ID)

	queue := s.Queue()
	if len(queue) != 3 {
		log.Fatalf("queue length = %d, want 3 (create, update, create)", len(queue))
	}
	for i := 1; i < len(queue); i++ {
		if queue[i].Seq <= queue[i-1].Seq {
			log.Fatalf("queue out of order at %d: %v", i, queue)
		}
	}
	fmt.Println("  ✓ Sync queue ordered")

	ok, err := s.DeleteNote(note.ID)
	if err != nil || !ok {
		log.Fatalf("DeleteNote failed: ok=%v err=%v", ok, err)
	}
	if len(s.Notes()) != 0 {
		log.Fatal("note survived deletion")
	}
	fmt.Println("  ✓ DeleteNote works")

	if err := s.ClearQueue(); err != nil {
		log.Fatalf("ClearQueue failed: %v", err)
	}
	if len(s.Queue()) != 0 {
		log.Fatal("queue not cleared")
	}
	fmt.Println("  ✓ ClearQueue works")
}
