package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/contre95/soundsort/src/features/sorting"
)

func TestSqliteJournal_AppendAndList(t *testing.T) {
	journal, err := NewSqliteJournal(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer journal.Close()
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	entries := []sorting.JournalEntry{
		{RecordID: "r1", Action: sorting.ActionMove, Source: "/s/a.wav", Destination: "/s/gunshot/a.wav", Category: "gunshot", At: base},
		{RecordID: "r1", Action: sorting.ActionUndo, Source: "/s/gunshot/a.wav", Destination: "/s/a.wav", Category: "gunshot", At: base.Add(time.Second)},
		{RecordID: "r2", Action: sorting.ActionMove, Source: "/s/b.wav", Destination: "/s/noise/b.wav", Category: "noise", At: base.Add(2 * time.Second)},
	}
	for _, e := range entries {
		if err := journal.Append(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := journal.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].RecordID != "r2" || got[1].Action != sorting.ActionUndo {
		t.Errorf("expected newest first, got %+v", got)
	}
	if got[0].ID == "" || !got[0].At.Equal(base.Add(2*time.Second)) {
		t.Errorf("expected id and timestamp to be stored, got %+v", got[0])
	}
}

func TestSqliteJournal_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	journal, err := NewSqliteJournal(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := journal.Append(context.Background(), sorting.JournalEntry{RecordID: "r", Action: sorting.ActionMove, Source: "a", Destination: "b"}); err != nil {
		t.Fatal(err)
	}
	journal.Close()

	journal, err = NewSqliteJournal(path)
	if err != nil {
		t.Fatal(err)
	}
	defer journal.Close()
	got, err := journal.List(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("expected entry to survive reopening, got %d", len(got))
	}
}
