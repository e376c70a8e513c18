package hydration

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "hydration.json"))

	rec, err := store.Load()
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
	if rec.DailyGoalMl != DefaultDailyGoalMl {
		t.Errorf("goal = %d, want default", rec.DailyGoalMl)
	}
}

func TestFileStoreSaveAndLoad(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "hydration.json"))

	date := "2026-03-01"
	ts := 1772355600.25
	want := Record{
		DailyGoalMl:     2400,
		SipAmountMl:     300,
		CurrentIntakeMl: 900,
		LastResetDate:   &date,
		StreakDays:      4,
		LastIntakeTime:  &ts,
	}

	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(store.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after Save")
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DailyGoalMl != 2400 || got.SipAmountMl != 300 || got.CurrentIntakeMl != 900 || got.StreakDays != 4 {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
	if got.LastResetDate == nil || *got.LastResetDate != date {
		t.Errorf("LastResetDate = %v, want %s", got.LastResetDate, date)
	}
	if got.LastIntakeTime == nil || *got.LastIntakeTime != ts {
		t.Errorf("LastIntakeTime = %v, want %v", got.LastIntakeTime, ts)
	}
}

func TestFileStoreFlatKeys(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "hydration.json"))
	if err := store.Save(DefaultRecord()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("snapshot is not a JSON object: %v", err)
	}
	for _, key := range []string{"dailyGoal", "sipAmount", "currentIntake", "lastResetDate", "streak", "lastIntakeTime"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("snapshot missing key %q", key)
		}
	}
}

func TestFileStorePartialSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hydration.json")
	content := `{"sipAmount": 400, "streak": 7, "mood": "thirsty"}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	rec, err := NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.DailyGoalMl != DefaultDailyGoalMl {
		t.Errorf("goal = %d, want default for missing key", rec.DailyGoalMl)
	}
	if rec.SipAmountMl != 400 || rec.StreakDays != 7 {
		t.Errorf("sip/streak = %d/%d, want 400/7", rec.SipAmountMl, rec.StreakDays)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hydration.json")
	if err := os.WriteFile(path, []byte("{bad json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileStore(path).Load()
	if !errors.Is(err, ErrPersistenceCorrupt) {
		t.Errorf("err = %v, want ErrPersistenceCorrupt", err)
	}
}

func TestOpenSelfHealsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hydration.json")
	if err := os.WriteFile(path, []byte(`{"dailyGoal": "lots"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	l := Open(store, (&fakeClock{t: day(1)}).Now)
	if l.DailyGoalMl() != DefaultDailyGoalMl {
		t.Errorf("goal = %d, want default", l.DailyGoalMl())
	}

	if _, err := store.Load(); err != nil {
		t.Errorf("snapshot still unreadable after recovery: %v", err)
	}
}

func TestFileStoreWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(filepath.Join(blocker, "hydration.json"))
	err := store.Save(DefaultRecord())
	if !errors.Is(err, ErrPersistenceWriteFailed) {
		t.Errorf("err = %v, want ErrPersistenceWriteFailed", err)
	}

	// The ledger keeps working on top of a store that cannot write.
	l := Open(store, (&fakeClock{t: day(1)}).Now)
	l.AddIntake(250)
	if l.CurrentIntakeMl() != 250 {
		t.Errorf("intake = %d, want 250", l.CurrentIntakeMl())
	}
}
