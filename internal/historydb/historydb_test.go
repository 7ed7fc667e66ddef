package historydb

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestSaveAndLoadPosition(t *testing.T) {
	d := openTestDB(t)

	if err := d.SavePosition("movie.mp4", "Movie", 120, 5400); err != nil {
		t.Fatalf("SavePosition: %v", err)
	}

	pos, ok, err := d.LoadPosition("movie.mp4")
	if err != nil {
		t.Fatalf("LoadPosition: %v", err)
	}
	if !ok {
		t.Fatal("expected a saved position")
	}
	if pos.Position != 120 || pos.Duration != 5400 {
		t.Errorf("got %+v, want position=120 duration=5400", pos)
	}
}

func TestLoadPositionMissing(t *testing.T) {
	d := openTestDB(t)

	_, ok, err := d.LoadPosition("nope.mp4")
	if err != nil {
		t.Fatalf("LoadPosition: %v", err)
	}
	if ok {
		t.Fatal("expected no saved position")
	}
}

func TestLoadPositionNearEndIsNotResumable(t *testing.T) {
	d := openTestDB(t)

	if err := d.SavePosition("movie.mp4", "Movie", 5390, 5400); err != nil {
		t.Fatalf("SavePosition: %v", err)
	}

	_, ok, err := d.LoadPosition("movie.mp4")
	if err != nil {
		t.Fatalf("LoadPosition: %v", err)
	}
	if ok {
		t.Fatal("expected position within resumeMargin of the end to be treated as finished")
	}
}

func TestClearPosition(t *testing.T) {
	d := openTestDB(t)

	if err := d.SavePosition("movie.mp4", "Movie", 120, 5400); err != nil {
		t.Fatalf("SavePosition: %v", err)
	}
	if err := d.ClearPosition("movie.mp4"); err != nil {
		t.Fatalf("ClearPosition: %v", err)
	}

	_, ok, err := d.LoadPosition("movie.mp4")
	if err != nil {
		t.Fatalf("LoadPosition: %v", err)
	}
	if ok {
		t.Fatal("expected position to be cleared")
	}
}
