package history

import (
	"context"
	"database/sql"
	"reflect"
	"strings"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestMigrateIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("recorded migrations = %d, want 1", n)
	}
}

func TestRecordBestRecent(t *testing.T) {
	ctx := context.Background()
	st := NewStore(openTestDB(t))
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	results := []Result{
		{ID: "a", Score: 6, Rounds: 5, RoundCounts: []int{2, 1, 0, 2, 1}, StartedAt: base, FinishedAt: base.Add(time.Minute)},
		{ID: "b", Score: 9, Rounds: 5, RoundCounts: []int{2, 2, 2, 2, 1}, StartedAt: base, FinishedAt: base.Add(2 * time.Minute)},
		{ID: "c", Score: 6, Rounds: 5, RoundCounts: []int{1, 1, 2, 1, 1}, StartedAt: base, FinishedAt: base.Add(3 * time.Minute)},
	}
	for _, r := range results {
		if err := st.Record(ctx, r); err != nil {
			t.Fatalf("record %s: %v", r.ID, err)
		}
	}
	// Duplicate IDs are ignored.
	if err := st.Record(ctx, Result{ID: "a", Score: 0, Rounds: 5, RoundCounts: []int{}}); err != nil {
		t.Fatalf("duplicate record: %v", err)
	}

	best, err := st.Best(ctx, 10)
	if err != nil {
		t.Fatalf("best: %v", err)
	}
	if got := ids(best); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Fatalf("best order = %v", got)
	}
	if !reflect.DeepEqual(best[1].RoundCounts, []int{2, 1, 0, 2, 1}) {
		t.Fatalf("round counts = %v", best[1].RoundCounts)
	}
	if !best[1].FinishedAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("finished at = %v", best[1].FinishedAt)
	}

	recent, err := st.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if got := ids(recent); !reflect.DeepEqual(got, []string{"c", "b"}) {
		t.Fatalf("recent order = %v", got)
	}
}

func TestBestDefaultLimit(t *testing.T) {
	ctx := context.Background()
	st := NewStore(openTestDB(t))
	got, err := st.Best(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("empty board returned %d rows", len(got))
	}
}

func ids(rs []Result) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestCorruptTimestampIsAnError(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Exec(`INSERT INTO sessions(id, score, rounds, round_counts, started_at, finished_at)
		VALUES ('bad', 3, 5, '[1,1,1,0,0]', 'yesterday', '2026-10-01T12:00:00Z')`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err := NewStore(db).Best(context.Background(), 10)
	if err == nil || !strings.Contains(err.Error(), "started_at for bad") {
		t.Fatalf("err = %v, want started_at decode error", err)
	}
}
