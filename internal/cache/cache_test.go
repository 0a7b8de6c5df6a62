package cache

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPutGet(t *testing.T) {
	db := openTestDB(t)

	rec := Record{
		URI:       "https://api.elsevier.com/content/author/author_id/123",
		Kind:      "author",
		ID:        "AUTHOR_ID:123",
		Payload:   `{"coredata":{"dc:identifier":"AUTHOR_ID:123"}}`,
		FetchedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
	}
	if err := db.Put(rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := db.Get(rec.URI)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() = nil, want record")
	}
	if got.Kind != "author" || got.ID != "AUTHOR_ID:123" || got.Payload != rec.Payload {
		t.Errorf("Get() = %+v, want %+v", got, rec)
	}
	if !got.FetchedAt.Equal(rec.FetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", got.FetchedAt, rec.FetchedAt)
	}
}

func TestGetMissing(t *testing.T) {
	db := openTestDB(t)

	got, err := db.Get("https://api.elsevier.com/content/author/author_id/999")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil for missing record", got)
	}
}

func TestPutReplaces(t *testing.T) {
	db := openTestDB(t)

	uri := "https://api.elsevier.com/content/author/author_id/123"
	first := Record{URI: uri, Kind: "author", ID: "AUTHOR_ID:123", Payload: "old", FetchedAt: time.Now()}
	second := Record{URI: uri, Kind: "author", ID: "AUTHOR_ID:123", Payload: "new", FetchedAt: time.Now()}

	if err := db.Put(first); err != nil {
		t.Fatal(err)
	}
	if err := db.Put(second); err != nil {
		t.Fatal(err)
	}

	got, err := db.Get(uri)
	if err != nil {
		t.Fatal(err)
	}
	if got.Payload != "new" {
		t.Errorf("Payload = %q, want replacement %q", got.Payload, "new")
	}

	recs, err := db.List("")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Errorf("List() returned %d records, want 1 after replace", len(recs))
	}
}

func TestListByKind(t *testing.T) {
	db := openTestDB(t)

	now := time.Now()
	records := []Record{
		{URI: "uri-1", Kind: "author", ID: "AUTHOR_ID:1", Payload: "{}", FetchedAt: now},
		{URI: "uri-2", Kind: "document", ID: "SCOPUS_ID:2", Payload: "{}", FetchedAt: now},
		{URI: "uri-3", Kind: "author", ID: "AUTHOR_ID:3", Payload: "{}", FetchedAt: now},
	}
	for _, rec := range records {
		if err := db.Put(rec); err != nil {
			t.Fatal(err)
		}
	}

	authors, err := db.List("author")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(authors) != 2 {
		t.Errorf("List(author) returned %d records, want 2", len(authors))
	}

	all, err := db.List("")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List() returned %d records, want 3", len(all))
	}
}

func TestClear(t *testing.T) {
	db := openTestDB(t)

	for _, uri := range []string{"uri-1", "uri-2"} {
		if err := db.Put(Record{URI: uri, Kind: "author", ID: "x", Payload: "{}", FetchedAt: time.Now()}); err != nil {
			t.Fatal(err)
		}
	}

	n, err := db.Clear()
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}

	recs, err := db.List("")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 0 {
		t.Errorf("List() after Clear returned %d records, want 0", len(recs))
	}
}
