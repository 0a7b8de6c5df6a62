package els

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

// docsHandler mocks the documents view of a profile with the given
// total record count, slicing pages the way the API does. It records
// the start offset of every request (1 for the implicit first page).
type docsHandler struct {
	total    int
	starts   []int
	pageLens []int
}

func (h *docsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("view") != "documents" {
		http.Error(w, "unexpected view", http.StatusBadRequest)
		return
	}

	start := 1
	if s := r.URL.Query().Get("start"); s != "" {
		var err error
		if start, err = strconv.Atoi(s); err != nil {
			http.Error(w, "bad start", http.StatusBadRequest)
			return
		}
	}
	h.starts = append(h.starts, start)

	count := h.total - start + 1
	if count < 0 {
		count = 0
	}
	if count > PageSize {
		count = PageSize
	}
	h.pageLens = append(h.pageLens, count)

	docs := make([]map[string]any, count)
	for i := range docs {
		docs[i] = map[string]any{
			"dc:identifier": fmt.Sprintf("SCOPUS_ID:%d", start+i),
			"dc:title":      fmt.Sprintf("Document %d", start+i),
		}
	}

	json.NewEncoder(w).Encode(map[string]any{
		"author-retrieval-response": []any{
			map[string]any{
				"documents": map[string]any{
					"@total":            strconv.Itoa(h.total),
					"abstract-document": docs,
				},
			},
		},
	})
}

func TestReadDocsPagination(t *testing.T) {
	// Boundary totals around the page size. The request count follows
	// the upstream formula 1 + floor(total/PageSize), so exact
	// multiples of PageSize issue one request past the last record.
	tests := []struct {
		name         string
		total        int
		wantRequests int
		wantStarts   []int
	}{
		{name: "empty", total: 0, wantRequests: 1, wantStarts: []int{1}},
		{name: "under one page", total: 10, wantRequests: 1, wantStarts: []int{1}},
		{name: "exactly one page", total: 25, wantRequests: 2, wantStarts: []int{1, 26}},
		{name: "one past a page", total: 26, wantRequests: 2, wantStarts: []int{1, 26}},
		{name: "partial second page", total: 30, wantRequests: 2, wantStarts: []int{1, 26}},
		{name: "exactly two pages", total: 50, wantRequests: 3, wantStarts: []int{1, 26, 51}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &docsHandler{total: tt.total}
			srv := httptest.NewServer(handler)
			defer srv.Close()

			p := Profile{Entity: Entity{URI: srv.URL + "/content/author/author_id/123"}}
			if err := p.ReadDocs(context.Background(), testClient(), "author-retrieval-response"); err != nil {
				t.Fatalf("ReadDocs() error = %v", err)
			}

			if len(handler.starts) != tt.wantRequests {
				t.Errorf("issued %d requests, want %d", len(handler.starts), tt.wantRequests)
			}
			if fmt.Sprint(handler.starts) != fmt.Sprint(tt.wantStarts) {
				t.Errorf("start offsets = %v, want %v", handler.starts, tt.wantStarts)
			}

			sum := 0
			for _, n := range handler.pageLens {
				sum += n
			}
			if len(p.Documents) != sum {
				t.Errorf("Documents length = %d, want sum of page lengths %d", len(p.Documents), sum)
			}
			if len(p.Documents) != tt.total {
				t.Errorf("Documents length = %d, want total %d", len(p.Documents), tt.total)
			}
		})
	}
}

func TestReadDocsOrder(t *testing.T) {
	handler := &docsHandler{total: 30}
	srv := httptest.NewServer(handler)
	defer srv.Close()

	p := Profile{Entity: Entity{URI: srv.URL + "/content/author/author_id/123"}}
	if err := p.ReadDocs(context.Background(), testClient(), "author-retrieval-response"); err != nil {
		t.Fatalf("ReadDocs() error = %v", err)
	}

	// Pages append in order, so identifiers run 1..30.
	for i, doc := range p.Documents {
		want := fmt.Sprintf("SCOPUS_ID:%d", i+1)
		if doc["dc:identifier"] != want {
			t.Fatalf("Documents[%d] identifier = %v, want %s", i, doc["dc:identifier"], want)
		}
	}
}

func TestReadDocsPageFailureAborts(t *testing.T) {
	// First page succeeds, every later page fails. The whole fetch must
	// fail and leave prior state untouched.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start") != "" {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
			return
		}
		docs := make([]map[string]any, PageSize)
		for i := range docs {
			docs[i] = map[string]any{"dc:title": fmt.Sprintf("Document %d", i+1)}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"author-retrieval-response": map[string]any{
				"documents": map[string]any{
					"@total":            "30",
					"abstract-document": docs,
				},
			},
		})
	}))
	defer srv.Close()

	prior := []map[string]any{{"dc:title": "previous result"}}
	p := Profile{Entity: Entity{URI: srv.URL + "/content/author/author_id/123"}}
	p.Documents = prior

	err := p.ReadDocs(context.Background(), testClient(), "author-retrieval-response")
	if err == nil {
		t.Fatal("ReadDocs() error = nil, want error")
	}
	if !IsRateLimited(err) {
		t.Errorf("ReadDocs() error = %v, want rate-limited HTTP error", err)
	}
	if len(p.Documents) != 1 || p.Documents[0]["dc:title"] != "previous result" {
		t.Errorf("Documents = %v, want prior state preserved on failure", p.Documents)
	}
}

func TestDocTotal(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int
		wantErr bool
	}{
		{name: "string", value: "30", want: 30},
		{name: "number", value: float64(30), want: 30},
		{name: "zero string", value: "0", want: 0},
		{name: "non-numeric string", value: "lots", wantErr: true},
		{name: "missing", value: nil, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := docTotal(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("docTotal(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("docTotal(%v) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestDocumentListSingleRecord(t *testing.T) {
	// A page with exactly one document may serialize it as a bare
	// object instead of a one-element list.
	docs, err := documentList(map[string]any{"dc:title": "Only One"})
	if err != nil {
		t.Fatalf("documentList() error = %v", err)
	}
	if len(docs) != 1 || docs[0]["dc:title"] != "Only One" {
		t.Errorf("documentList() = %v, want one-element list", docs)
	}
}
