package els

import (
	"context"
	"fmt"
	"strconv"
)

// Profile is an Entity with an associated paginated list of linked
// documents. Authors and affiliations are profiles; plain documents are
// not.
type Profile struct {
	Entity

	// Documents holds the document summaries from the last successful
	// ReadDocs, in API order across all pages. Replaced wholesale on
	// each call.
	Documents []map[string]any
}

// ReadDocs fetches the documents view of the profile, following offset
// pagination until every page has been retrieved. Any page failure
// aborts the whole fetch and leaves p.Documents untouched.
//
// The page arithmetic mirrors the upstream contract as published: the
// first page is implicit and floor(total/PageSize) more pages follow
// with 1-based start offsets of (i+1)*PageSize+1. A total that is an
// exact multiple of PageSize therefore requests one page starting just
// past the last record; the boundary behavior is pinned by tests.
func (p *Profile) ReadDocs(ctx context.Context, c *Client, payloadKey string) error {
	data, err := fetchPayload(ctx, c, p.URI+"?view=documents", payloadKey)
	if err != nil {
		return err
	}

	total, docs, err := documentsPage(data)
	if err != nil {
		return err
	}

	for i := 0; i < total/PageSize; i++ {
		start := (i+1)*PageSize + 1
		uri := p.URI + "?view=documents&start=" + strconv.Itoa(start)

		data, err := fetchPayload(ctx, c, uri, payloadKey)
		if err != nil {
			return err
		}
		_, page, err := documentsPage(data)
		if err != nil {
			return err
		}
		docs = append(docs, page...)
	}

	p.Documents = docs
	return nil
}

// documentsPage extracts the total record count and the page's document
// list from a documents-view payload.
func documentsPage(data map[string]any) (int, []map[string]any, error) {
	section, ok := data["documents"].(map[string]any)
	if !ok {
		return 0, nil, fmt.Errorf("%w: missing documents section", ErrMalformedResponse)
	}

	total, err := docTotal(section["@total"])
	if err != nil {
		return 0, nil, err
	}

	docs, err := documentList(section["abstract-document"])
	if err != nil {
		return 0, nil, err
	}

	return total, docs, nil
}

// docTotal coerces the @total field, which the API serializes either as
// a JSON string or as a number.
func docTotal(v any) (int, error) {
	switch n := v.(type) {
	case string:
		total, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("%w: non-numeric documents @total %q", ErrMalformedResponse, n)
		}
		return total, nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: missing documents @total", ErrMalformedResponse)
	}
}

// documentList normalizes the abstract-document field: a list of
// records, a single record when the page holds exactly one, or absent
// when it holds none.
func documentList(v any) ([]map[string]any, error) {
	switch docs := v.(type) {
	case nil:
		return nil, nil
	case []any:
		out := make([]map[string]any, 0, len(docs))
		for _, d := range docs {
			m, ok := d.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: abstract-document entry is not an object", ErrMalformedResponse)
			}
			out = append(out, m)
		}
		return out, nil
	case map[string]any:
		return []map[string]any{docs}, nil
	default:
		return nil, fmt.Errorf("%w: abstract-document is neither object nor list", ErrMalformedResponse)
	}
}
