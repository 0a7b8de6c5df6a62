package els

import (
	"context"
	"fmt"
	"strings"
)

// Entity is a remote bibliographic record addressable by a URI. Data
// and ID are unset until a successful Read and are replaced wholesale
// on each one; a failed Read leaves prior state untouched.
type Entity struct {
	// URI identifies the remote resource, as returned by prior API
	// responses or built from a Scopus ID.
	URI string

	// Data is the normalized payload from the last successful Read.
	Data map[string]any

	// ID is the dc:identifier extracted from the payload's coredata.
	ID string
}

// Read fetches the record behind e.URI and replaces e.Data and e.ID.
// payloadKey is the response-type-specific top-level key the record is
// nested under (see the concrete entity types for the known keys).
func (e *Entity) Read(ctx context.Context, c *Client, payloadKey string) error {
	data, err := fetchPayload(ctx, c, e.URI, payloadKey)
	if err != nil {
		return err
	}

	id, err := stringField(data, "coredata", "dc:identifier")
	if err != nil {
		return err
	}

	e.Data = data
	e.ID = id
	return nil
}

// fetchPayload performs the request and normalizes the response. The
// record under payloadKey is serialized either as a mapping or as a
// one-element list containing it, depending on the retrieval view;
// both shapes reduce to the same mapping.
func fetchPayload(ctx context.Context, c *Client, uri, payloadKey string) (map[string]any, error) {
	resp, err := c.ExecRequest(ctx, uri)
	if err != nil {
		return nil, err
	}

	raw, ok := resp[payloadKey]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q key at %s", ErrMalformedResponse, payloadKey, uri)
	}

	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: empty %q list at %s", ErrMalformedResponse, payloadKey, uri)
		}
		m, ok := v[0].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q element is not an object at %s", ErrMalformedResponse, payloadKey, uri)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %q is neither object nor list at %s", ErrMalformedResponse, payloadKey, uri)
	}
}

// stringField walks a path of nested mappings and returns the string at
// the end, or ErrMalformedResponse if any step is missing or has the
// wrong type.
func stringField(data map[string]any, path ...string) (string, error) {
	cur := any(data)
	for i, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", fmt.Errorf("%w: %s is not an object", ErrMalformedResponse, strings.Join(path[:i], "/"))
		}
		cur, ok = m[key]
		if !ok {
			return "", fmt.Errorf("%w: missing %s", ErrMalformedResponse, strings.Join(path[:i+1], "/"))
		}
	}

	s, ok := cur.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", ErrMalformedResponse, strings.Join(path, "/"))
	}
	return s, nil
}
