package els

import "context"

// authorPayloadKey is the top-level key of author retrieval responses.
const authorPayloadKey = "author-retrieval-response"

// Author is a Scopus author profile.
type Author struct {
	Profile

	FirstName string
	LastName  string
	FullName  string
}

// NewAuthor returns an Author for a Scopus author ID.
func NewAuthor(id string) *Author {
	return NewAuthorURI(BaseURL + "content/author/author_id/" + id)
}

// NewAuthorURI returns an Author for a URI obtained from a prior API
// response.
func NewAuthorURI(uri string) *Author {
	return &Author{Profile: Profile{Entity: Entity{URI: uri}}}
}

// Read fetches the author record and populates the identifier and name
// fields. A failed or malformed response leaves prior state untouched.
func (a *Author) Read(ctx context.Context, c *Client) error {
	data, err := fetchPayload(ctx, c, a.URI, authorPayloadKey)
	if err != nil {
		return err
	}

	id, err := stringField(data, "coredata", "dc:identifier")
	if err != nil {
		return err
	}
	first, err := stringField(data, "author-profile", "preferred-name", "given-name")
	if err != nil {
		return err
	}
	last, err := stringField(data, "author-profile", "preferred-name", "surname")
	if err != nil {
		return err
	}

	a.Data = data
	a.ID = id
	a.FirstName = first
	a.LastName = last
	a.FullName = first + " " + last
	return nil
}

// ReadDocs fetches the author's linked document list across all pages.
func (a *Author) ReadDocs(ctx context.Context, c *Client) error {
	return a.Profile.ReadDocs(ctx, c, authorPayloadKey)
}
