package els

import "context"

// documentPayloadKey is the top-level key of abstract retrieval
// responses.
const documentPayloadKey = "abstracts-retrieval-response"

// Document is a Scopus document (abstract) record.
type Document struct {
	Entity

	Title string
}

// NewDocument returns a Document for a Scopus document ID.
func NewDocument(id string) *Document {
	return NewDocumentURI(BaseURL + "content/abstract/scopus_id/" + id)
}

// NewDocumentURI returns a Document for a URI obtained from a prior API
// response.
func NewDocumentURI(uri string) *Document {
	return &Document{Entity: Entity{URI: uri}}
}

// Read fetches the document record and populates the identifier and
// title. A failed or malformed response leaves prior state untouched.
func (d *Document) Read(ctx context.Context, c *Client) error {
	data, err := fetchPayload(ctx, c, d.URI, documentPayloadKey)
	if err != nil {
		return err
	}

	id, err := stringField(data, "coredata", "dc:identifier")
	if err != nil {
		return err
	}
	title, err := stringField(data, "coredata", "dc:title")
	if err != nil {
		return err
	}

	d.Data = data
	d.ID = id
	d.Title = title
	return nil
}
