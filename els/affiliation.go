package els

import "context"

// affiliationPayloadKey is the top-level key of affiliation retrieval
// responses.
const affiliationPayloadKey = "affiliation-retrieval-response"

// Affiliation is a Scopus affiliation profile, an institution authors
// publish under.
type Affiliation struct {
	Profile

	Name string
}

// NewAffiliation returns an Affiliation for a Scopus affiliation ID.
func NewAffiliation(id string) *Affiliation {
	return NewAffiliationURI(BaseURL + "content/affiliation/affiliation_id/" + id)
}

// NewAffiliationURI returns an Affiliation for a URI obtained from a
// prior API response.
func NewAffiliationURI(uri string) *Affiliation {
	return &Affiliation{Profile: Profile{Entity: Entity{URI: uri}}}
}

// Read fetches the affiliation record and populates the identifier and
// name. A failed or malformed response leaves prior state untouched.
func (a *Affiliation) Read(ctx context.Context, c *Client) error {
	data, err := fetchPayload(ctx, c, a.URI, affiliationPayloadKey)
	if err != nil {
		return err
	}

	id, err := stringField(data, "coredata", "dc:identifier")
	if err != nil {
		return err
	}
	name, err := stringField(data, "affiliation-name")
	if err != nil {
		return err
	}

	a.Data = data
	a.ID = id
	a.Name = name
	return nil
}

// ReadDocs fetches the affiliation's linked document list across all
// pages.
func (a *Affiliation) ReadDocs(ctx context.Context, c *Client) error {
	return a.Profile.ReadDocs(ctx, c, affiliationPayloadKey)
}
