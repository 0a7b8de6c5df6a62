package main

import (
	"fmt"
	"os"

	"github.com/bibliotek/elsago/els"
	"github.com/bibliotek/elsago/internal/export"
	"github.com/spf13/cobra"
)

var (
	authorDocs   bool
	authorBibtex string
)

func init() {
	authorCmd.Flags().BoolVar(&authorDocs, "docs", false, "Also fetch the author's document list")
	authorCmd.Flags().StringVar(&authorBibtex, "bibtex", "", "Write the document list as BibTeX to a file (implies --docs)")
	rootCmd.AddCommand(authorCmd)
}

var authorCmd = &cobra.Command{
	Use:   "author <scopus-author-id>",
	Short: "Fetch an author profile",
	Long: `Fetch an author profile from the Scopus author retrieval API.

With --docs, also fetches the author's linked document list, following
pagination at one request per second.

Example:
  elsago author 7004212771 --docs --bibtex doe.bib`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthor,
}

// AuthorResponse is the JSON output of the author command.
type AuthorResponse struct {
	ID        string           `json:"id"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	FullName  string           `json:"full_name"`
	URI       string           `json:"uri"`
	Documents []map[string]any `json:"documents,omitempty"`
}

func runAuthor(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	ctx := cmd.Context()
	author := els.NewAuthor(args[0])
	if err := author.Read(ctx, client); err != nil {
		exitWithError(exitCodeFor(err), "reading author %s: %v", args[0], err)
	}

	if authorDocs || authorBibtex != "" {
		if err := author.ReadDocs(ctx, client); err != nil {
			exitWithError(exitCodeFor(err), "reading documents for author %s: %v", args[0], err)
		}
	}

	storeRecord("author", author.URI, author.ID, author.Data)

	if authorBibtex != "" {
		bib := export.ToBibTeXList(author.Documents)
		if err := os.WriteFile(authorBibtex, []byte(bib), 0o644); err != nil {
			exitWithError(ExitError, "writing %s: %v", authorBibtex, err)
		}
	}

	if humanOutput {
		fmt.Printf("%s (%s)\n", author.FullName, author.ID)
		if authorDocs || authorBibtex != "" {
			fmt.Printf("%d documents\n", len(author.Documents))
		}
		return nil
	}

	return outputJSON(AuthorResponse{
		ID:        author.ID,
		FirstName: author.FirstName,
		LastName:  author.LastName,
		FullName:  author.FullName,
		URI:       author.URI,
		Documents: author.Documents,
	})
}
