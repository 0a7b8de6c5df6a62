package main

import (
	"fmt"
	"os"

	"github.com/bibliotek/elsago/els"
	"github.com/bibliotek/elsago/internal/export"
	"github.com/spf13/cobra"
)

var (
	affiliationDocs   bool
	affiliationBibtex string
)

func init() {
	affiliationCmd.Flags().BoolVar(&affiliationDocs, "docs", false, "Also fetch the affiliation's document list")
	affiliationCmd.Flags().StringVar(&affiliationBibtex, "bibtex", "", "Write the document list as BibTeX to a file (implies --docs)")
	rootCmd.AddCommand(affiliationCmd)
}

var affiliationCmd = &cobra.Command{
	Use:     "affiliation <scopus-affiliation-id>",
	Aliases: []string{"affil"},
	Short:   "Fetch an affiliation profile",
	Long: `Fetch an affiliation (institution) profile from the Scopus affiliation
retrieval API.

With --docs, also fetches the affiliation's linked document list,
following pagination at one request per second.

Example:
  elsago affiliation 60027950 --docs`,
	Args: cobra.ExactArgs(1),
	RunE: runAffiliation,
}

// AffiliationResponse is the JSON output of the affiliation command.
type AffiliationResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	URI       string           `json:"uri"`
	Documents []map[string]any `json:"documents,omitempty"`
}

func runAffiliation(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	ctx := cmd.Context()
	affil := els.NewAffiliation(args[0])
	if err := affil.Read(ctx, client); err != nil {
		exitWithError(exitCodeFor(err), "reading affiliation %s: %v", args[0], err)
	}

	if affiliationDocs || affiliationBibtex != "" {
		if err := affil.ReadDocs(ctx, client); err != nil {
			exitWithError(exitCodeFor(err), "reading documents for affiliation %s: %v", args[0], err)
		}
	}

	storeRecord("affiliation", affil.URI, affil.ID, affil.Data)

	if affiliationBibtex != "" {
		bib := export.ToBibTeXList(affil.Documents)
		if err := os.WriteFile(affiliationBibtex, []byte(bib), 0o644); err != nil {
			exitWithError(ExitError, "writing %s: %v", affiliationBibtex, err)
		}
	}

	if humanOutput {
		fmt.Printf("%s (%s)\n", affil.Name, affil.ID)
		if affiliationDocs || affiliationBibtex != "" {
			fmt.Printf("%d documents\n", len(affil.Documents))
		}
		return nil
	}

	return outputJSON(AffiliationResponse{
		ID:        affil.ID,
		Name:      affil.Name,
		URI:       affil.URI,
		Documents: affil.Documents,
	})
}
