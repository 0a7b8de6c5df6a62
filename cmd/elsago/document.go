package main

import (
	"fmt"

	"github.com/bibliotek/elsago/els"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(documentCmd)
}

var documentCmd = &cobra.Command{
	Use:     "document <scopus-id>",
	Aliases: []string{"doc"},
	Short:   "Fetch a document record",
	Long: `Fetch a document (abstract) record from the Scopus abstract retrieval
API.

Example:
  elsago document 85123456789`,
	Args: cobra.ExactArgs(1),
	RunE: runDocument,
}

// DocumentResponse is the JSON output of the document command.
type DocumentResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URI   string `json:"uri"`
}

func runDocument(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	doc := els.NewDocument(args[0])
	if err := doc.Read(cmd.Context(), client); err != nil {
		exitWithError(exitCodeFor(err), "reading document %s: %v", args[0], err)
	}

	storeRecord("document", doc.URI, doc.ID, doc.Data)

	if humanOutput {
		fmt.Printf("%s\n%s\n", doc.ID, doc.Title)
		return nil
	}

	return outputJSON(DocumentResponse{
		ID:    doc.ID,
		Title: doc.Title,
		URI:   doc.URI,
	})
}
