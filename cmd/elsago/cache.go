package main

import (
	"fmt"

	"github.com/bibliotek/elsago/internal/cache"
	"github.com/spf13/cobra"
)

var cacheKind string

func init() {
	cacheListCmd.Flags().StringVar(&cacheKind, "kind", "", "Filter by record kind (author, affiliation, document)")
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the local record store",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List locally stored records",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all locally stored records",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

// CacheListResponse is the JSON output of cache list.
type CacheListResponse struct {
	Count   int            `json:"count"`
	Records []cache.Record `json:"records"`
}

func openRecordStore() *cache.DB {
	path, err := cache.DefaultPath()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	db, err := cache.Open(path)
	if err != nil {
		exitWithError(ExitError, "opening record store: %v", err)
	}
	return db
}

func runCacheList(cmd *cobra.Command, args []string) error {
	db := openRecordStore()
	defer db.Close()

	recs, err := db.List(cacheKind)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		for _, rec := range recs {
			fmt.Printf("%-12s %-24s %s  %s\n", rec.Kind, truncateString(rec.ID, 24), rec.FetchedAt.Format("2006-01-02 15:04"), rec.URI)
		}
		fmt.Printf("%d records\n", len(recs))
		return nil
	}

	// Payloads can be large; the listing only carries metadata.
	for i := range recs {
		recs[i].Payload = ""
	}
	return outputJSON(CacheListResponse{Count: len(recs), Records: recs})
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	db := openRecordStore()
	defer db.Close()

	n, err := db.Clear()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("removed %d records\n", n)
		return nil
	}
	return outputJSON(StatusResponse{Status: "cleared", Count: n})
}
