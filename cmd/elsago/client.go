package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bibliotek/elsago/els"
	"github.com/bibliotek/elsago/internal/cache"
	"github.com/bibliotek/elsago/internal/config"
)

// newClient builds a client from the resolved configuration.
func newClient() (*els.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key configured (set api_key in %s or %s)", config.Path(), config.EnvAPIKey)
	}

	var opts []els.Option
	if cfg.InstToken != "" {
		opts = append(opts, els.WithInstToken(cfg.InstToken))
	}
	return els.NewClient(cfg.APIKey, opts...), nil
}

// storeRecord writes a fetched record through to the local database.
// A failure to store never fails the fetch; it is reported on stderr
// and the command proceeds.
func storeRecord(kind, uri, id string, data map[string]any) {
	payload, err := json.Marshal(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: encoding %s record: %v\n", kind, err)
		return
	}

	path, err := cache.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return
	}
	db, err := cache.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: opening record store: %v\n", err)
		return
	}
	defer db.Close()

	rec := cache.Record{
		URI:       uri,
		Kind:      kind,
		ID:        id,
		Payload:   string(payload),
		FetchedAt: time.Now(),
	}
	if err := db.Put(rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: storing %s record: %v\n", kind, err)
	}
}
