package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/psyquest/internal/catalog"
	"github.com/abhisek/psyquest/internal/store"
)

// loadCatalog opens the configured catalog: the SQLite store when a DB is
// set, else the YAML file, else the embedded catalog. The second result
// describes the source for display.
func loadCatalog(ctx context.Context) (*catalog.Catalog, string, error) {
	switch {
	case cfg.DB != "":
		st, err := store.Open(cfg.DB)
		if err != nil {
			return nil, "", fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		cat, err := st.Catalog(ctx)
		if err != nil {
			return nil, "", err
		}
		return cat, "store " + cfg.DB, nil

	case cfg.Catalog != "":
		cat, err := catalog.LoadFile(cfg.Catalog)
		if err != nil {
			return nil, "", err
		}
		return cat, cfg.Catalog, nil

	default:
		cat, err := catalog.Default()
		if err != nil {
			return nil, "", fmt.Errorf("embedded catalog: %w", err)
		}
		return cat, "embedded", nil
	}
}
