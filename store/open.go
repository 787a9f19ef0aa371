package store

import (
	"context"
	"fmt"
	"strings"

	"eTEats_web/config"
)

// Open builds the backend selected by cfg.Store.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch strings.ToLower(cfg.Store) {
	case config.StoreMemory:
		return NewMemory(), nil
	case config.StoreSQLite:
		s, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreFirestore:
		s, err := OpenFirestore(ctx, cfg.FirestoreProject, cfg.FirestoreCollection, cfg.FirestoreCredentials)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreS3:
		s, err := OpenS3(ctx, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
