// Package loader returns the full recipe collection, preferring the persisted
// copy and otherwise fetching every source.
//
// A fetch batch is all or nothing: if any source fails, the whole load fails,
// nothing is persisted, and no partial collection is returned. There are no
// retries. A single unavailable source therefore keeps the cache empty until
// every source answers; this is intentional and pending product confirmation.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"eTEats_web/models"
	"eTEats_web/store"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"
)

// StorageKey is the key holding the serialized collection.
const StorageKey = "recipes"

type Loader struct {
	sources []string
	fetcher Fetcher
	store   store.Store
}

func New(sources []string, fetcher Fetcher, s store.Store) *Loader {
	return &Loader{
		sources: append([]string(nil), sources...),
		fetcher: fetcher,
		store:   s,
	}
}

// Recipes returns the persisted collection if there is one. Stored data is
// trusted as is: neither schema nor age is checked. Otherwise every source is
// fetched and, once all have succeeded, the collection is persisted and
// returned.
func (l *Loader) Recipes(ctx context.Context) (models.Recipes, error) {
	if recipes, ok := l.cached(ctx); ok {
		return recipes, nil
	}

	recipes, err := l.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(recipes)
	if err != nil {
		return nil, fmt.Errorf("encode recipes: %w", err)
	}
	if err := l.store.Put(ctx, StorageKey, raw); err != nil {
		return nil, fmt.Errorf("save recipes: %w", err)
	}

	log.WithField("count", len(recipes)).Info("recipes fetched and saved")
	return recipes, nil
}

// Clear removes the persisted collection so the next load refetches.
func (l *Loader) Clear(ctx context.Context) error {
	if err := l.store.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("clear recipes: %w", err)
	}
	return nil
}

// cached treats read errors, absence and undecodable data alike as a miss.
func (l *Loader) cached(ctx context.Context) (models.Recipes, bool) {
	raw, err := l.store.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.WithError(err).Debug("reading stored recipes")
		}
		return nil, false
	}

	var recipes models.Recipes
	if err := json.Unmarshal(raw, &recipes); err != nil {
		log.WithError(err).Debug("decoding stored recipes")
		return nil, false
	}
	if recipes == nil {
		return nil, false
	}
	return recipes, true
}

func (l *Loader) fetchAll(ctx context.Context) (models.Recipes, error) {
	recipes := make(models.Recipes, len(l.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, source := range l.sources {
		i, source := i, source
		g.Go(func() error {
			recipe, err := l.fetcher.Fetch(gctx, source)
			if err != nil {
				log.WithFields(log.Fields{"index": i + 1, "source": source}).
					WithError(err).Error("fetching recipe")
				return fmt.Errorf("fetch recipe %d (%s): %w", i+1, source, err)
			}
			recipes[i] = recipe
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return recipes, nil
}
