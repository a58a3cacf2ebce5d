// Package listing holds the current collection listing and keeps it
// consistent under overlapping navigations.
package listing

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pictorlabs/pictor/errors"
	"github.com/pictorlabs/pictor/logging"
	"github.com/pictorlabs/pictor/pkg/api"
	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/nav"
)

// Listing is a fetched view of one navigation target.
type Listing struct {
	Target nav.Target
	Items  []models.CollectionItem
	Crumbs []nav.Crumb
}

// Store fetches listings and retains the most recent one. Overlapping
// navigations resolve last-call-wins: the intended target is recorded
// synchronously when Navigate is called, and a response is applied only if
// no later navigation started while it was in flight. Superseded fetches are
// not cancelled, their responses are simply discarded.
type Store struct {
	client api.Client
	logger *logrus.Entry

	mu         sync.Mutex
	generation uint64
	target     nav.Target
	current    *Listing
	listeners  []func(Listing)
}

// NewStore creates a listing store over the given backend client.
func NewStore(client api.Client) *Store {
	return &Store{
		client: client,
		logger: logging.NewLogger("listing"),
		target: nav.Root(),
	}
}

// Target returns the intended navigation target. During an in-flight fetch
// this is the destination, not the currently displayed listing's target.
func (s *Store) Target() nav.Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// Current returns the most recently applied listing, or nil before the first
// successful fetch.
func (s *Store) Current() *Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers a callback invoked each time a listing is applied.
// Callbacks run on the goroutine that completed the navigation.
func (s *Store) Subscribe(fn func(Listing)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Navigate fetches the listing for target and applies it. The intended
// target advances before the fetch starts, so breadcrumbs and highlights can
// follow the user's latest choice immediately.
//
// Returns (nil, nil) when a later navigation superseded this one while its
// response was in flight. On fetch failure the previous listing is retained
// so the view never goes blank over a transient error.
func (s *Store) Navigate(ctx context.Context, target nav.Target) (*Listing, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.target = target
	s.mu.Unlock()

	payload, err := s.client.FetchListing(ctx, target)
	if err != nil {
		s.mu.Lock()
		stale := gen != s.generation
		s.mu.Unlock()
		if stale {
			s.logger.WithField("target", target.String()).Debug("Discarding superseded fetch error")
			return nil, nil
		}
		return nil, err
	}

	items, err := normalize(payload)
	if err != nil {
		s.mu.Lock()
		stale := gen != s.generation
		s.mu.Unlock()
		if stale {
			s.logger.WithField("target", target.String()).Debug("Discarding superseded malformed response")
			return nil, nil
		}
		return nil, err
	}

	applied := Listing{
		Target: target,
		Items:  items,
		Crumbs: nav.BreadcrumbFor(target),
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.WithField("target", target.String()).Debug("Discarding superseded listing response")
		return nil, nil
	}
	s.current = &applied
	listeners := make([]func(Listing), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(applied)
	}
	return &applied, nil
}

// Refresh re-fetches the intended target. Used after mutations so the view
// reflects the backend's state rather than a locally patched listing.
func (s *Store) Refresh(ctx context.Context) (*Listing, error) {
	return s.Navigate(ctx, s.Target())
}

// normalize folds the two wire variants into one item sequence. General
// listings carry collections, category listings carry items; a payload with
// neither is malformed rather than empty.
func normalize(payload *models.ListingPayload) ([]models.CollectionItem, error) {
	switch {
	case payload.HasCollections:
		return payload.Collections, nil
	case payload.HasItems:
		return payload.Items, nil
	default:
		return nil, errors.MalformedResponse("listing response has neither collections nor items")
	}
}
