// File: internal/feed/inject.go

// Package feed composes the home feed: filtered listings interleaved with
// sponsored placements at a fixed cadence.
package feed

import (
	"uslocal_backend/internal/listing"
	"uslocal_backend/internal/placement"
)

// Item is one card in the composed feed: either a listing or an ad, never
// both.
type Item struct {
	Listing *listing.FeedItem
	Ad      *placement.Placement
}

// injectSponsored interleaves ads into the listing stream: after every
// interval-th listing, the next ad is inserted, cycling through the ads in
// order. The input slices are not mutated. With no ads or a non-positive
// interval the stream passes through unchanged.
func injectSponsored(items []listing.FeedItem, ads []placement.Placement, interval int) []Item {
	out := make([]Item, 0, len(items)+1)
	if len(ads) == 0 || interval <= 0 {
		for i := range items {
			out = append(out, Item{Listing: &items[i]})
		}
		return out
	}

	adIdx := 0
	for i := range items {
		out = append(out, Item{Listing: &items[i]})
		if (i+1)%interval == 0 {
			ad := ads[adIdx%len(ads)]
			out = append(out, Item{Ad: &ad})
			adIdx++
		}
	}
	return out
}
