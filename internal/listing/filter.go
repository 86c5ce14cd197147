// File: internal/listing/filter.go
package listing

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"uslocal_backend/internal/geo"
)

// FilterOptions are the inputs to the filter/sort pipeline. The pipeline is
// pure: it never mutates the input collection.
type FilterOptions struct {
	Query       string
	Category    string
	MaxDistance float64
	// MaxDistanceUnit is the unit the max-distance value arrived in, when it
	// differs from Unit (a km-preference viewer dragging a miles slider, or
	// the reverse). Empty means MaxDistance is already in Unit.
	MaxDistanceUnit geo.Unit
	Unit            geo.Unit
	OpenNow         bool

	// Viewer coordinate; both nil when geolocation is denied or unavailable.
	ViewerLat *float64
	ViewerLng *float64

	// ViewerID surfaces the viewer's own pending/hidden listings.
	ViewerID *uuid.UUID

	// Now anchors the open-now predicate. Zero value means time.Now().
	Now time.Time
}

func (o *FilterOptions) hasViewerCoord() bool {
	return o.ViewerLat != nil && o.ViewerLng != nil
}

// FeedItem is a listing paired with its distance from the viewer, when known.
type FeedItem struct {
	Listing  Listing
	Distance *float64
}

// FilterResult carries the three derived views of the listing collection.
type FilterResult struct {
	// Feed is distance-bounded and sorted by proximity when the viewer
	// coordinate is present.
	Feed []FeedItem
	// Map is category/text/open-now filtered only: no distance bound, no
	// sort, but always restricted to listings with coordinates.
	Map []Listing
	// Featured is the promotional carousel: featured listings passing
	// every predicate except the distance bound.
	Featured []FeedItem
}

// Filter runs the full pipeline over the in-memory collection and produces
// the feed, map, and featured views in a single pass family.
func Filter(listings []Listing, opts FilterOptions) FilterResult {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	weekday := WeekdayKey(now)
	hhmm := now.Format("15:04")

	visible := func(l *Listing) bool {
		if l.PubliclyVisible() {
			return true
		}
		return opts.ViewerID != nil && l.OwnerID == *opts.ViewerID
	}

	matchesCategory := func(l *Listing) bool {
		if opts.Category == "" {
			return true
		}
		for _, c := range l.Categories {
			if c == opts.Category {
				return true
			}
		}
		return false
	}

	term := strings.ToLower(strings.TrimSpace(opts.Query))
	matchesText := func(l *Listing) bool {
		if term == "" {
			return true
		}
		if strings.Contains(strings.ToLower(l.Name), term) ||
			strings.Contains(strings.ToLower(l.Description), term) {
			return true
		}
		for _, c := range l.Categories {
			if strings.Contains(strings.ToLower(c), term) {
				return true
			}
		}
		return false
	}

	matchesOpenNow := func(l *Listing) bool {
		if !opts.OpenNow {
			return true
		}
		return l.OpenAt(weekday, hhmm)
	}

	distanceTo := func(l *Listing) *float64 {
		if !opts.hasViewerCoord() || !l.HasCoordinates() {
			return nil
		}
		d := geo.Distance(*opts.ViewerLat, *opts.ViewerLng, *l.Latitude, *l.Longitude, opts.Unit)
		return &d
	}

	result := FilterResult{
		Feed:     []FeedItem{},
		Map:      []Listing{},
		Featured: []FeedItem{},
	}

	for i := range listings {
		l := &listings[i]
		if !visible(l) || !matchesCategory(l) || !matchesText(l) || !matchesOpenNow(l) {
			continue
		}

		d := distanceTo(l)

		// Feed: distance bound applies only when the viewer coordinate is
		// present; a listing without coordinates is then unrankable and
		// excluded rather than shown at an unknown distance.
		if opts.hasViewerCoord() {
			if d != nil && *d <= opts.MaxDistance {
				result.Feed = append(result.Feed, FeedItem{Listing: *l, Distance: d})
			}
		} else {
			result.Feed = append(result.Feed, FeedItem{Listing: *l})
		}

		// Map: coordinates are mandatory for placement, but no distance bound.
		if l.HasCoordinates() {
			result.Map = append(result.Map, *l)
		}

		// Featured carousel: promotional listings stay visible outside the
		// distance radius.
		if l.Featured {
			result.Featured = append(result.Featured, FeedItem{Listing: *l, Distance: d})
		}
	}

	if opts.hasViewerCoord() {
		sort.SliceStable(result.Feed, func(i, j int) bool {
			di, dj := result.Feed[i].Distance, result.Feed[j].Distance
			if di == nil || dj == nil {
				return false
			}
			return *di < *dj
		})
	}

	return result
}
