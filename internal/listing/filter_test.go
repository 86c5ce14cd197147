// File: internal/listing/filter_test.go
package listing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uslocal_backend/internal/common"
	"uslocal_backend/internal/geo"
)

func ptrF(f float64) *float64 { return &f }

func makeListing(name string, lat, lng *float64, mutate func(*Listing)) Listing {
	l := Listing{
		BaseModel:   common.BaseModel{ID: uuid.New()},
		OwnerID:     uuid.New(),
		Name:        name,
		Description: name + " description",
		Categories:  pq.StringArray{"restaurant"},
		Latitude:    lat,
		Longitude:   lng,
		Status:      StatusApproved,
		Visible:     true,
	}
	if mutate != nil {
		mutate(&l)
	}
	return l
}

// A Tuesday; used wherever a test pins the open-now clock.
var tuesdayNoon = time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)

func feedNames(items []FeedItem) []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Listing.Name
	}
	return names
}

func mapNames(listings []Listing) []string {
	names := make([]string, len(listings))
	for i := range listings {
		names[i] = listings[i].Name
	}
	return names
}

func TestFilterVisibilityInvariant(t *testing.T) {
	viewer := uuid.New()
	hidden := makeListing("hidden", ptrF(47.60), ptrF(-122.33), func(l *Listing) {
		l.Visible = false
	})
	pending := makeListing("pending", ptrF(47.61), ptrF(-122.33), func(l *Listing) {
		l.Status = StatusPending
	})
	mine := makeListing("mine", ptrF(47.62), ptrF(-122.33), func(l *Listing) {
		l.Status = StatusPending
		l.OwnerID = viewer
	})
	public := makeListing("public", ptrF(47.63), ptrF(-122.33), nil)

	result := Filter([]Listing{hidden, pending, mine, public}, FilterOptions{
		ViewerID: &viewer,
		Now:      tuesdayNoon,
	})

	assert.ElementsMatch(t, []string{"mine", "public"}, feedNames(result.Feed))
	assert.ElementsMatch(t, []string{"mine", "public"}, mapNames(result.Map))
}

func TestFilterMapListAsymmetry(t *testing.T) {
	// Viewer in Seattle, listing in LA: thousands of miles out, far past
	// the 10 mile bound, but still mapped.
	far := makeListing("far-away", ptrF(34.0522), ptrF(-118.2437), nil)
	near := makeListing("near", ptrF(47.62), ptrF(-122.34), nil)

	result := Filter([]Listing{far, near}, FilterOptions{
		MaxDistance: 10,
		Unit:        geo.UnitMiles,
		ViewerLat:   ptrF(47.6062),
		ViewerLng:   ptrF(-122.3321),
		Now:         tuesdayNoon,
	})

	assert.Equal(t, []string{"near"}, feedNames(result.Feed))
	assert.ElementsMatch(t, []string{"far-away", "near"}, mapNames(result.Map))
}

func TestFilterFeaturedBypassesDistance(t *testing.T) {
	farFeatured := makeListing("far-featured", ptrF(34.0522), ptrF(-118.2437), func(l *Listing) {
		l.Featured = true
	})

	result := Filter([]Listing{farFeatured}, FilterOptions{
		MaxDistance: 10,
		Unit:        geo.UnitMiles,
		ViewerLat:   ptrF(47.6062),
		ViewerLng:   ptrF(-122.3321),
		Now:         tuesdayNoon,
	})

	assert.Empty(t, result.Feed)
	require.Len(t, result.Featured, 1)
	assert.Equal(t, "far-featured", result.Featured[0].Listing.Name)
	require.NotNil(t, result.Featured[0].Distance)
	assert.Greater(t, *result.Featured[0].Distance, 10.0)
}

func TestFilterFeaturedStillHonorsVisibility(t *testing.T) {
	hiddenFeatured := makeListing("hidden-featured", ptrF(47.60), ptrF(-122.33), func(l *Listing) {
		l.Featured = true
		l.Visible = false
	})

	result := Filter([]Listing{hiddenFeatured}, FilterOptions{Now: tuesdayNoon})
	assert.Empty(t, result.Featured)
	assert.Empty(t, result.Feed)
	assert.Empty(t, result.Map)
}

func TestFilterOpenNowBoundaries(t *testing.T) {
	l := makeListing("nine-to-five", ptrF(47.60), ptrF(-122.33), func(l *Listing) {
		l.Hours = WeekHours{
			"tuesday": {Open: "09:00", Close: "17:00"},
		}
	})

	at := func(hhmm string) FilterResult {
		parsed, err := time.Parse("15:04", hhmm)
		require.NoError(t, err)
		now := time.Date(2025, 3, 4, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
		return Filter([]Listing{l}, FilterOptions{OpenNow: true, Now: now})
	}

	assert.Len(t, at("09:00").Feed, 1, "opening boundary is inclusive")
	assert.Len(t, at("16:59").Feed, 1)
	assert.Len(t, at("17:00").Feed, 1, "closing boundary is inclusive")
	assert.Empty(t, at("08:59").Feed)
	assert.Empty(t, at("17:01").Feed)
}

func TestFilterOpenNowMissingScheduleExcludes(t *testing.T) {
	noHours := makeListing("no-hours", ptrF(47.60), ptrF(-122.33), nil)
	closedDay := makeListing("closed-tuesday", ptrF(47.61), ptrF(-122.33), func(l *Listing) {
		l.Hours = WeekHours{"tuesday": {Open: "09:00", Close: "17:00", Closed: true}}
	})

	result := Filter([]Listing{noHours, closedDay}, FilterOptions{OpenNow: true, Now: tuesdayNoon})
	assert.Empty(t, result.Feed)
	assert.Empty(t, result.Map)
}

func TestFilterCategoryAndTextPredicates(t *testing.T) {
	cafe := makeListing("Blue Nile Cafe", ptrF(47.60), ptrF(-122.33), func(l *Listing) {
		l.Categories = pq.StringArray{"cafe", "bakery"}
	})
	garage := makeListing("Eastside Auto", ptrF(47.61), ptrF(-122.33), func(l *Listing) {
		l.Categories = pq.StringArray{"auto"}
		l.Description = "Brake repair and tires"
	})

	byCategory := Filter([]Listing{cafe, garage}, FilterOptions{Category: "bakery", Now: tuesdayNoon})
	assert.Equal(t, []string{"Blue Nile Cafe"}, feedNames(byCategory.Feed))

	byText := Filter([]Listing{cafe, garage}, FilterOptions{Query: "TIRES", Now: tuesdayNoon})
	assert.Equal(t, []string{"Eastside Auto"}, feedNames(byText.Feed))

	byCategoryTag := Filter([]Listing{cafe, garage}, FilterOptions{Query: "bakery", Now: tuesdayNoon})
	assert.Equal(t, []string{"Blue Nile Cafe"}, feedNames(byCategoryTag.Feed))
}

func TestFilterProximitySortIsStableAscending(t *testing.T) {
	viewerLat, viewerLng := 47.6062, -122.3321
	farther := makeListing("farther", ptrF(47.70), ptrF(-122.33), nil)
	nearer := makeListing("nearer", ptrF(47.61), ptrF(-122.33), nil)
	nearest := makeListing("nearest", ptrF(47.607), ptrF(-122.332), nil)

	result := Filter([]Listing{farther, nearer, nearest}, FilterOptions{
		MaxDistance: 100,
		Unit:        geo.UnitMiles,
		ViewerLat:   &viewerLat,
		ViewerLng:   &viewerLng,
		Now:         tuesdayNoon,
	})

	assert.Equal(t, []string{"nearest", "nearer", "farther"}, feedNames(result.Feed))
}

func TestFilterNoViewerCoordinateSkipsDistanceBound(t *testing.T) {
	noCoords := makeListing("no-coords", nil, nil, nil)
	withCoords := makeListing("with-coords", ptrF(47.60), ptrF(-122.33), nil)

	result := Filter([]Listing{noCoords, withCoords}, FilterOptions{
		MaxDistance: 10,
		Now:         tuesdayNoon,
	})

	// Without a viewer coordinate the feed keeps original order and does
	// not drop coordinate-less listings; the map still requires them.
	assert.Equal(t, []string{"no-coords", "with-coords"}, feedNames(result.Feed))
	assert.Equal(t, []string{"with-coords"}, mapNames(result.Map))
}

func TestFilterExcludesCoordinatelessFromFeedWhenViewerPresent(t *testing.T) {
	noCoords := makeListing("no-coords", nil, nil, nil)

	result := Filter([]Listing{noCoords}, FilterOptions{
		MaxDistance: 10,
		ViewerLat:   ptrF(47.60),
		ViewerLng:   ptrF(-122.33),
		Now:         tuesdayNoon,
	})

	assert.Empty(t, result.Feed)
	assert.Empty(t, result.Map)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	listings := []Listing{
		makeListing("b", ptrF(47.70), ptrF(-122.33), nil),
		makeListing("a", ptrF(47.60), ptrF(-122.33), nil),
	}

	Filter(listings, FilterOptions{
		MaxDistance: 100,
		ViewerLat:   ptrF(47.6062),
		ViewerLng:   ptrF(-122.3321),
		Now:         tuesdayNoon,
	})

	assert.Equal(t, "b", listings[0].Name)
	assert.Equal(t, "a", listings[1].Name)
}
