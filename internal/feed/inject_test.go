// File: internal/feed/inject_test.go
package feed

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uslocal_backend/internal/common"
	"uslocal_backend/internal/listing"
	"uslocal_backend/internal/placement"
)

func makeFeedItems(n int) []listing.FeedItem {
	items := make([]listing.FeedItem, n)
	for i := range items {
		items[i] = listing.FeedItem{
			Listing: listing.Listing{
				BaseModel: common.BaseModel{ID: uuid.New()},
				Name:      fmt.Sprintf("listing-%d", i+1),
			},
		}
	}
	return items
}

func makeAds(n int) []placement.Placement {
	ads := make([]placement.Placement, n)
	for i := range ads {
		ads[i] = placement.Placement{
			BaseModel: common.BaseModel{ID: uuid.New()},
			Slot:      placement.SlotHomeFeedInline,
			Title:     fmt.Sprintf("ad-%d", i+1),
		}
	}
	return ads
}

func TestInjectSponsoredCadence(t *testing.T) {
	items := makeFeedItems(13)
	ads := makeAds(2)

	merged := injectSponsored(items, ads, 6)
	require.Len(t, merged, 15)

	// An ad lands right after the 6th and 12th listings, cycling through
	// the ads in order.
	require.NotNil(t, merged[6].Ad)
	assert.Nil(t, merged[6].Listing)
	assert.Equal(t, ads[0].ID, merged[6].Ad.ID)

	require.NotNil(t, merged[13].Ad)
	assert.Equal(t, ads[1].ID, merged[13].Ad.ID)

	// Everything else is a listing, in original order.
	var names []string
	for _, item := range merged {
		if item.Listing != nil {
			names = append(names, item.Listing.Listing.Name)
		}
	}
	require.Len(t, names, 13)
	for i, name := range names {
		assert.Equal(t, fmt.Sprintf("listing-%d", i+1), name)
	}
}

func TestInjectSponsoredCyclesAds(t *testing.T) {
	items := makeFeedItems(9)
	ads := makeAds(2)

	merged := injectSponsored(items, ads, 3)
	// Ads after listings 3, 6, 9: ad-1, ad-2, then back to ad-1.
	var adTitles []string
	for _, item := range merged {
		if item.Ad != nil {
			adTitles = append(adTitles, item.Ad.Title)
		}
	}
	assert.Equal(t, []string{"ad-1", "ad-2", "ad-1"}, adTitles)
}

func TestInjectSponsoredNoAdsPassthrough(t *testing.T) {
	items := makeFeedItems(5)

	merged := injectSponsored(items, nil, 6)
	require.Len(t, merged, 5)
	for _, item := range merged {
		assert.Nil(t, item.Ad)
		require.NotNil(t, item.Listing)
	}
}

func TestInjectSponsoredShortStreamHasNoAds(t *testing.T) {
	items := makeFeedItems(5)
	ads := makeAds(2)

	merged := injectSponsored(items, ads, 6)
	require.Len(t, merged, 5)
	for _, item := range merged {
		assert.Nil(t, item.Ad)
	}
}

func TestInjectSponsoredDoesNotMutateInputs(t *testing.T) {
	items := makeFeedItems(7)
	ads := makeAds(1)
	originalFirst := items[0].Listing.Name

	injectSponsored(items, ads, 2)

	assert.Len(t, items, 7)
	assert.Equal(t, originalFirst, items[0].Listing.Name)
	assert.Len(t, ads, 1)
}
