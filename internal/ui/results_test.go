package ui

import (
	"testing"

	"github.com/samerh/leadline/internal/models"
)

func filterBatch() *models.SearchBatch {
	return &models.SearchBatch{
		Query: models.SearchQuery{Location: "New York, NY", Category: "restaurant", RadiusMeters: 3000},
		Businesses: []models.Business{
			{Name: "Alpha", WebsiteState: models.LivenessLive, Rating: 4.6},
			{Name: "Beta", WebsiteState: models.LivenessDown, Rating: 4.2},
			{Name: "Gamma", WebsiteState: models.LivenessLive, Rating: 3.1},
			{Name: "Delta", WebsiteState: models.LivenessDown},
		},
	}
}

// TestApplyFilters verifies the live-only and min-rating filters compose
func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name      string
		liveOnly  bool
		ratingIx  int
		wantNames []string
	}{
		{"no filters", false, 0, []string{"Alpha", "Beta", "Gamma", "Delta"}},
		{"live only", true, 0, []string{"Alpha", "Gamma"}},
		{"rating 4.0", false, 2, []string{"Alpha", "Beta"}},
		{"live and 4.5", true, 3, []string{"Alpha"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := resultsModel{
				cfg:      ResultsConfig{Batch: filterBatch()},
				layout:   DefaultLayout(),
				liveOnly: tt.liveOnly,
				ratingIx: tt.ratingIx,
			}
			m.applyFilters()

			if len(m.filtered) != len(tt.wantNames) {
				t.Fatalf("filtered %d businesses, want %d", len(m.filtered), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if m.filtered[i].Name != want {
					t.Errorf("filtered[%d] = %s, want %s", i, m.filtered[i].Name, want)
				}
			}
		})
	}
}
