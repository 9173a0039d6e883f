package models

// Coordinate is a geocoded latitude/longitude pair
type Coordinate struct {
	Lat float64
	Lng float64
}

// PlaceDetails holds the per-place fields returned by the detail fetch.
// Empty fields mean the provider had nothing; the merge keeps whatever
// the stub already carried.
type PlaceDetails struct {
	Name        string
	Address     string
	Phone       string
	Website     string
	Rating      float64
	RatingCount int
	Categories  []string
}

// MergeDetails folds detail-fetch fields into a stub record. Only
// populated detail fields overwrite; absent ones leave the stub intact.
func (b *Business) MergeDetails(d *PlaceDetails) {
	if d == nil {
		return
	}
	if d.Name != "" {
		b.Name = d.Name
	}
	if d.Address != "" {
		b.Address = d.Address
	}
	if d.Phone != "" {
		b.Phone = d.Phone
	}
	if d.Website != "" {
		b.Website = d.Website
	}
	if d.Rating > 0 {
		b.Rating = d.Rating
	}
	if d.RatingCount > 0 {
		b.RatingCount = d.RatingCount
	}
	if len(d.Categories) > 0 {
		b.Categories = d.Categories
	}
}
