package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samerh/leadline/internal/models"
)

// ErrLocationNotFound means the geocoder could not resolve the location
// query. It always pre-empts the search and detail steps.
var ErrLocationNotFound = errors.New("location not found")

// Provider is the places-search collaborator. All three calls are
// black-box network operations; the pipeline only distinguishes empty
// from populated results.
type Provider interface {
	Geocode(location string) (*models.Coordinate, error)
	NearbySearch(coord models.Coordinate, radiusMeters int, keyword string) ([]models.Business, error)
	PlaceDetails(placeID string) (*models.PlaceDetails, error)
}

// Prober checks whether a website answers a short health probe
type Prober interface {
	Probe(url string, timeout time.Duration) bool
}

// Pipeline turns a search query into a fully enriched business batch:
// geocode, nearby search, per-place detail merge, per-place liveness
// probe. Everything runs strictly sequentially with no retries; a failed
// detail fetch or probe is accepted as the final state for that record.
type Pipeline struct {
	provider     Provider
	prober       Prober
	probeTimeout time.Duration
	logger       *log.Logger

	// OnProgress, if set, is called once per record during the detail step
	OnProgress func(done, total int, name string)
}

// New creates an enrichment pipeline over the given collaborators
func New(provider Provider, prober Prober, probeTimeout time.Duration, logger *log.Logger) *Pipeline {
	return &Pipeline{
		provider:     provider,
		prober:       prober,
		probeTimeout: probeTimeout,
		logger:       logger,
	}
}

// Enrich executes the full search-and-enrich sequence for one query.
// Per-record detail and probe failures are swallowed -- the record stays
// in the batch with whatever fields it has. Output order matches the
// order the search returned.
func (p *Pipeline) Enrich(query models.SearchQuery) ([]models.Business, error) {
	coord, err := p.provider.Geocode(query.Location)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query.Location, err)
	}
	if coord == nil {
		if p.logger != nil {
			p.logger.Warn("geocoder returned nothing", "location", query.Location)
		}
		return nil, fmt.Errorf("%w: %q", ErrLocationNotFound, query.Location)
	}

	stubs, err := p.provider.NearbySearch(*coord, query.RadiusMeters, query.Category)
	if err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	for i := range stubs {
		if p.OnProgress != nil {
			p.OnProgress(i+1, len(stubs), stubs[i].Name)
		}

		if stubs[i].PlaceID != "" {
			details, err := p.provider.PlaceDetails(stubs[i].PlaceID)
			if err != nil {
				// Keep the stub as-is; the batch stays best-effort complete
				if p.logger != nil {
					p.logger.Warn("detail fetch failed", "place", stubs[i].PlaceID, "error", err)
				}
			} else {
				stubs[i].MergeDetails(details)
			}
		}

		if stubs[i].HasWebsite() {
			if p.prober.Probe(stubs[i].Website, p.probeTimeout) {
				stubs[i].WebsiteState = models.LivenessLive
			} else {
				stubs[i].WebsiteState = models.LivenessDown
			}
		} else {
			// No website is treated as down, not unknown, once the
			// pipeline has run
			stubs[i].WebsiteState = models.LivenessDown
		}
	}

	return stubs, nil
}
