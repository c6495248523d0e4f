package opportunity

import (
	"fmt"
	"strings"

	"github.com/lernwerk/compass/internal/domain"
	"github.com/lernwerk/compass/internal/domain/region"
	"github.com/lernwerk/compass/internal/domain/tag"
	"github.com/lernwerk/compass/internal/domain/vector"
)

// Track is the qualification track of an apprenticeship.
type Track string

const (
	// TrackFull is the full apprenticeship track (federal diploma).
	TrackFull Track = "A"
	// TrackBasic is the two-year basic track (federal certificate).
	TrackBasic Track = "B"
)

// IsValid checks if the track is one of the enumerated values.
func (t Track) IsValid() bool {
	return t == TrackFull || t == TrackBasic
}

// ParseTrack resolves a raw track value, case-insensitively.
func ParseTrack(s string) (Track, error) {
	t := Track(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w %q", domain.ErrUnknownTrack, s)
	}
	return t, nil
}

// Params carries raw candidate input for New.
type Params struct {
	ID              string
	Region          string
	SecondaryRegion string // empty = none
	Track           string
	Category        string
	IdealTraits     map[string]float64 // sparse, missing dimensions are 0
	CultureTags     []string
	Verified        bool
	Boosted         bool
}

// Opportunity is one candidate apprenticeship (immutable value object).
type Opportunity struct {
	id          string
	region      region.Code
	secondary   *region.Code
	track       Track
	category    string
	idealTraits vector.Traits
	cultureTags []string
	verified    bool
	boosted     bool
}

// New validates and creates an Opportunity. The sparse ideal-trait map is
// expanded to a fixed-order vector here so scoring never does key lookups.
func New(p Params) (Opportunity, error) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return Opportunity{}, fmt.Errorf("%w: opportunity id is required", domain.ErrInvalidInput)
	}
	code := region.Normalize(p.Region)
	if code == "" {
		return Opportunity{}, fmt.Errorf("%w: opportunity region is required", domain.ErrInvalidInput)
	}
	track, err := ParseTrack(p.Track)
	if err != nil {
		return Opportunity{}, err
	}
	ideal, err := vector.TraitsFromMap(p.IdealTraits)
	if err != nil {
		return Opportunity{}, fmt.Errorf("ideal traits: %w", err)
	}

	o := Opportunity{
		id:          id,
		region:      code,
		track:       track,
		category:    strings.TrimSpace(p.Category),
		idealTraits: ideal,
		cultureTags: tag.Clean(p.CultureTags),
		verified:    p.Verified,
		boosted:     p.Boosted,
	}
	if s := region.Normalize(p.SecondaryRegion); s != "" {
		o.secondary = &s
	}
	return o, nil
}

// ID returns the opportunity identifier.
func (o Opportunity) ID() string { return o.id }

// Region returns the primary site region.
func (o Opportunity) Region() region.Code { return o.region }

// SecondaryRegion returns the optional secondary site region.
func (o Opportunity) SecondaryRegion() *region.Code { return o.secondary }

// Track returns the qualification track.
func (o Opportunity) Track() Track { return o.track }

// Category returns the category tag as given.
func (o Opportunity) Category() string { return o.category }

// IdealTraits returns the expanded ideal-trait vector.
func (o Opportunity) IdealTraits() vector.Traits { return o.idealTraits }

// CultureTags returns the normalized culture tags.
func (o Opportunity) CultureTags() []string { return o.cultureTags }

// Verified reports whether the host company is verified.
func (o Opportunity) Verified() bool { return o.verified }

// Boosted reports whether the listing is boosted.
func (o Opportunity) Boosted() bool { return o.boosted }
