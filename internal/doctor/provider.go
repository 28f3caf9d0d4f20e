// Package doctor searches the provider directory and keeps the search state
// of a single user session.
package doctor

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Default search location (Hyderabad, Telangana, India) and radius.
const (
	DefaultLatitude    = 17.3850
	DefaultLongitude   = 78.4867
	DefaultMaxDistance = 10.0
)

var (
	// ErrNotFound is returned when no cached provider has the requested id.
	ErrNotFound = errors.New("Doctor not found")
	// ErrInvalidCriteria is returned for out-of-range coordinates or radius.
	ErrInvalidCriteria = errors.New("invalid search criteria")
)

// Provider is one doctor listing.
type Provider struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Specialty       string   `json:"specialty"`
	Rating          float64  `json:"rating"`
	ReviewCount     int      `json:"review_count"`
	ExperienceYears int      `json:"experience_years"`
	Phone           string   `json:"phone"`
	Email           string   `json:"email"`
	Hospital        string   `json:"hospital"`
	Address         string   `json:"address"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Availability    string   `json:"availability"`
	ConsultationFee int      `json:"consultation_fee"`
	Languages       []string `json:"languages"`
	Education       string   `json:"education"`
	Certifications  []string `json:"certifications"`
	Bio             string   `json:"bio"`
	Services        []string `json:"services"`
	Distance        float64  `json:"distance,omitempty"`
}

// Criteria is the search request. Nil coordinates and radius take the defaults.
type Criteria struct {
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Specialty   string   `json:"specialty,omitempty"`
	MaxDistance *float64 `json:"max_distance,omitempty"`
	MinRating   float64  `json:"min_rating,omitempty"`
	SearchTerm  string   `json:"search_term,omitempty"`
	SearchCity  string   `json:"search_city,omitempty"`
}

// resolved is Criteria with defaults applied.
type resolved struct {
	lat, lon    float64
	specialty   string
	maxDistance float64
	minRating   float64
	term        string
	city        string
}

func (c Criteria) resolve() (resolved, error) {
	r := resolved{
		lat:         DefaultLatitude,
		lon:         DefaultLongitude,
		specialty:   strings.TrimSpace(c.Specialty),
		maxDistance: DefaultMaxDistance,
		minRating:   c.MinRating,
		term:        strings.TrimSpace(c.SearchTerm),
		city:        strings.TrimSpace(c.SearchCity),
	}
	if c.Latitude != nil {
		r.lat = *c.Latitude
	}
	if c.Longitude != nil {
		r.lon = *c.Longitude
	}
	if c.MaxDistance != nil {
		r.maxDistance = *c.MaxDistance
	}

	if r.lat < -90 || r.lat > 90 {
		return r, fmt.Errorf("%w: latitude %v out of range", ErrInvalidCriteria, r.lat)
	}
	if r.lon < -180 || r.lon > 180 {
		return r, fmt.Errorf("%w: longitude %v out of range", ErrInvalidCriteria, r.lon)
	}
	if r.maxDistance <= 0 {
		return r, fmt.Errorf("%w: max_distance must be positive", ErrInvalidCriteria)
	}
	return r, nil
}

func (r resolved) cacheKey() string {
	return fmt.Sprintf("%v_%v_%s_%v_%s", r.lat, r.lon, r.specialty, r.maxDistance, r.city)
}

// Result is the search response body.
type Result struct {
	Success bool       `json:"success"`
	Count   int        `json:"count"`
	Doctors []Provider `json:"doctors"`
	Error   string     `json:"error,omitempty"`
}

// DetailsResult is the single-provider response body.
type DetailsResult struct {
	Success bool      `json:"success"`
	Doctor  *Provider `json:"doctor,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// Float returns a pointer to v, for filling optional Criteria fields.
func Float(v float64) *float64 {
	return &v
}

// DirectionsURL links to driving directions to a provider.
func DirectionsURL(lat, lon float64) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%v,%v", lat, lon)
}

// TelURL returns a dialable link for phone.
func TelURL(phone string) string {
	return "tel:" + url.PathEscape(strings.ReplaceAll(phone, " ", ""))
}
