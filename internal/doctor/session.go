package doctor

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Searcher runs a provider search. Directory and the HTTP client both
// satisfy it.
type Searcher interface {
	Search(ctx context.Context, c Criteria) ([]Provider, error)
}

// Location is a point with a display label.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
}

// DefaultLocation is used until the user picks another one.
var DefaultLocation = Location{
	Latitude:  DefaultLatitude,
	Longitude: DefaultLongitude,
	Name:      "Hyderabad, Telangana, India",
}

var cities = map[string]Location{
	"hyderabad":   DefaultLocation,
	"mumbai":      {19.0760, 72.8777, "Mumbai, Maharashtra, India"},
	"delhi":       {28.7041, 77.1025, "Delhi, India"},
	"bangalore":   {12.9716, 77.5946, "Bangalore, Karnataka, India"},
	"chennai":     {13.0827, 80.2707, "Chennai, Tamil Nadu, India"},
	"kolkata":     {22.5726, 88.3639, "Kolkata, West Bengal, India"},
	"pune":        {18.5204, 73.8567, "Pune, Maharashtra, India"},
	"ahmedabad":   {23.0225, 72.5714, "Ahmedabad, Gujarat, India"},
	"jaipur":      {26.9124, 75.7873, "Jaipur, Rajasthan, India"},
	"lucknow":     {26.8467, 80.9462, "Lucknow, Uttar Pradesh, India"},
	"london":      {51.5074, -0.1278, "London, UK"},
	"tokyo":       {35.6762, 139.6503, "Tokyo, Japan"},
	"paris":       {48.8566, 2.3522, "Paris, France"},
	"sydney":      {-33.8688, 151.2093, "Sydney, Australia"},
	"dubai":       {25.2048, 55.2708, "Dubai, UAE"},
	"singapore":   {1.3521, 103.8198, "Singapore"},
	"toronto":     {43.6532, -79.3832, "Toronto, Canada"},
	"berlin":      {52.5200, 13.4050, "Berlin, Germany"},
	"moscow":      {55.7558, 37.6176, "Moscow, Russia"},
	"new york":    {40.7128, -74.0060, "New York City, USA"},
	"los angeles": {34.0522, -118.2437, "Los Angeles, USA"},
	"chicago":     {41.8781, -87.6298, "Chicago, USA"},
	"houston":     {29.7604, -95.3698, "Houston, USA"},
	"miami":       {25.7617, -80.1918, "Miami, USA"},
}

// LookupCity resolves a city name, ignoring case and surrounding space.
func LookupCity(name string) (Location, bool) {
	loc, ok := cities[strings.ToLower(strings.TrimSpace(name))]
	return loc, ok
}

// CityNames lists the cities LookupCity knows, sorted.
func CityNames() []string {
	names := make([]string, 0, len(cities))
	for name := range cities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Session holds one user's location and latest search results. Results are
// replaced by whichever search finishes last.
type Session struct {
	searcher Searcher

	mu       sync.Mutex
	location Location
	results  []Provider
}

// NewSession starts at DefaultLocation with no results.
func NewSession(searcher Searcher) *Session {
	return &Session{searcher: searcher, location: DefaultLocation}
}

// Location returns the current location.
func (s *Session) Location() Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.location
}

// SetLocation moves the session to loc.
func (s *Session) SetLocation(loc Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = loc
}

// UseDefaultLocation moves the session back to DefaultLocation.
func (s *Session) UseDefaultLocation() {
	s.SetLocation(DefaultLocation)
}

// Results returns the latest search results.
func (s *Session) Results() []Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Provider(nil), s.results...)
}

// Search fills missing coordinates from the session location, runs the
// search and stores the results. A failed search keeps the previous results.
func (s *Session) Search(ctx context.Context, c Criteria) ([]Provider, error) {
	loc := s.Location()
	if c.Latitude == nil || c.Longitude == nil {
		c.Latitude = Float(loc.Latitude)
		c.Longitude = Float(loc.Longitude)
	}

	providers, err := s.searcher.Search(ctx, c)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.results = providers
	s.mu.Unlock()
	return providers, nil
}

// SearchByCity moves the session to city and searches there. An unknown city
// leaves the session unchanged.
func (s *Session) SearchByCity(ctx context.Context, city string, c Criteria) ([]Provider, error) {
	loc, ok := LookupCity(city)
	if !ok {
		return nil, fmt.Errorf("city %q not found, try one of: %s", city, strings.Join(CityNames(), ", "))
	}
	s.SetLocation(loc)

	c.Latitude = Float(loc.Latitude)
	c.Longitude = Float(loc.Longitude)
	c.SearchCity = loc.Name
	return s.Search(ctx, c)
}
