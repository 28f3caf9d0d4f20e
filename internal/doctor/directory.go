package doctor

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pathakanu/healthAI/internal/metrics"
)

const (
	providersPerArea  = 25
	earthRadiusKM     = 6371.0
	cachedSearchAreas = 256
)

// Directory answers provider searches. Listings for a location are generated
// once per cache key and reused until the TTL passes.
type Directory struct {
	cache   *expirable.LRU[string, []Provider]
	metrics *metrics.Collectors
	logger  *log.Logger
}

// NewDirectory returns a directory caching listings for ttl.
func NewDirectory(ttl time.Duration, m *metrics.Collectors, logger *log.Logger) *Directory {
	return &Directory{
		cache:   expirable.NewLRU[string, []Provider](cachedSearchAreas, nil, ttl),
		metrics: m,
		logger:  logger,
	}
}

// Search returns providers matching c, nearest first.
func (d *Directory) Search(ctx context.Context, c Criteria) ([]Provider, error) {
	r, err := c.resolve()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := r.cacheKey()
	providers, hit := d.cache.Get(key)
	d.metrics.DoctorSearch(hit)
	if hit {
		d.logger.Debug("doctors: using cached listings", "key", key)
	} else {
		d.logger.Info("doctors: building listings", "lat", r.lat, "lon", r.lon, "city", r.city)
		providers = generate(key, r)
		d.cache.Add(key, providers)
	}
	return filter(providers, r), nil
}

// Details finds a provider by id among the cached listings.
func (d *Directory) Details(id string) (Provider, error) {
	for _, providers := range d.cache.Values() {
		for _, p := range providers {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return Provider{}, ErrNotFound
}

func filter(providers []Provider, r resolved) []Provider {
	results := make([]Provider, 0, len(providers))
	term := strings.ToLower(r.term)

	for _, p := range providers {
		distance := Haversine(r.lat, r.lon, p.Latitude, p.Longitude)
		if distance > r.maxDistance {
			continue
		}
		if r.specialty != "" && !strings.EqualFold(p.Specialty, r.specialty) {
			continue
		}
		if r.minRating > 0 && p.Rating < r.minRating {
			continue
		}
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		p.Distance = math.Round(distance*10) / 10
		results = append(results, p)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	return results
}

func matchesTerm(p Provider, term string) bool {
	for _, field := range []string{p.Name, p.Specialty, p.Hospital, p.Address, p.Bio} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Haversine returns the great-circle distance in kilometres.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dlat := radians(lat2 - lat1)
	dlon := radians(lon2 - lon1)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// CityName labels a location: the searched city when given, otherwise a
// known metro area by bounding box.
func CityName(lat, lon float64, searchCity string) string {
	if searchCity != "" {
		return searchCity
	}
	switch {
	case lat >= 17 && lat <= 18 && lon >= 78 && lon <= 79:
		return "Hyderabad, Telangana"
	case lat >= 19 && lat <= 20 && lon >= 72 && lon <= 73:
		return "Mumbai, Maharashtra"
	case lat >= 28 && lat <= 29 && lon >= 77 && lon <= 78:
		return "Delhi"
	case lat >= 12 && lat <= 13 && lon >= 77 && lon <= 78:
		return "Bangalore, Karnataka"
	case lat >= 13 && lat <= 14 && lon >= 80 && lon <= 81:
		return "Chennai, Tamil Nadu"
	default:
		return "City, State"
	}
}

var (
	hospitals = []string{
		"Apollo Hospitals", "Fortis Healthcare", "Max Healthcare", "Manipal Hospitals",
		"AIIMS", "KEM Hospital", "PGI Chandigarh", "CMC Vellore", "JIPMER",
		"Narayana Health", "Medanta", "BLK Super Speciality Hospital",
		"Indraprastha Apollo Hospital", "Sir Ganga Ram Hospital", "Safdarjung Hospital",
	}
	areas = []string{
		"Banjara Hills", "Jubilee Hills", "Secunderabad", "HITEC City", "Gachibowli",
		"Kondapur", "Madhapur", "Begumpet", "Somajiguda", "Ameerpet", "Kukatpally",
		"Miyapur", "Dilshuknagar", "Malakpet", "Nampally", "Abids", "Koti",
	}
	specialties = []string{
		"General Medicine", "Cardiology", "Dermatology", "Neurology",
		"Pediatrics", "Orthopedics", "Gynecology", "Psychiatry", "Oncology",
		"Endocrinology", "Gastroenterology", "Urology", "Ophthalmology", "ENT",
	}
	firstNames = []string{
		"Rajesh", "Priya", "Arjun", "Kavitha", "Suresh", "Meera", "Vikram", "Anita",
		"Ramesh", "Sunita", "Kumar", "Deepa", "Srinivas", "Lakshmi", "Venkat", "Radha",
		"Manoj", "Shanti", "Prakash", "Geeta", "Ravi", "Uma", "Naveen", "Sarita",
		"Ashok", "Poonam", "Girish", "Rekha", "Kamala", "Raghu", "Indira",
	}
	lastNames = []string{
		"Sharma", "Patel", "Singh", "Kumar", "Reddy", "Agarwal", "Gupta", "Jain",
		"Verma", "Malhotra", "Chopra", "Mehta", "Bansal", "Arora", "Khanna", "Saxena",
		"Tiwari", "Mishra", "Pandey", "Yadav", "Shah", "Joshi", "Nair", "Iyer",
		"Rao", "Naidu", "Menon", "Pillai", "Krishnan", "Raman", "Subramanian", "Venkatesh",
	}
	languages      = []string{"English", "Hindi", "Telugu", "Tamil", "Kannada", "Marathi"}
	medicalSchools = []string{"AIIMS", "JIPMER", "CMC Vellore", "KEM Mumbai", "PGI Chandigarh", "NIMHANS", "Seth GS Medical College"}
	certifications = []string{
		"MBBS", "MD", "DM", "DNB", "Fellowship", "Diplomate",
		"Fellow of Indian Medical Association", "Specialist",
	}
	services = []string{
		"General Consultation", "Diagnostic Testing", "Treatment Planning",
		"Follow-up Care", "Emergency Consultation", "Second Opinion",
		"Preventive Care", "Health Screening", "Vaccination", "Health Checkup",
	}
	availability = []string{"Available", "Available", "Available", "Busy"}
)

// generate builds the listings for one search area. The generator is seeded
// from the cache key so the same area always yields the same providers.
func generate(key string, r resolved) []Provider {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	city := CityName(r.lat, r.lon, r.city)
	providers := make([]Provider, 0, providersPerArea)
	for i := 0; i < providersPerArea; i++ {
		specialty := r.specialty
		if specialty == "" {
			specialty = pick(rng, specialties)
		}
		providers = append(providers, Provider{
			ID:              uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s#%d", key, i))).String(),
			Name:            fmt.Sprintf("Dr. %s %s", pick(rng, firstNames), pick(rng, lastNames)),
			Specialty:       specialty,
			Rating:          math.Round((3.8+rng.Float64()*1.1)*10) / 10,
			ReviewCount:     between(rng, 25, 500),
			ExperienceYears: between(rng, 8, 35),
			Phone:           fmt.Sprintf("+91-%d-%d", between(rng, 90000, 99999), between(rng, 10000, 99999)),
			Email:           fmt.Sprintf("info@hospital%d.com", i+1),
			Hospital:        pick(rng, hospitals),
			Address:         fmt.Sprintf("%d %s, %s", between(rng, 1, 999), pick(rng, areas), city),
			Latitude:        round6(r.lat + (rng.Float64()*0.2 - 0.1)),
			Longitude:       round6(r.lon + (rng.Float64()*0.2 - 0.1)),
			Availability:    pick(rng, availability),
			ConsultationFee: between(rng, 800, 2500),
			Languages:       sample(rng, languages, between(rng, 2, 4)),
			Education:       "MD from " + pick(rng, medicalSchools),
			Certifications:  sample(rng, certifications, between(rng, 2, 4)),
			Bio: fmt.Sprintf("Experienced %s specialist with %d years of practice. Committed to providing excellent patient care.",
				strings.ToLower(pick(rng, specialties)), between(rng, 8, 35)),
			Services: sample(rng, services, between(rng, 4, 7)),
		})
	}
	return providers
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.Intn(len(from))]
}

// between returns an int in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func sample(rng *rand.Rand, from []string, n int) []string {
	out := make([]string, 0, n)
	for _, i := range rng.Perm(len(from))[:n] {
		out = append(out, from[i])
	}
	return out
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
