package entity

import (
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Difficulty grades a tour.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

// IsValid checks if the Difficulty is a valid value.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyDifficult:
		return true
	default:
		return false
	}
}

// Tour is a bookable trip. Guides are references into the users collection,
// resolved by the persistence layer on demand.
type Tour struct {
	ID              bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name            string          `bson:"name" json:"name"`
	Slug            string          `bson:"slug" json:"slug"`
	Duration        int             `bson:"duration" json:"duration"`
	MaxGroupSize    int             `bson:"maxGroupSize" json:"maxGroupSize"`
	Difficulty      Difficulty      `bson:"difficulty" json:"difficulty"`
	RatingsAverage  float64         `bson:"ratingsAverage" json:"ratingsAverage"`
	RatingsQuantity int             `bson:"ratingsQuantity" json:"ratingsQuantity"`
	Price           float64         `bson:"price" json:"price"`
	PriceDiscount   float64         `bson:"priceDiscount,omitempty" json:"priceDiscount,omitempty"`
	Summary         string          `bson:"summary" json:"summary"`
	Description     string          `bson:"description,omitempty" json:"description,omitempty"`
	ImageCover      string          `bson:"imageCover,omitempty" json:"imageCover,omitempty"`
	Images          []string        `bson:"images,omitempty" json:"images,omitempty"`
	StartDates      []time.Time     `bson:"startDates,omitempty" json:"startDates,omitempty"`
	SecretTour      bool            `bson:"secretTour" json:"-"`
	Guides          []bson.ObjectID `bson:"guides,omitempty" json:"guides,omitempty"`
	GuideProfiles   []*User         `bson:"-" json:"guideProfiles,omitempty"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updatedAt" json:"-"`
}

// TourStats is an aggregate of rating and price figures per difficulty.
type TourStats struct {
	Difficulty Difficulty `bson:"_id" json:"difficulty"`
	NumTours   int        `bson:"numTours" json:"numTours"`
	NumRatings int        `bson:"numRatings" json:"numRatings"`
	AvgRating  float64    `bson:"avgRating" json:"avgRating"`
	AvgPrice   float64    `bson:"avgPrice" json:"avgPrice"`
	MinPrice   float64    `bson:"minPrice" json:"minPrice"`
	MaxPrice   float64    `bson:"maxPrice" json:"maxPrice"`
}

// DurationWeeks is the tour duration expressed in weeks, derived from the
// stored duration in days.
func (t *Tour) DurationWeeks() float64 {
	return float64(t.Duration) / 7
}

// Slugify derives the URL slug from the tour name; invoked as an explicit
// before-save step by the tour service.
func (t *Tour) Slugify() {
	t.Slug = slugify(t.Name)
}

// RoundRating normalizes the ratings average to one decimal place.
func (t *Tour) RoundRating() {
	t.RatingsAverage = float64(int(t.RatingsAverage*10+0.5)) / 10
}

func slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}

	return strings.Trim(b.String(), "-")
}
