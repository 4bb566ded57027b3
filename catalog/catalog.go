// Package catalog loads the static property and review sample data.
package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"rental-backend/models"
)

//go:embed data/*.json
var data embed.FS

// count accepts "3", "2-4", "6+" or a bare JSON number.
type count string

func (c *count) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = count(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("capacity must be a string or number: %s", b)
	}
	*c = count(n.String())
	return nil
}

type rawProperty struct {
	ID       models.PropertyID `json:"id"`
	Name     string            `json:"name"`
	Address  models.Address    `json:"address"`
	Rating   float64           `json:"rating"`
	Category []string          `json:"category"`
	Price    float64           `json:"price"`
	Offers   struct {
		Bed       count `json:"bed"`
		Shower    count `json:"shower"`
		Occupants count `json:"occupants"`
	} `json:"offers"`
	Image    string `json:"image"`
	Discount string `json:"discount"`
}

type rawReview struct {
	ID         string            `json:"id"`
	PropertyID models.PropertyID `json:"propertyId"`
	UserID     string            `json:"userId"`
	UserName   string            `json:"userName"`
	UserAvatar string            `json:"userAvatar"`
	Rating     int               `json:"rating"`
	Comment    string            `json:"comment"`
	Date       string            `json:"date"`
	Helpful    int               `json:"helpful"`
}

// ParseCount normalises a free-form capacity descriptor. Ranges resolve to
// their upper bound and a trailing "+" is dropped; empty means 0.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.TrimSuffix(s, "+")
	if i := strings.LastIndex(s, "-"); i > 0 {
		s = s[i+1:]
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	return n, nil
}

// LoadProperties decodes a JSON array of properties. Entries without an id get
// their 1-based position; duplicate ids and invalid entries are rejected.
func LoadProperties(r io.Reader) ([]models.Property, error) {
	var raw []rawProperty
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}

	seen := make(map[models.PropertyID]bool, len(raw))
	out := make([]models.Property, 0, len(raw))
	for i, rp := range raw {
		p, err := rp.toModel(i)
		if err != nil {
			return nil, err
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("property %d: duplicate id", p.ID)
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out, nil
}

func (rp rawProperty) toModel(index int) (models.Property, error) {
	id := rp.ID
	if id == 0 {
		id = models.PropertyID(index + 1)
	}

	var offers models.Offers
	for _, f := range []struct {
		dst *int
		src count
	}{
		{&offers.Bed, rp.Offers.Bed},
		{&offers.Shower, rp.Offers.Shower},
		{&offers.Occupants, rp.Offers.Occupants},
	} {
		n, err := ParseCount(string(f.src))
		if err != nil {
			return models.Property{}, fmt.Errorf("property %d offers: %w", id, err)
		}
		*f.dst = n
	}

	category := rp.Category
	if category == nil {
		category = []string{}
	}

	p := models.Property{
		ID:       id,
		Name:     rp.Name,
		Address:  rp.Address,
		Rating:   rp.Rating,
		Category: category,
		Price:    rp.Price,
		Offers:   offers,
		Image:    rp.Image,
		Discount: strings.TrimSpace(rp.Discount),
	}
	if err := p.Validate(); err != nil {
		return models.Property{}, err
	}
	return p, nil
}

// LoadReviews decodes a JSON array of reviews. Dates may be plain calendar
// dates or RFC 3339 timestamps.
func LoadReviews(r io.Reader) ([]models.Review, error) {
	var raw []rawReview
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}

	out := make([]models.Review, 0, len(raw))
	for _, rr := range raw {
		date, err := parseReviewDate(rr.Date)
		if err != nil {
			return nil, fmt.Errorf("review %s: %w", rr.ID, err)
		}
		out = append(out, models.Review{
			ID:         rr.ID,
			PropertyID: rr.PropertyID,
			UserID:     rr.UserID,
			UserName:   rr.UserName,
			UserAvatar: rr.UserAvatar,
			Rating:     rr.Rating,
			Comment:    rr.Comment,
			Date:       date,
			Helpful:    rr.Helpful,
		})
	}
	return out, nil
}

func parseReviewDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(models.DateLayout, s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t.UTC(), nil
}

// Properties returns the catalog from path, or the embedded sample when path is empty.
func Properties(path string) ([]models.Property, error) {
	b, err := read(path, "data/properties.json")
	if err != nil {
		return nil, err
	}
	return LoadProperties(bytes.NewReader(b))
}

// Reviews returns the reviews from path, or the embedded sample when path is empty.
func Reviews(path string) ([]models.Review, error) {
	b, err := read(path, "data/reviews.json")
	if err != nil {
		return nil, err
	}
	return LoadReviews(bytes.NewReader(b))
}

func read(path, embedded string) ([]byte, error) {
	if path == "" {
		return data.ReadFile(embedded)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}
