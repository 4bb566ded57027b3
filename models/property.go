package models

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/datatypes"
)

// PropertyID is the stable identifier of a catalog entry. Clients send it either
// as a JSON number or as a numeric string, so both are accepted on input.
type PropertyID uint

func (id *PropertyID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*id = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid property id %q", s)
	}
	*id = PropertyID(n)
	return nil
}

func (id PropertyID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParsePropertyID parses a path parameter. Zero is never a valid id.
func ParsePropertyID(raw string) (PropertyID, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return PropertyID(n), true
}

type Address struct {
	State   string `gorm:"size:100" json:"state"`
	City    string `gorm:"size:100" json:"city"`
	Country string `gorm:"size:100" json:"country"`
}

// Offers holds the capacity descriptors, normalized to integers.
type Offers struct {
	Bed       int `json:"bed"`
	Shower    int `json:"shower"`
	Occupants int `json:"occupants"`
}

type Property struct {
	ID       PropertyID                  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name     string                      `gorm:"size:255" json:"name"`
	Address  Address                     `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Rating   float64                     `json:"rating"`
	Category datatypes.JSONSlice[string] `json:"category"`
	Price    float64                     `json:"price"`
	Offers   Offers                      `gorm:"embedded;embeddedPrefix:offers_" json:"offers"`
	Image    string                      `gorm:"size:512" json:"image"`
	// Discount is a whole percentage kept as text; empty means no discount.
	Discount string `gorm:"size:8" json:"discount"`
}

// DiscountPercent returns the discount as an integer in [0,100].
func (p Property) DiscountPercent() (int, error) {
	d := strings.TrimSpace(p.Discount)
	if d == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(d)
	if err != nil {
		return 0, fmt.Errorf("discount %q is not an integer", p.Discount)
	}
	if n < 0 || n > 100 {
		return 0, fmt.Errorf("discount %d out of range 0-100", n)
	}
	return n, nil
}

// Validate checks the catalog invariants for a single property.
func (p Property) Validate() error {
	if p.ID == 0 {
		return fmt.Errorf("property %q: missing id", p.Name)
	}
	if p.Price <= 0 {
		return fmt.Errorf("property %d: price must be > 0", p.ID)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("property %d: rating %.2f out of range 0-5", p.ID, p.Rating)
	}
	if _, err := p.DiscountPercent(); err != nil {
		return fmt.Errorf("property %d: %w", p.ID, err)
	}
	return nil
}
