package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/models"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"3", 3, false},
		{" 2 ", 2, false},
		{"2-4", 4, false},
		{"4 - 6", 6, false},
		{"6+", 6, false},
		{"", 0, false},
		{"many", 0, true},
		{"-2", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseCount(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestProperties_Embedded(t *testing.T) {
	props, err := Properties("")
	require.NoError(t, err)
	require.NotEmpty(t, props)

	for i, p := range props {
		assert.Equal(t, models.PropertyID(i+1), p.ID)
		assert.NoError(t, p.Validate())
	}

	assert.Equal(t, "Villa Ocean Breeze", props[0].Name)
	assert.Equal(t, models.Offers{Bed: 3, Shower: 3, Occupants: 6}, props[0].Offers)
	assert.Equal(t, 6, props[4].Offers.Occupants)
}

func TestLoadProperties_FallbackIDs(t *testing.T) {
	in := `[
		{"name":"A","price":10,"offers":{"bed":2,"shower":"1","occupants":"1-3"}},
		{"id":7,"name":"B","price":20},
		{"name":"C","price":30}
	]`
	props, err := LoadProperties(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, props, 3)

	assert.Equal(t, models.PropertyID(1), props[0].ID)
	assert.Equal(t, models.Offers{Bed: 2, Shower: 1, Occupants: 3}, props[0].Offers)
	assert.Equal(t, models.PropertyID(7), props[1].ID)
	assert.Equal(t, models.PropertyID(3), props[2].ID)
	assert.NotNil(t, props[1].Category)
}

func TestLoadProperties_Rejects(t *testing.T) {
	tests := map[string]string{
		"duplicate id":   `[{"id":1,"name":"A","price":1},{"id":1,"name":"B","price":1}]`,
		"zero price":     `[{"name":"A","price":0}]`,
		"rating too big": `[{"name":"A","price":1,"rating":5.5}]`,
		"bad discount":   `[{"name":"A","price":1,"discount":"half"}]`,
		"discount > 100": `[{"name":"A","price":1,"discount":"120"}]`,
		"bad offers":     `[{"name":"A","price":1,"offers":{"bed":"lots"}}]`,
		"not an array":   `{"name":"A"}`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadProperties(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestReviews_Embedded(t *testing.T) {
	reviews, err := Reviews("")
	require.NoError(t, err)
	require.Len(t, reviews, 4)

	first := reviews[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, models.PropertyID(1), first.PropertyID)
	assert.Equal(t, "Alex Johnson", first.UserName)
	assert.Equal(t, 12, first.Helpful)
	assert.True(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC).Equal(first.Date))
}

func TestLoadReviews_Timestamps(t *testing.T) {
	in := `[{"id":"x","propertyId":2,"rating":3,"date":"2024-02-01T10:30:00+02:00"}]`
	reviews, err := LoadReviews(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 8, 30, 0, 0, time.UTC), reviews[0].Date)

	_, err = LoadReviews(strings.NewReader(`[{"id":"x","date":"yesterday"}]`))
	assert.Error(t, err)
}

func TestProperties_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "props.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":10,"name":"Only","price":50}]`), 0o600))

	props, err := Properties(path)
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, models.PropertyID(10), props[0].ID)

	_, err = Properties(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
