package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakhrymubarak/weather-dashboard/internal/directory"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

func named(names ...string) []model.LocationEntry {
	out := make([]model.LocationEntry, 0, len(names))
	for _, n := range names {
		out = append(out, model.LocationEntry{Name: n})
	}
	return out
}

func labels(r *Registry) []string {
	var out []string
	for _, e := range r.Entries() {
		out = append(out, e.Label())
	}
	return out
}

func TestNew_Normalizes(t *testing.T) {
	here := model.NewCurrentLocation(model.Coordinates{Lat: 1, Lon: 2})
	there := model.NewCurrentLocation(model.Coordinates{Lat: 3, Lon: 4})

	tests := []struct {
		name       string
		entries    []model.LocationEntry
		active     int
		wantLen    int
		wantActive int
	}{
		{"empty", nil, 0, 0, 0},
		{"in range", named("Paris", "London"), 1, 2, 1},
		{"too large", named("Paris", "London"), 7, 2, 0},
		{"negative", named("Paris"), -1, 1, 0},
		{"duplicate current", []model.LocationEntry{here, {Name: "Paris"}, there}, 1, 2, 1},
		{"active on dropped duplicate", []model.LocationEntry{here, {Name: "Paris"}, there}, 2, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(directory.Default(), tt.entries, tt.active)
			assert.Equal(t, tt.wantLen, r.Len())
			assert.Equal(t, tt.wantActive, r.ActiveIndex())
		})
	}
}

func TestAdd(t *testing.T) {
	r := New(directory.Default(), nil, 0)

	first, err := r.Add("  москва ")
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, []string{"Москва"}, labels(r))

	first, err = r.Add("London")
	require.NoError(t, err)
	assert.False(t, first)
	assert.Equal(t, 0, r.ActiveIndex())

	_, err = r.Add("LONDON")
	assert.ErrorIs(t, err, ErrDuplicateCity)

	_, err = r.Add("Atlantis")
	assert.ErrorIs(t, err, ErrUnknownCity)

	_, err = r.Add("   ")
	assert.ErrorIs(t, err, ErrEmptyName)

	assert.Equal(t, []string{"Москва", "London"}, labels(r))
}

func TestAdd_CurrentLocationLabelIsNotADuplicate(t *testing.T) {
	r := New(directory.New([]string{model.CurrentLocationLabel}), nil, 0)
	r.AddCurrentLocation(model.Coordinates{Lat: 55.75, Lon: 37.62})

	_, err := r.Add(model.CurrentLocationLabel)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
}

func TestAddCurrentLocation(t *testing.T) {
	r := New(directory.Default(), nil, 0)

	assert.True(t, r.AddCurrentLocation(model.Coordinates{Lat: 55.75, Lon: 37.62}))
	_, err := r.Add("Paris")
	require.NoError(t, err)

	assert.True(t, r.AddCurrentLocation(model.Coordinates{Lat: 1, Lon: 2}))
	require.Equal(t, 2, r.Len())
	c, ok := r.Entries()[0].Coordinates()
	require.True(t, ok)
	assert.Equal(t, model.Coordinates{Lat: 1, Lon: 2}, c)

	require.True(t, r.Select(1))
	assert.False(t, r.AddCurrentLocation(model.Coordinates{Lat: 3, Lon: 4}))
	assert.Equal(t, 1, r.ActiveIndex())
}

func TestAddCurrentLocation_AppendedAfterCities(t *testing.T) {
	r := New(directory.Default(), named("Paris"), 0)
	assert.False(t, r.AddCurrentLocation(model.Coordinates{Lat: 1, Lon: 2}))
	assert.Equal(t, []string{"Paris", model.CurrentLocationLabel}, labels(r))
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name       string
		entries    []model.LocationEntry
		active     int
		remove     int
		wantOK     bool
		wantNames  []string
		wantActive int
	}{
		{"active removed", named("Paris", "London"), 1, 1, true, []string{"Paris"}, 0},
		{"below active", named("Paris", "London"), 1, 0, true, []string{"London"}, 0},
		{"above active", named("Paris", "London", "Rome"), 0, 2, true, []string{"Paris", "London"}, 0},
		{"below active in middle", named("Paris", "London", "Rome"), 2, 1, true, []string{"Paris", "Rome"}, 1},
		{"last entry", named("Paris"), 0, 0, true, nil, 0},
		{"out of range", named("Paris"), 0, 3, false, []string{"Paris"}, 0},
		{"negative", named("Paris"), 0, -1, false, []string{"Paris"}, 0},
		{
			"current location", []model.LocationEntry{model.NewCurrentLocation(model.Coordinates{}), {Name: "Paris"}},
			1, 0, false, []string{model.CurrentLocationLabel, "Paris"}, 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(directory.Default(), tt.entries, tt.active)
			assert.Equal(t, tt.wantOK, r.Remove(tt.remove))
			assert.Equal(t, tt.wantNames, labels(r))
			assert.Equal(t, tt.wantActive, r.ActiveIndex())
		})
	}
}

func TestSelect(t *testing.T) {
	r := New(directory.Default(), named("Paris", "London"), 0)

	assert.False(t, r.Select(0))
	assert.False(t, r.Select(2))
	assert.False(t, r.Select(-1))
	assert.True(t, r.Select(1))
	assert.Equal(t, 1, r.ActiveIndex())

	active, ok := r.Active()
	require.True(t, ok)
	assert.Equal(t, "London", active.Name)
}

func TestActive_Empty(t *testing.T) {
	r := New(directory.Default(), nil, 0)
	_, ok := r.Active()
	assert.False(t, ok)
}

func TestEntries_ReturnsCopy(t *testing.T) {
	r := New(directory.Default(), named("Paris"), 0)
	entries := r.Entries()
	entries[0].Name = "Rome"
	assert.Equal(t, "Paris", r.Entries()[0].Name)
}

// Any sequence of operations keeps the active index in range and at most one
// current-location entry.
func TestInvariantsHoldAcrossOperations(t *testing.T) {
	cities := []string{"Paris", "London", "Rome", "Москва", "Tokyo"}
	r := New(directory.Default(), nil, 0)

	for step := 0; step < 200; step++ {
		switch step % 5 {
		case 0:
			_, _ = r.Add(cities[step%len(cities)])
		case 1:
			r.AddCurrentLocation(model.Coordinates{Lat: float64(step), Lon: 1})
		case 2:
			r.Select((step * 7) % (r.Len() + 1))
		case 3:
			r.Remove((step * 3) % (r.Len() + 1))
		case 4:
			r.Remove(r.ActiveIndex())
		}

		current := 0
		for _, e := range r.Entries() {
			if e.IsCurrentLocation {
				current++
			}
		}
		require.LessOrEqual(t, current, 1, "step %d", step)
		if r.Len() > 0 {
			require.GreaterOrEqual(t, r.ActiveIndex(), 0, "step %d", step)
			require.Less(t, r.ActiveIndex(), r.Len(), "step %d", step)
		}
	}
}
