package model

// CurrentLocationLabel is shown instead of a name for the geolocated entry.
const CurrentLocationLabel = "Текущее местоположение"

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LocationEntry is one tracked location. The JSON field names match the persisted form.
type LocationEntry struct {
	Name              string   `json:"name"`
	Lat               *float64 `json:"lat,omitempty"`
	Lon               *float64 `json:"lon,omitempty"`
	IsCurrentLocation bool     `json:"isCurrentLocation"`
}

// NewCurrentLocation builds the geolocated entry.
func NewCurrentLocation(c Coordinates) LocationEntry {
	lat, lon := c.Lat, c.Lon
	return LocationEntry{
		Name:              CurrentLocationLabel,
		Lat:               &lat,
		Lon:               &lon,
		IsCurrentLocation: true,
	}
}

// Coordinates reports the entry position, if it has one.
func (e LocationEntry) Coordinates() (Coordinates, bool) {
	if e.Lat == nil || e.Lon == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *e.Lat, Lon: *e.Lon}, true
}

// Label is the text shown for the entry in the sidebar and on cards.
func (e LocationEntry) Label() string {
	if e.IsCurrentLocation {
		return CurrentLocationLabel
	}
	return e.Name
}
