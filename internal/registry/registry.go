// Package registry is the ordered list of tracked locations and the active selection.
package registry

import (
	"errors"
	"strings"

	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

var (
	ErrEmptyName     = errors.New("city name is empty")
	ErrDuplicateCity = errors.New("city already added")
	ErrUnknownCity   = errors.New("city is not in the directory")
)

// Catalog resolves user input to a known place name.
type Catalog interface {
	Lookup(name string) (string, bool)
}

// Registry is not safe for concurrent use; its owner serializes access.
type Registry struct {
	entries []model.LocationEntry
	active  int
	catalog Catalog
}

// New restores a registry from persisted entries. An out-of-range active index
// becomes 0 and only the first current-location entry is kept.
func New(catalog Catalog, entries []model.LocationEntry, active int) *Registry {
	r := &Registry{catalog: catalog}
	seenCurrent := false
	kept := -1
	for i, e := range entries {
		if e.IsCurrentLocation {
			if seenCurrent {
				continue
			}
			seenCurrent = true
		}
		if i == active {
			kept = len(r.entries)
		}
		r.entries = append(r.entries, e)
	}
	if kept < 0 {
		kept = 0
	}
	r.active = kept
	return r
}

func (r *Registry) Len() int { return len(r.entries) }

func (r *Registry) ActiveIndex() int { return r.active }

// Entries returns a copy of the list.
func (r *Registry) Entries() []model.LocationEntry {
	out := make([]model.LocationEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Active returns the selected entry; ok is false when the list is empty.
func (r *Registry) Active() (model.LocationEntry, bool) {
	if len(r.entries) == 0 {
		return model.LocationEntry{}, false
	}
	return r.entries[r.active], true
}

// Add appends a named city. first reports that the list was empty before,
// in which case the new entry is active and its weather should be loaded.
func (r *Registry) Add(name string) (first bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyName
	}
	for _, e := range r.entries {
		if !e.IsCurrentLocation && strings.EqualFold(e.Name, name) {
			return false, ErrDuplicateCity
		}
	}
	canonical, ok := r.catalog.Lookup(name)
	if !ok {
		return false, ErrUnknownCity
	}

	r.entries = append(r.entries, model.LocationEntry{Name: canonical})
	if len(r.entries) == 1 {
		r.active = 0
		return true, nil
	}
	return false, nil
}

// AddCurrentLocation appends the geolocated entry, or moves the existing one.
// The result reports whether that entry is the active one.
func (r *Registry) AddCurrentLocation(c model.Coordinates) (active bool) {
	entry := model.NewCurrentLocation(c)
	for i, e := range r.entries {
		if e.IsCurrentLocation {
			r.entries[i] = entry
			return i == r.active
		}
	}
	r.entries = append(r.entries, entry)
	return len(r.entries)-1 == r.active
}

// Remove deletes the entry at index. Out-of-range indexes and the
// current-location entry are left alone and false is returned.
func (r *Registry) Remove(index int) bool {
	if index < 0 || index >= len(r.entries) || r.entries[index].IsCurrentLocation {
		return false
	}
	r.entries = append(r.entries[:index], r.entries[index+1:]...)

	switch {
	case index == r.active:
		r.active = 0
	case index < r.active:
		r.active--
	}
	return true
}

// Select makes index active. It returns false when nothing changed.
func (r *Registry) Select(index int) bool {
	if index == r.active || index < 0 || index >= len(r.entries) {
		return false
	}
	r.active = index
	return true
}
