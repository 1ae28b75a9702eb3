// Package directory holds the fixed catalog of place names the dashboard accepts.
package directory

import "strings"

var defaultPlaces = []string{
	"Москва", "Санкт-Петербург", "Новосибирск", "Екатеринбург", "Казань",
	"Нижний Новгород", "Челябинск", "Самара", "Ростов-на-Дону", "Уфа",
	"Красноярск", "Пермь", "Воронеж", "Волгоград", "Сочи",
	"Краснодар", "Тюмень", "Ижевск", "Барнаул", "Иркутск",
	"New York", "London", "Paris", "Tokyo", "Berlin",
	"Madrid", "Rome", "Sydney", "Toronto", "Dubai",
}

// Directory is an ordered, read-only list of known places.
type Directory struct {
	places []string
	folded []string
}

// Default returns the built-in catalog.
func Default() *Directory {
	return New(defaultPlaces)
}

func New(places []string) *Directory {
	d := &Directory{
		places: make([]string, len(places)),
		folded: make([]string, len(places)),
	}
	copy(d.places, places)
	for i, p := range places {
		d.folded[i] = strings.ToLower(p)
	}
	return d
}

// Lookup matches name case-insensitively and returns the catalog spelling.
func (d *Directory) Lookup(name string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i, f := range d.folded {
		if f == needle {
			return d.places[i], true
		}
	}
	return "", false
}

// Suggest returns the places containing query, case-insensitively, in catalog order.
func (d *Directory) Suggest(query string) []string {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}
	var out []string
	for i, f := range d.folded {
		if strings.Contains(f, needle) {
			out = append(out, d.places[i])
		}
	}
	return out
}

// Places returns a copy of the catalog.
func (d *Directory) Places() []string {
	out := make([]string, len(d.places))
	copy(out, d.places)
	return out
}
