package render

import (
	"strconv"

	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

// Action names carried in data-action attributes.
const (
	ActionSelectCity          = "select-city"
	ActionRemoveCity          = "remove-city"
	ActionPickSuggestion      = "pick-suggestion"
	ActionOpenModal           = "open-modal"
	ActionConfirmModal        = "confirm-modal"
	ActionCancelModal         = "cancel-modal"
	ActionRefresh             = "refresh"
	ActionDismissNotification = "dismiss-notification"
)

// CityList renders one city-item per entry. The current-location entry has no
// removal control.
func CityList(entries []model.LocationEntry, active int) *Node {
	list := El("div", "city-list").Attr("id", "city-list")
	for i, e := range entries {
		class := "city-item"
		if i == active {
			class += " active"
		}
		index := strconv.Itoa(i)
		item := El("div", class, TextEl("div", "", e.Label())).
			Attr("data-action", ActionSelectCity).
			Attr("data-index", index)
		if !e.IsCurrentLocation {
			item.Append(TextEl("button", "delete-city", "×").
				Attr("data-action", ActionRemoveCity).
				Attr("data-index", index))
		}
		list.Append(item)
	}
	return list
}
