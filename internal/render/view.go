package render

import (
	"time"

	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

// State is the full input of one render.
type State struct {
	Panel        PanelState
	Entries      []model.LocationEntry
	ActiveIndex  int
	Modal        ModalView
	Notification NotificationView
	Now          time.Time
	ForecastDays int
}

// View is one complete frame. Hosts replace their previous frame with it.
type View struct {
	Mode         PanelMode        `json:"mode"`
	Panel        *Node            `json:"panel"`
	Cities       *Node            `json:"cities"`
	Modal        *Node            `json:"modal"`
	Notification *Node            `json:"notification"`
	ModalState   ModalView        `json:"modalState"`
	Message      NotificationView `json:"message"`
}

// Render projects s onto a View. It has no side effects.
func Render(s State) View {
	return View{
		Mode:         s.Panel.Mode,
		Panel:        Panel(s.Panel, s.Now, s.ForecastDays),
		Cities:       CityList(s.Entries, s.ActiveIndex),
		Modal:        Modal(s.Modal),
		Notification: Notification(s.Notification),
		ModalState:   s.Modal,
		Message:      s.Notification,
	}
}

// Page assembles the frame into a single document body.
func (v View) Page() *Node {
	return El("div", "app",
		El("aside", "sidebar",
			El("div", "sidebar-header",
				TextEl("h1", "", "Погода"),
				TextEl("button", "btn", "Обновить").
					Attr("id", "refresh-btn").
					Attr("data-action", ActionRefresh),
			),
			v.Cities,
			TextEl("button", "btn add-city-btn", "+ Добавить город").
				Attr("id", "add-city-btn").
				Attr("data-action", ActionOpenModal),
		),
		El("main", "content", v.Panel),
		v.Modal,
		v.Notification,
	)
}
