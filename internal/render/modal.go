package render

// ModalView is the add-city dialog as the modal controller sees it.
type ModalView struct {
	Open            bool     `json:"open"`
	Input           string   `json:"input"`
	Suggestions     []string `json:"suggestions"`
	ShowSuggestions bool     `json:"showSuggestions"`
	Error           string   `json:"error,omitempty"`
}

// NotificationView is the global transient message.
type NotificationView struct {
	Visible bool   `json:"visible"`
	Message string `json:"message,omitempty"`
}

func hidden(class string, hide bool) string {
	if hide {
		return class + " hidden"
	}
	return class
}

// Modal renders the add-city dialog.
func Modal(m ModalView) *Node {
	suggestions := El("div", hidden("city-suggestions", !m.ShowSuggestions)).Attr("id", "city-suggestions")
	for _, s := range m.Suggestions {
		suggestions.Append(TextEl("div", "suggestion-item", s).
			Attr("data-action", ActionPickSuggestion).
			Attr("data-value", s))
	}

	return El("div", hidden("modal", !m.Open),
		El("div", "modal-content",
			TextEl("h3", "modal-title", "Добавить город"),
			El("input", "city-input").
				Attr("id", "city-input").
				Attr("type", "text").
				Attr("value", m.Input).
				Attr("placeholder", "Введите название города"),
			suggestions,
			TextEl("div", hidden("city-error", m.Error == ""), m.Error).Attr("id", "city-error"),
			El("div", "modal-buttons",
				TextEl("button", "btn", "Добавить").
					Attr("id", "confirm-add-city").
					Attr("data-action", ActionConfirmModal),
				TextEl("button", "btn btn-secondary", "Отмена").
					Attr("id", "cancel-add-city").
					Attr("data-action", ActionCancelModal),
			),
		),
	).Attr("id", "city-modal")
}

// Notification renders the error banner.
func Notification(n NotificationView) *Node {
	return El("div", hidden("error-notification", !n.Visible),
		TextEl("span", "", n.Message).Attr("id", "error-message"),
		TextEl("button", "close-error", "×").
			Attr("id", "close-error").
			Attr("data-action", ActionDismissNotification),
	).Attr("id", "error-notification")
}
