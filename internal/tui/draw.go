package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fakhrymubarak/weather-dashboard/internal/render"
)

// drawCities prints the city-list node, marking the active item.
func drawCities(list *render.Node) string {
	items := list.FindAll("city-item")
	if len(items) == 0 {
		return mutedStyle.Render("Нет городов")
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		label := ""
		if len(item.Children) > 0 {
			label = item.Children[0].TextContent()
		}
		if item.HasClass("active") {
			lines = append(lines, activeCityStyle.Render("▸ "+label))
			continue
		}
		lines = append(lines, "  "+label)
	}
	return strings.Join(lines, "\n")
}

// drawPanel prints the weather container for the current card.
func drawPanel(container *render.Node) string {
	card := container.Find("weather-card")
	switch {
	case card == nil:
		return mutedStyle.Render("Добавьте город, чтобы увидеть погоду")
	case card.HasClass("loading"):
		return mutedStyle.Render("Загрузка...")
	case card.HasClass("error"):
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(card.Find("city-name").TextContent()),
			"",
			errorStyle.Render(render.MsgWeatherUnavailable),
		)
	}

	sections := []string{
		titleStyle.Render(card.Find("city-name").TextContent()),
		mutedStyle.Render(card.Find("current-date").TextContent()),
		"",
		temperatureStyle.Render(card.Find("temperature").TextContent()) + "  " +
			card.Find("weather-description").TextContent(),
		"",
	}
	for _, d := range card.FindAll("detail-item") {
		sections = append(sections,
			labelStyle.Render(d.Find("detail-label").TextContent())+" "+d.Find("detail-value").TextContent())
	}

	sections = append(sections, "", labelStyle.Render(card.Find("forecast-title").TextContent()))
	var days []string
	for _, d := range card.FindAll("forecast-day") {
		days = append(days, lipgloss.NewStyle().Width(14).Render(lipgloss.JoinVertical(lipgloss.Left,
			d.Find("forecast-date").TextContent(),
			mutedStyle.Render(d.Find("forecast-icon").Attrs["alt"]),
			d.Find("forecast-temp").TextContent(),
		)))
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, days...))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// drawModal prints the add-city dialog around the live text input.
func drawModal(dialog *render.Node, state render.ModalView, input string) string {
	sections := []string{
		titleStyle.Render(dialog.Find("modal-title").TextContent()),
		"",
		input,
	}
	if state.ShowSuggestions {
		for i, s := range state.Suggestions {
			line := "  " + s
			if i == 0 {
				line = "› " + s
			}
			sections = append(sections, mutedStyle.Render(line))
		}
	}
	if state.Error != "" {
		sections = append(sections, "", errorStyle.Render(state.Error))
	}
	sections = append(sections, "", helpStyle.Render("Enter: добавить • Tab: подсказка • Esc: отмена"))
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func drawNotification(banner *render.Node) string {
	if banner.HasClass("hidden") {
		return ""
	}
	return notificationStyle.Render(banner.FindID("error-message").TextContent() + "  ×")
}
