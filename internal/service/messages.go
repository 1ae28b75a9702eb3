package service

import (
	"errors"

	"github.com/fakhrymubarak/weather-dashboard/internal/registry"
)

const (
	MsgDuplicateCity          = "Этот город уже добавлен"
	MsgUnknownCity            = "Выберите город из списка"
	MsgGeolocationFailed      = "Не удалось получить доступ к геолокации. Пожалуйста, добавьте город вручную."
	MsgGeolocationUnsupported = "Ваш браузер не поддерживает геолокацию. Пожалуйста, добавьте город вручную."
)

// ValidationMessage returns the text shown under the city input for err,
// or "" when err is not a validation failure.
func ValidationMessage(err error) string {
	switch {
	case errors.Is(err, registry.ErrDuplicateCity):
		return MsgDuplicateCity
	case errors.Is(err, registry.ErrUnknownCity):
		return MsgUnknownCity
	default:
		return ""
	}
}
