package render

import (
	"math"
	"strconv"
	"time"
)

var (
	weekdaysLong  = [...]string{"воскресенье", "понедельник", "вторник", "среда", "четверг", "пятница", "суббота"}
	weekdaysShort = [...]string{"вс", "пн", "вт", "ср", "чт", "пт", "сб"}
	monthsLong    = [...]string{
		"января", "февраля", "марта", "апреля", "мая", "июня",
		"июля", "августа", "сентября", "октября", "ноября", "декабря",
	}
	monthsShort = [...]string{
		"янв.", "февр.", "мар.", "апр.", "мая", "июн.",
		"июл.", "авг.", "сент.", "окт.", "нояб.", "дек.",
	}
)

// Round rounds half toward positive infinity, so 2.5 → 3 and -2.5 → -2.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Number prints v in its shortest form: 71, 14.4, 1012.5.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Celsius prints a rounded temperature with unit, e.g. "-3°C".
func Celsius(v float64) string {
	return strconv.Itoa(Round(v)) + "°C"
}

// Degrees prints a rounded temperature without unit, e.g. "-3°".
func Degrees(v float64) string {
	return strconv.Itoa(Round(v)) + "°"
}

// FullDate formats t as "понедельник, 15 января 2024 г.".
func FullDate(t time.Time) string {
	return weekdaysLong[t.Weekday()] + ", " + strconv.Itoa(t.Day()) + " " +
		monthsLong[t.Month()-1] + " " + strconv.Itoa(t.Year()) + " г."
}

// ShortDate formats t as "вт, 16 янв.".
func ShortDate(t time.Time) string {
	return weekdaysShort[t.Weekday()] + ", " + strconv.Itoa(t.Day()) + " " + monthsShort[t.Month()-1]
}
