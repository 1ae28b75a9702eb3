package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{2.4, 2},
		{2.5, 3},
		{-2.5, -2},
		{-2.6, -3},
		{-0.4, 0},
		{0, 0},
		{12.5, 13},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.in), "Round(%v)", tt.in)
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "71", Number(71))
	assert.Equal(t, "14.4", Number(14.4))
	assert.Equal(t, "1012.5", Number(1012.5))
	assert.Equal(t, "-3", Number(-3))
}

func TestTemperatures(t *testing.T) {
	assert.Equal(t, "13°C", Celsius(12.5))
	assert.Equal(t, "-3°C", Celsius(-3.4))
	assert.Equal(t, "0°", Degrees(-0.2))
	assert.Equal(t, "3°", Degrees(2.5))
}

func TestFullDate(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), "понедельник, 15 января 2024 г."},
		{time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), "пятница, 8 марта 2024 г."},
		{time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC), "воскресенье, 31 декабря 2023 г."},
		{time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "среда, 1 мая 2024 г."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FullDate(tt.date))
	}
}

func TestShortDate(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), "вт, 16 янв."},
		{time.Date(2024, 2, 17, 0, 0, 0, 0, time.UTC), "сб, 17 февр."},
		{time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), "чт, 2 мая"},
		{time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), "вс, 1 сент."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShortDate(tt.date))
	}
}
