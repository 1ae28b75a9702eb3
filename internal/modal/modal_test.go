package modal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fakhrymubarak/weather-dashboard/internal/directory"
)

func TestLifecycle(t *testing.T) {
	m := New(directory.Default())
	assert.Equal(t, Closed, m.State())

	m.Open()
	assert.Equal(t, OpenEmpty, m.State())
	assert.True(t, m.IsOpen())

	m.Input("мос")
	assert.Equal(t, OpenTyping, m.State())
	v := m.View()
	assert.True(t, v.ShowSuggestions)
	assert.Equal(t, []string{"Москва"}, v.Suggestions)

	m.Fail("Этот город уже добавлен")
	assert.Equal(t, OpenError, m.State())
	assert.Equal(t, "Этот город уже добавлен", m.View().Error)

	m.Input("мосв")
	assert.Equal(t, OpenTyping, m.State())
	assert.Empty(t, m.View().Error)

	m.Close()
	assert.Equal(t, Closed, m.State())
}

func TestInput_BlankHidesSuggestions(t *testing.T) {
	m := New(directory.Default())
	m.Open()
	m.Input("par")
	assert.True(t, m.View().ShowSuggestions)

	m.Input("   ")
	assert.False(t, m.View().ShowSuggestions)
	assert.Equal(t, OpenTyping, m.State())
}

func TestInput_NoMatches(t *testing.T) {
	m := New(directory.Default())
	m.Open()
	m.Input("zzz")
	v := m.View()
	assert.True(t, v.ShowSuggestions)
	assert.Empty(t, v.Suggestions)
}

func TestPickSuggestion(t *testing.T) {
	m := New(directory.Default())
	m.Open()
	m.Input("лон")
	m.PickSuggestion("London")

	v := m.View()
	assert.Equal(t, "London", v.Input)
	assert.False(t, v.ShowSuggestions)
	assert.True(t, m.IsOpen())
}

func TestSubmission(t *testing.T) {
	m := New(directory.Default())
	m.Open()

	_, ok := m.Submission()
	assert.False(t, ok)

	m.Input("  Paris ")
	name, ok := m.Submission()
	assert.True(t, ok)
	assert.Equal(t, "Paris", name)
}

func TestBlur(t *testing.T) {
	m := New(directory.Default())
	m.Open()
	m.Input("ро")
	m.Blur()

	assert.True(t, m.IsOpen())
	assert.False(t, m.View().ShowSuggestions)
	assert.Equal(t, "ро", m.View().Input)
}

func TestOpen_Resets(t *testing.T) {
	m := New(directory.Default())
	m.Open()
	m.Input("ро")
	m.Fail("Выберите город из списка")
	m.Close()

	m.Open()
	v := m.View()
	assert.Equal(t, OpenEmpty, m.State())
	assert.Empty(t, v.Input)
	assert.Empty(t, v.Error)
	assert.False(t, v.ShowSuggestions)
	assert.Nil(t, v.Suggestions)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "open-empty", OpenEmpty.String())
	assert.Equal(t, "open-typing", OpenTyping.String())
	assert.Equal(t, "open-error", OpenError.String())
}
