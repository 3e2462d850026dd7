package notion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func titleProp(fragments ...string) Property {
	p := Property{Type: "title"}
	for _, f := range fragments {
		p.Title = append(p.Title, RichText{PlainText: f})
	}
	return p
}

func textProp(fragments ...string) Property {
	p := Property{Type: "rich_text"}
	for _, f := range fragments {
		p.RichText = append(p.RichText, RichText{PlainText: f})
	}
	return p
}

func numberProp(v float64) Property {
	return Property{Type: "number", Number: &v}
}

func emptyNumberProp() Property {
	return Property{Type: "number"}
}

func selectProp(name string) Property {
	return Property{Type: "select", Select: &SelectOption{Name: name}}
}

func dateProp(start string) Property {
	return Property{Type: "date", Date: &DateValue{Start: start}}
}

func checkboxProp(v bool) Property {
	return Property{Type: "checkbox", Checkbox: &v}
}

func TestExtractText(t *testing.T) {
	props := map[string]Property{
		"Food": textProp("chicken", " and rice"),
		"Name": textProp("should not be used"),
	}

	assert.Equal(t, "chicken and rice", ExtractText(props, "Food", "Name"))
	assert.Equal(t, "should not be used", ExtractText(props, "Name", "Food"))
	assert.Equal(t, "", ExtractText(props, "Meal", "Title"))
}

func TestExtractText_titleAndRichText(t *testing.T) {
	props := map[string]Property{
		"Name":  titleProp("Morning ", "run"),
		"Notes": textProp("easy pace"),
	}

	assert.Equal(t, "Morning run", ExtractText(props, "Name"))
	assert.Equal(t, "easy pace", ExtractText(props, "Notes"))
}

func TestExtractText_firstPresentKeyWinsEvenIfEmpty(t *testing.T) {
	props := map[string]Property{
		"Food": textProp(),
		"Name": textProp("fallback name"),
	}

	// "Food" is present with an empty value, so "Name" must not be consulted
	assert.Equal(t, "", ExtractText(props, "Food", "Name"))
}

func TestExtractNumber(t *testing.T) {
	props := map[string]Property{
		"Calories": numberProp(640),
		"Cals":     numberProp(9999),
	}

	assert.Equal(t, float64(640), ExtractNumber(props, "Calories", "Cals"))
	assert.Equal(t, float64(0), ExtractNumber(props, "Protein"))
}

func TestExtractNumber_presentButUnset(t *testing.T) {
	props := map[string]Property{
		"Calories": emptyNumberProp(),
		"Cals":     numberProp(512),
	}

	// present key with no value resolves to 0, aliases after it are skipped
	assert.Equal(t, float64(0), ExtractNumber(props, "Calories", "Cals"))
}

func TestExtractSelect(t *testing.T) {
	props := map[string]Property{
		"Meal Type": selectProp("Dinner"),
		"Source":    Property{Type: "select"},
	}

	assert.Equal(t, "Dinner", ExtractSelect(props, "Meal", "Meal Type", "Type"))
	assert.Equal(t, "", ExtractSelect(props, "Source", "App"))
	assert.Equal(t, "", ExtractSelect(props, "Missing"))
}

func TestExtractDate(t *testing.T) {
	props := map[string]Property{
		"Date": dateProp("2025-03-14"),
		"Day":  Property{Type: "date"},
	}

	assert.Equal(t, "2025-03-14", ExtractDate(props, "Date", "Day"))
	assert.Equal(t, "", ExtractDate(props, "Day", "Date"))
	assert.Equal(t, "", ExtractDate(props, "When"))
}

func TestExtractCheckbox(t *testing.T) {
	props := map[string]Property{
		"Done":    checkboxProp(true),
		"Skipped": checkboxProp(false),
	}

	assert.True(t, ExtractCheckbox(props, "Done"))
	assert.False(t, ExtractCheckbox(props, "Skipped", "Done"))
	assert.False(t, ExtractCheckbox(props, "Missing"))
}

func TestNormalizeDatabaseID(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "A1B2C3D4E5F6A1B2C3D4E5F6A1B2C3D4", want: "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4"},
		{in: "  1f3a-B”&&C ", want: "1f3a-bc"},
		{in: "e7cc1fg5-zz", want: "e7cc1f5-"},
		{in: "", want: ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, NormalizeDatabaseID(tc.in))
	}
}
