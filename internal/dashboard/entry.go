package dashboard

import (
	"math"
	"strconv"

	"github.com/velebit-dev/lifemaxx/internal/notion"
)

// MealEntry is one logged meal, reshaped from a workspace page into the
// flat form the dashboard consumes.
type MealEntry struct {
	Food     string   `json:"food"`
	Date     string   `json:"date"`
	Meal     string   `json:"meal"`
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
	Source   string   `json:"source"`
}

// BodyCompEntry is one body composition measurement. Weights are in lbs,
// body fat in percent.
type BodyCompEntry struct {
	Date       string   `json:"date"`
	Weight     float64  `json:"weight"`
	BodyFat    float64  `json:"bodyFat"`
	MuscleMass float64  `json:"muscleMass"`
	LeanMass   *float64 `json:"leanMass"`
	BMI        *float64 `json:"bmi"`
	BMR        *float64 `json:"bmr"`
	Notes      *string  `json:"notes"`
}

// TrainingEntry is one logged lift. Reps stays a string since the source
// column holds ranges and notes like "8-10" or "AMRAP" next to plain numbers.
type TrainingEntry struct {
	Exercise    string  `json:"exercise"`
	Date        string  `json:"date"`
	Weight      float64 `json:"weight"`
	Sets        float64 `json:"sets"`
	Reps        string  `json:"reps"`
	WorkoutType string  `json:"workoutType"`
	Notes       *string `json:"notes"`
}

func MealFromPage(page notion.Page) MealEntry {
	props := page.Properties

	source := notion.ExtractSelect(props, "Source", "App")
	if source == "" {
		source = "Other"
	}

	return MealEntry{
		Food:     notion.ExtractText(props, "Food", "Name", "Meal", "Title"),
		Date:     notion.ExtractDate(props, "Date", "Day", "When"),
		Meal:     notion.ExtractSelect(props, "Meal", "Meal Type", "Type"),
		Calories: notion.ExtractNumber(props, "Calories", "Cals", "Energy (kcal)"),
		Protein:  notion.ExtractNumber(props, "Protein", "Protein (g)"),
		Carbs:    optionalNumber(notion.ExtractNumber(props, "Carbs", "Carbs (g)", "Carbohydrates")),
		Fat:      optionalNumber(notion.ExtractNumber(props, "Fat", "Fat (g)", "Fats")),
		Source:   source,
	}
}

func BodyCompFromPage(page notion.Page) BodyCompEntry {
	props := page.Properties
	return BodyCompEntry{
		Date:       notion.ExtractDate(props, "Date", "Day"),
		Weight:     notion.ExtractNumber(props, "Weight (lbs)", "Weight", "Weight lbs"),
		BodyFat:    NormalizeBodyFat(notion.ExtractNumber(props, "Body Fat %", "Body Fat", "BF %")),
		MuscleMass: notion.ExtractNumber(props, "Muscle Mass (lbs)", "Muscle Mass", "Muscle"),
		LeanMass:   optionalNumber(notion.ExtractNumber(props, "Lean Mass (lbs)", "Lean Mass")),
		BMI:        optionalNumber(notion.ExtractNumber(props, "BMI")),
		BMR:        optionalNumber(notion.ExtractNumber(props, "BMR")),
		Notes:      optionalText(notion.ExtractText(props, "Notes", "Note")),
	}
}

func TrainingFromPage(page notion.Page) TrainingEntry {
	props := page.Properties

	// exercise can live in a select column or in the page title
	exercise := notion.ExtractSelect(props, "Exercise", "Movement")
	if exercise == "" {
		exercise = notion.ExtractText(props, "Exercise", "Name", "Workout", "Title")
	}

	return TrainingEntry{
		Exercise:    exercise,
		Date:        notion.ExtractDate(props, "Date", "Day"),
		Weight:      notion.ExtractNumber(props, "Weight (lbs)", "Weight", "Load"),
		Sets:        notion.ExtractNumber(props, "Sets"),
		Reps:        repsValue(props),
		WorkoutType: notion.ExtractSelect(props, "Type", "Workout Type", "Category"),
		Notes:       optionalText(notion.ExtractText(props, "Notes", "Note")),
	}
}

// repsValue prefers the textual reps column over the numeric one, since
// rep ranges are logged as text. Falls back to "Unknown" when neither is set.
func repsValue(props map[string]notion.Property) string {
	if reps := notion.ExtractText(props, "Reps", "Rep Range"); reps != "" {
		return reps
	}
	if reps := notion.ExtractNumber(props, "Reps"); reps != 0 {
		return strconv.FormatFloat(reps, 'f', -1, 64)
	}
	return "Unknown"
}

func MealsFromPages(pages []notion.Page) []MealEntry {
	meals := make([]MealEntry, 0, len(pages))
	for _, page := range pages {
		meals = append(meals, MealFromPage(page))
	}
	return meals
}

func BodyCompFromPages(pages []notion.Page) []BodyCompEntry {
	entries := make([]BodyCompEntry, 0, len(pages))
	for _, page := range pages {
		entries = append(entries, BodyCompFromPage(page))
	}
	return entries
}

func TrainingFromPages(pages []notion.Page) []TrainingEntry {
	entries := make([]TrainingEntry, 0, len(pages))
	for _, page := range pages {
		entries = append(entries, TrainingFromPage(page))
	}
	return entries
}

// NormalizeBodyFat rescales fraction style values (0.153) to percents (15.3).
// Values already above 1 are taken as percents and just rounded.
func NormalizeBodyFat(raw float64) float64 {
	switch {
	case raw <= 0:
		return raw
	case raw <= 1:
		return roundTo1Decimal(raw * 100)
	default:
		return roundTo1Decimal(raw)
	}
}

func roundTo1Decimal(v float64) float64 {
	return math.Round(v*10) / 10
}

// optionalNumber collapses 0 to null, since an untracked macro and a zero
// one are indistinguishable in the source data.
func optionalNumber(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
