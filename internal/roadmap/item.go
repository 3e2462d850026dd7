package roadmap

import (
	"sort"

	"github.com/velebit-dev/lifemaxx/internal/notion"
)

// Item is one roadmap milestone. Optional targets stay null when the
// source page does not set them.
type Item struct {
	Milestone     string   `json:"milestone"`
	Phase         string   `json:"phase"`
	Type          string   `json:"type"`
	Date          string   `json:"date"`
	Notes         *string  `json:"notes"`
	TargetWeight  *float64 `json:"targetWeight"`
	TargetBodyFat *float64 `json:"targetBodyFat"`
	TargetMuscle  *float64 `json:"targetMuscle"`
}

// PhaseCount is one bucket of the phase histogram. A slice keeps the
// first occurrence order of the phases, a map would lose it.
type PhaseCount struct {
	Phase string `json:"phase"`
	Count int    `json:"count"`
}

func ItemFromPage(page notion.Page) Item {
	props := page.Properties

	milestone := notion.ExtractText(props, "Milestone", "Name", "Title")
	if milestone == "" {
		milestone = "Untitled"
	}

	return Item{
		Milestone:     milestone,
		Phase:         notion.ExtractSelect(props, "Phase", "Stage"),
		Type:          notion.ExtractSelect(props, "Type", "Category"),
		Date:          notion.ExtractDate(props, "Date", "Target Date", "When"),
		Notes:         optionalText(notion.ExtractText(props, "Notes", "Note")),
		TargetWeight:  optionalNumber(notion.ExtractNumber(props, "Target Weight (lbs)", "Target Weight")),
		TargetBodyFat: optionalNumber(notion.ExtractNumber(props, "Target Body Fat %", "Target BF %")),
		TargetMuscle:  optionalNumber(notion.ExtractNumber(props, "Target Muscle (lbs)", "Target Muscle")),
	}
}

// ItemsFromPages maps and sorts the items ascending by date string.
// Undated milestones sort first since "" precedes every date.
func ItemsFromPages(pages []notion.Page) []Item {
	items := make([]Item, 0, len(pages))
	for _, page := range pages {
		items = append(items, ItemFromPage(page))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date < items[j].Date
	})
	return items
}

// PhaseHistogram counts milestones per phase, buckets ordered by the
// first occurrence of each phase. Empty phases land in "Unassigned".
func PhaseHistogram(items []Item) []PhaseCount {
	phase2idx := make(map[string]int)
	histogram := make([]PhaseCount, 0)
	for _, item := range items {
		phase := item.Phase
		if phase == "" {
			phase = "Unassigned"
		}
		idx, ok := phase2idx[phase]
		if !ok {
			idx = len(histogram)
			phase2idx[phase] = idx
			histogram = append(histogram, PhaseCount{Phase: phase})
		}
		histogram[idx].Count++
	}
	return histogram
}

// NextMilestones returns the first limit items that are undated or not
// yet past, compared as date strings against today (YYYY-MM-DD). Items
// are expected sorted.
func NextMilestones(items []Item, today string, limit int) []Item {
	next := make([]Item, 0, limit)
	for _, item := range items {
		if item.Date != "" && item.Date < today {
			continue
		}
		next = append(next, item)
		if len(next) == limit {
			break
		}
	}
	return next
}

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
