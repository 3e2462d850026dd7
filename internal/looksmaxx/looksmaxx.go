package looksmaxx

import (
	"sort"

	"github.com/velebit-dev/lifemaxx/internal/notion"
)

const latestEntriesCount = 5

// Entry is one logged item from a looksmaxx collection: a skincare
// product, a grooming routine, a posture drill or a style purchase.
type Entry struct {
	Name  string  `json:"name"`
	Date  string  `json:"date"`
	Done  bool    `json:"done"`
	Notes *string `json:"notes"`
}

// Collection summarizes one source database: total count plus the five
// most recent entries.
type Collection struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Latest []Entry `json:"latest"`
}

func EntryFromPage(page notion.Page) Entry {
	props := page.Properties

	date := notion.ExtractDate(props, "Date", "Day", "When")
	if date == "" && len(page.CreatedTime) >= 10 {
		// fall back to the page creation timestamp, date part only
		date = page.CreatedTime[:10]
	}

	return Entry{
		Name:  notion.ExtractText(props, "Name", "Item", "Product", "Title"),
		Date:  date,
		Done:  notion.ExtractCheckbox(props, "Done", "Completed"),
		Notes: optionalText(notion.ExtractText(props, "Notes", "Note")),
	}
}

// CollectionFromPages builds the summary for one source database:
// count of all entries and the latest five by date string, newest first.
func CollectionFromPages(name string, pages []notion.Page) Collection {
	entries := make([]Entry, 0, len(pages))
	for _, page := range pages {
		entries = append(entries, EntryFromPage(page))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})

	latest := entries
	if len(latest) > latestEntriesCount {
		latest = latest[:latestEntriesCount]
	}

	return Collection{
		Name:   name,
		Count:  len(entries),
		Latest: latest,
	}
}

func emptyCollection(name string) Collection {
	return Collection{
		Name:   name,
		Latest: []Entry{},
	}
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
