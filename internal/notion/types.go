package notion

import (
	"fmt"
	"strings"
)

// Page is a single row of a workspace database. Properties hold the raw,
// schema-less column values, keyed by whatever the column is named in the
// workspace UI.
type Page struct {
	ID          string              `json:"id"`
	CreatedTime string              `json:"created_time,omitempty"`
	Properties  map[string]Property `json:"properties"`
}

type Property struct {
	ID       string        `json:"id,omitempty"`
	Type     string        `json:"type,omitempty"`
	Title    []RichText    `json:"title,omitempty"`
	RichText []RichText    `json:"rich_text,omitempty"`
	Number   *float64      `json:"number,omitempty"`
	Select   *SelectOption `json:"select,omitempty"`
	Date     *DateValue    `json:"date,omitempty"`
	Checkbox *bool         `json:"checkbox,omitempty"`
}

type RichText struct {
	PlainText string       `json:"plain_text,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
}

type SelectOption struct {
	Name string `json:"name"`
}

type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// write-side property builders, used when creating or updating pages

func NewTitleProperty(text string) Property {
	return Property{
		Title: []RichText{
			{Text: &TextContent{Content: text}},
		},
	}
}

func NewNumberProperty(value float64) Property {
	return Property{
		Number: &value,
	}
}

func NewSelectProperty(name string) Property {
	return Property{
		Select: &SelectOption{Name: name},
	}
}

func NewDateProperty(date string) Property {
	return Property{
		Date: &DateValue{Start: date},
	}
}

type databaseQueryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

type databaseQueryResponse struct {
	Object     string  `json:"object"`
	Results    []Page  `json:"results"`
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

type createPageRequest struct {
	Parent     PageParent          `json:"parent"`
	Properties map[string]Property `json:"properties"`
}

type updatePageRequest struct {
	Properties map[string]Property `json:"properties"`
}

type PageParent struct {
	DatabaseID string `json:"database_id"`
}

// APIError is the decoded error payload of a non-2xx workspace API response.
type APIError struct {
	StatusCode int    `json:"status"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("workspace api error [%d %s]: %s", e.StatusCode, e.Code, e.Message)
}

// NormalizeDatabaseID lowercases the given database ID and strips everything
// besides hex digits and dashes, so IDs pasted from workspace URLs work as-is.
func NormalizeDatabaseID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	var sb strings.Builder
	for _, r := range id {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || r == '-' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
