package notion

import "strings"

// Property extraction: the same logical field can be named differently
// across databases ("Food" vs "Meal" vs "Name"), so each extractor takes
// the known aliases in priority order. The first alias PRESENT in the
// properties map wins, even when its value turns out to be empty; later
// aliases are not consulted after that.

func ExtractText(props map[string]Property, keys ...string) string {
	for _, key := range keys {
		prop, ok := props[key]
		if !ok {
			continue
		}
		return richTextValue(prop)
	}
	return ""
}

func ExtractNumber(props map[string]Property, keys ...string) float64 {
	for _, key := range keys {
		prop, ok := props[key]
		if !ok {
			continue
		}
		if prop.Number == nil {
			return 0
		}
		return *prop.Number
	}
	return 0
}

func ExtractSelect(props map[string]Property, keys ...string) string {
	for _, key := range keys {
		prop, ok := props[key]
		if !ok {
			continue
		}
		if prop.Select == nil {
			return ""
		}
		return prop.Select.Name
	}
	return ""
}

func ExtractDate(props map[string]Property, keys ...string) string {
	for _, key := range keys {
		prop, ok := props[key]
		if !ok {
			continue
		}
		if prop.Date == nil {
			return ""
		}
		return prop.Date.Start
	}
	return ""
}

func ExtractCheckbox(props map[string]Property, keys ...string) bool {
	for _, key := range keys {
		prop, ok := props[key]
		if !ok {
			continue
		}
		if prop.Checkbox == nil {
			return false
		}
		return *prop.Checkbox
	}
	return false
}

func richTextValue(prop Property) string {
	fragments := prop.Title
	if len(fragments) == 0 {
		fragments = prop.RichText
	}

	var sb strings.Builder
	for _, fragment := range fragments {
		sb.WriteString(fragment.PlainText)
	}
	return strings.TrimSpace(sb.String())
}
