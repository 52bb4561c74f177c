package meeting

import (
	"munsite/internal/csvparse"
	"munsite/internal/model"
	"strconv"
	"strings"
)

// Column synonyms, in lookup order.
var (
	dateKeys = []string{"date", "day"}
	typeKeys = []string{"type", "kind"}
	roomKeys = []string{"room", "place", "location"}
)

// fields abstracts over a CSV row and a decoded JSON object.
type fields interface {
	str(key string) string
}

type rowFields csvparse.Row

func (r rowFields) str(key string) string {
	return csvparse.Row(r).Get(key)
}

type objectFields map[string]any

func (o objectFields) str(key string) string {
	switch v := o[key].(type) {
	case string:
		return v
	case nil:
		return ""
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func first(f fields, keys []string) string {
	for _, k := range keys {
		if v := f.str(k); v != "" {
			return v
		}
	}
	return ""
}

func normalize(f fields) model.Meeting {
	return model.Meeting{
		Date:     first(f, dateKeys),
		Time:     strings.TrimSpace(f.str("time")),
		Duration: strings.TrimSpace(f.str("duration")),
		Type:     first(f, typeKeys),
		Room:     first(f, roomKeys),
	}
}

// FromRow converts a meetings.csv row. The cancelled column counts only when
// it reads "true" in any case.
func FromRow(row csvparse.Row) model.Meeting {
	m := normalize(rowFields(row))
	m.Cancelled = strings.ToLower(row.Get("cancelled")) == "true"
	return m
}

// FromObject converts a meetings.json entry. The cancelled field is truthy
// when it is true, a non-empty string or a non-zero number.
func FromObject(obj map[string]any) model.Meeting {
	m := normalize(objectFields(obj))
	m.Cancelled = truthy(obj["cancelled"])
	return m
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	default:
		return true
	}
}
