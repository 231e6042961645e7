package source

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	oidKey  = "$oid"
	dateKey = "$date"
)

// fromExtended replaces single-key wrapper objects by the values they stand
// for. Wrappers whose payload does not parse are left as they are.
func fromExtended(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if len(t) == 1 {
			if s, ok := t[oidKey].(string); ok {
				if id, err := primitive.ObjectIDFromHex(s); err == nil {
					return id
				}
			}
			if d, ok := t[dateKey]; ok {
				if tm, ok := parseDate(d); ok {
					return tm
				}
			}
		}
		for k, vv := range t {
			t[k] = fromExtended(vv)
		}
		return t
	case []any:
		for i, vv := range t {
			t[i] = fromExtended(vv)
		}
		return t
	}
	return v
}

func parseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case string:
		tm, err := time.Parse(time.RFC3339Nano, d)
		return tm.UTC(), err == nil
	case int64:
		return time.UnixMilli(d).UTC(), true
	case map[string]any:
		// Canonical form: {"$date": {"$numberLong": "<millis>"}}.
		if s, ok := d["$numberLong"].(string); ok && len(d) == 1 {
			if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
				return primitive.DateTime(ms).Time().UTC(), true
			}
		}
	}
	return time.Time{}, false
}

// toExtended is the inverse of fromExtended. It copies containers.
func toExtended(v any) any {
	switch t := v.(type) {
	case primitive.ObjectID:
		return map[string]any{oidKey: t.Hex()}
	case time.Time:
		return map[string]any{dateKey: t.UTC().Format(time.RFC3339Nano)}
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = toExtended(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = toExtended(vv)
		}
		return out
	}
	return v
}
