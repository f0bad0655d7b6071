package user

import (
	"encoding/json"
	"time"
)

// Legacy files were written by hand and by older clients, so dates and hours
// can carry the wrong JSON type. Such values decode to their zero form, which
// the engines skip.

func looseString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// looseHours accepts any JSON number and truncates it toward zero.
func looseHours(raw json.RawMessage) int {
	var f float64
	if len(raw) == 0 || json.Unmarshal(raw, &f) != nil {
		return 0
	}
	return int(f)
}

func (t *Task) UnmarshalJSON(b []byte) error {
	var raw struct {
		Label json.RawMessage `json:"label"`
		Hours json.RawMessage `json:"hours"`
		Date  json.RawMessage `json:"date"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = Task{
		Label: looseString(raw.Label),
		Hours: looseHours(raw.Hours),
		Date:  looseString(raw.Date),
	}
	return nil
}

func (l *DailyLog) UnmarshalJSON(b []byte) error {
	var raw struct {
		Date json.RawMessage `json:"date"`
		Mood json.RawMessage `json:"mood"`
		Log  json.RawMessage `json:"log"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*l = DailyLog{
		Date: looseString(raw.Date),
		Mood: looseString(raw.Mood),
		Log:  map[string]int{},
	}
	var hours map[string]json.RawMessage
	if json.Unmarshal(raw.Log, &hours) == nil {
		for activity, h := range hours {
			l.Log[activity] = looseHours(h)
		}
	}
	return nil
}

// UnmarshalJSON keeps unknown keys, and known keys whose value has the wrong
// type, in Extra so that a rewrite does not drop them.
func (p *Profile) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}

	*p = Profile{}
	claim := func(key string, dst *string) {
		if decodeString(fields[key], dst) {
			delete(fields, key)
		}
	}
	claim("avatar", &p.Avatar)
	claim("name", &p.Name)
	claim("ai_insight", &p.AIInsight)
	claim("ai_insight_date", &p.AIInsightDate)
	if raw, ok := fields["last_seen"]; ok {
		var seen time.Time
		if string(raw) == "null" {
			delete(fields, "last_seen")
		} else if json.Unmarshal(raw, &seen) == nil {
			p.LastSeen = &seen
			delete(fields, "last_seen")
		}
	}

	if len(fields) > 0 {
		p.Extra = fields
	}
	return nil
}

func (p Profile) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Extra)+5)
	for key, raw := range p.Extra {
		out[key] = raw
	}
	set := func(key, v string) {
		if v != "" {
			out[key] = v
		}
	}
	set("avatar", p.Avatar)
	set("name", p.Name)
	set("ai_insight", p.AIInsight)
	set("ai_insight_date", p.AIInsightDate)
	if p.LastSeen != nil {
		out["last_seen"] = p.LastSeen
	}
	return json.Marshal(out)
}

// decodeString reports whether raw was absent or a valid string.
func decodeString(raw json.RawMessage, dst *string) bool {
	if raw == nil {
		return false
	}
	if string(raw) == "null" {
		return true
	}
	return json.Unmarshal(raw, dst) == nil
}
