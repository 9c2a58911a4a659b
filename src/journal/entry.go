package journal

import (
	"encoding/json"
	"strconv"
	"time"
)

// DateLayout is the on-disk format of Entry.Date.
const DateLayout = "2006-01-02"

// Entry is one journal record. Mood holds the raw JSON value as read from disk so
// that loaded records are shown as they are instead of being re-validated.
type Entry struct {
	Date     string          `json:"date"`
	Title    string          `json:"title"`
	Events   string          `json:"events"`
	Feelings string          `json:"feelings"`
	Notes    string          `json:"notes"`
	Forget   string          `json:"forget"`
	Mood     json.RawMessage `json:"mood,omitempty"`
}

// NewEntry stamps a fresh entry with the calendar date of now.
func NewEntry(now time.Time, title, events, feelings, notes, forget string, mood int) Entry {
	return Entry{
		Date:     now.Format(DateLayout),
		Title:    title,
		Events:   events,
		Feelings: feelings,
		Notes:    notes,
		Forget:   forget,
		Mood:     MoodValue(mood),
	}
}

// MoodValue encodes an integer mood the way it is persisted.
func MoodValue(mood int) json.RawMessage {
	return json.RawMessage(strconv.Itoa(mood))
}

// MoodInt returns the mood if, and only if, it was stored as a JSON integer.
func (e Entry) MoodInt() (int, bool) {
	raw := string(e.Mood)
	if !integerLiteral.MatchString(raw) {
		return 0, false
	}
	mood, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return mood, true
}

// MoodText is the display form of the stored mood: strings unquoted, null and
// missing values empty, everything else verbatim.
func (e Entry) MoodText() string {
	if len(e.Mood) == 0 || string(e.Mood) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Mood, &s); err == nil {
		return s
	}
	return string(e.Mood)
}
