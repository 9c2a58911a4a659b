package journal

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

const (
	MinMood = 1
	MaxMood = 5
)

var (
	// ErrMoodNotNumber is returned when mood input is not an integer.
	ErrMoodNotNumber = errors.New("mood is not a number")
	// ErrMoodOutOfRange is returned when mood input is an integer outside 1..5.
	ErrMoodOutOfRange = errors.New("mood is out of range")
)

// a JSON number with no fraction or exponent
var integerLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)

// ParseMood checks user input against the mood rule. Surrounding whitespace is
// ignored, a leading sign is allowed.
func ParseMood(input string) (int, error) {
	mood, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, ErrMoodNotNumber
	}
	if !ValidMood(mood) {
		return mood, ErrMoodOutOfRange
	}
	return mood, nil
}

// ValidMood reports whether mood lies in 1..5.
func ValidMood(mood int) bool {
	return mood >= MinMood && mood <= MaxMood
}

var moodMessages = map[int]string{
	1: "Cheer up! Tomorrow is a new day.",
	2: "Hang in there!",
	3: "Not bad! Keep going!",
	4: "Great job!",
	5: "You're on fire today!",
}

// MoodMessage returns the encouragement for a mood, or "" for anything outside the table.
func MoodMessage(mood int) string {
	msg, ok := moodMessages[mood]
	if !ok {
		return ""
	}
	return msg
}
