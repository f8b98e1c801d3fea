package update

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var moodEmoji = map[Mood]string{
	MoodGreat:     "🎉",
	MoodGood:      "😊",
	MoodNeutral:   "😐",
	MoodConcerned: "😟",
	MoodWarning:   "⚠️",
}

// Moods lists every mood in display order.
func Moods() []Mood {
	return []Mood{MoodGreat, MoodGood, MoodNeutral, MoodConcerned, MoodWarning}
}

// Emoji returns the mood's emoji; unknown or unset moods read as neutral.
func (m Mood) Emoji() string {
	if e, ok := moodEmoji[m]; ok {
		return e
	}
	return moodEmoji[MoodNeutral]
}

// Label returns the mood's display name, e.g. "Concerned".
func (m Mood) Label() string {
	if m == "" {
		return "N/A"
	}
	return cases.Title(language.English).String(string(m))
}

// Label returns the level's display name. Unset and na both read "N/A".
func (l Level) Label() string {
	if l == "" || l == LevelNA {
		return "N/A"
	}
	return cases.Title(language.English).String(string(l))
}
