package update

import "testing"

func TestMoodEmoji(t *testing.T) {
	tests := []struct {
		mood Mood
		want string
	}{
		{MoodGreat, "🎉"},
		{MoodGood, "😊"},
		{MoodNeutral, "😐"},
		{MoodConcerned, "😟"},
		{MoodWarning, "⚠️"},
		{"", "😐"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mood), func(t *testing.T) {
			if got := tt.mood.Emoji(); got != tt.want {
				t.Errorf("Emoji() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	if got := MoodConcerned.Label(); got != "Concerned" {
		t.Errorf("MoodConcerned.Label() = %q", got)
	}
	if got := LevelExcellent.Label(); got != "Excellent" {
		t.Errorf("LevelExcellent.Label() = %q", got)
	}
	if got := LevelNA.Label(); got != "N/A" {
		t.Errorf("LevelNA.Label() = %q", got)
	}
	if got := Level("").Label(); got != "N/A" {
		t.Errorf("unset Label() = %q", got)
	}
	if len(Moods()) != 5 {
		t.Errorf("expected 5 moods, got %d", len(Moods()))
	}
}
