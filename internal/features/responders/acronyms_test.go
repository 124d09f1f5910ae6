package responders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectAcronyms(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"single", "brb grabbing coffee", []string{"brb"}},
		{"multiple in order", "idk tbh, lol", []string{"idk", "tbh", "lol"}},
		{"case insensitive", "OMG that's great", []string{"omg"}},
		{"punctuated keys", "tl;dr it broke, j/k", []string{"tl;dr", "j/k"}},
		{"no duplicates", "lol lol lol", []string{"lol"}},
		{"substring is not a match", "afraid of brotherhood", nil},
		{"none", "nothing to expand here", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectAcronyms(tt.content))
		})
	}
}

func TestExpandAcronyms(t *testing.T) {
	assert.Equal(t, "brb = be right back", ExpandAcronyms("brb!"))
	assert.Equal(t, "idk = I don't know\nsmh = shaking my head", ExpandAcronyms("idk smh"))
	assert.Empty(t, ExpandAcronyms("nothing here"))
}

func TestFormatHistory(t *testing.T) {
	history := []ChatMessage{
		{AuthorID: "u2", Username: "casey", Content: "newest"},
		{AuthorID: "u1", Username: "me", Content: "middle"},
		{AuthorID: "u2", Username: "casey", Content: "oldest"},
	}
	// History arrives newest-first from the API; the prompt wants it
	// oldest-first with the target anonymized.
	assert.Equal(t, "casey: oldest\nTHE_USER: middle\ncasey: newest", FormatHistory(history, "u1"))
}

func TestRoastPromptContainsContext(t *testing.T) {
	prompt := RoastPrompt("alice: hi\nTHE_USER: hello")
	assert.Contains(t, prompt, "THE_USER: hello")
	assert.Contains(t, prompt, "under 250 characters")
}
