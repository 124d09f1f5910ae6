// Package responders holds the small message-driven features: acronym
// expansion in the watercooler channel, the occasional clock reply, and
// the /roastme command.
package responders

import (
	"fmt"
	"regexp"
	"strings"
)

// acronyms maps lowercase acronyms to their expansion. Keys with
// punctuation (j/k, tl;dr) are matched as whole tokens.
var acronyms = map[string]string{
	"afaik":   "as far as I know",
	"afk":     "away from keyboard",
	"be":      "backend",
	"brb":     "be right back",
	"bro":     "brother",
	"btw":     "by the way",
	"cya":     "see you",
	"dm":      "direct message",
	"fe":      "frontend",
	"fomo":    "fear of missing out",
	"fr":      "for real",
	"ftw":     "for the win",
	"fwiw":    "for what it's worth",
	"fyi":     "for your information",
	"gj":      "good job",
	"gm":      "good morning",
	"gn":      "good night",
	"goat":    "greatest of all time",
	"icymi":   "in case you missed it",
	"idk":     "I don't know",
	"iirc":    "if I recall correctly",
	"imho":    "in my humble opinion",
	"imo":     "in my opinion",
	"irl":     "in real life",
	"iykyk":   "if you know you know",
	"j/k":     "just kidding",
	"jk":      "just kidding",
	"js":      "javascript",
	"lmao":    "laughing my ass off",
	"lol":     "laughing out loud",
	"n/a":     "not applicable",
	"n/m":     "nevermind",
	"ngl":     "not gonna lie",
	"nj":      "nice job",
	"noob":    "newbie",
	"np":      "no problem",
	"nsfw":    "not safe for work",
	"nvm":     "nevermind",
	"omg":     "oh my god",
	"ong":     "on god",
	"otoh":    "on the other hand",
	"qa":      "quality assurance",
	"rip":     "rest in peace",
	"rn":      "right now",
	"rofl":    "rolling on the floor laughing",
	"roflmao": "rolling on the floor laughing my ass off",
	"sis":     "sister",
	"smh":     "shaking my head",
	"tbh":     "to be honest",
	"tl;dr":   "too long; didn't read",
	"tldr":    "too long; didn't read",
	"tn":      "tonight",
	"ts":      "typescript",
	"ty":      "thank you",
	"u":       "you",
	"ui":      "user interface",
	"ux":      "user experience",
	"wtf":     "what the fuck",
	"wyd":     "what you doing",
	"yolo":    "you only live once",
	"yw":      "you're welcome",
}

// tokenPattern splits a message into candidate tokens. Letters plus
// the / and ; joiners so "j/k" and "tl;dr" survive as single tokens.
var tokenPattern = regexp.MustCompile(`[a-z]+(?:[/;][a-z]+)*`)

// DetectAcronyms returns the known acronyms in a message, in order of
// first appearance, without duplicates.
func DetectAcronyms(content string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(content), -1)

	var found []string
	seen := make(map[string]bool)
	for _, token := range tokens {
		if _, ok := acronyms[token]; ok && !seen[token] {
			seen[token] = true
			found = append(found, token)
		}
	}
	return found
}

// ExpandAcronyms renders the reply body, one definition per line.
// Returns an empty string when the message contains no known acronyms.
func ExpandAcronyms(content string) string {
	found := DetectAcronyms(content)
	if len(found) == 0 {
		return ""
	}
	lines := make([]string, 0, len(found))
	for _, acronym := range found {
		lines = append(lines, fmt.Sprintf("%s = %s", acronym, acronyms[acronym]))
	}
	return strings.Join(lines, "\n")
}
