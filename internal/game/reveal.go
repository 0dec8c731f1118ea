package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/tahcohcat/daily-mystery/internal/models"
)

var revealLevels = []models.RevealLevel{
	{Threshold: 0, Description: "Mystery Hidden", RevealPercentage: 25},
	{Threshold: 10, Description: "First Clue", RevealPercentage: 35},
	{Threshold: 25, Description: "Getting Warmer", RevealPercentage: 50},
	{Threshold: 50, Description: "Almost There", RevealPercentage: 70},
	{Threshold: 100, Description: "Final Reveal", RevealPercentage: 90},
}

// RevealLevels returns a copy of the ascending reveal table.
func RevealLevels() []models.RevealLevel {
	return append([]models.RevealLevel(nil), revealLevels...)
}

// LevelFor returns the greatest index whose threshold is <= totalGuesses.
func LevelFor(totalGuesses int) int {
	level := 0
	for i, l := range revealLevels {
		if totalGuesses >= l.Threshold {
			level = i
		}
	}
	return level
}

// Level returns the reveal table entry at index i, clamped to the table.
func Level(i int) models.RevealLevel {
	if i < 0 {
		i = 0
	}
	if i >= len(revealLevels) {
		i = len(revealLevels) - 1
	}
	return revealLevels[i]
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// LettersToReveal is floor(letters * pct / 100) where letters excludes spaces.
func LettersToReveal(answer string, pct int) int {
	letters := len(strings.ReplaceAll(answer, " ", ""))
	return letters * pct / 100
}

// RevealedText masks answer for the textual revealed content. At 0% every
// non-space character becomes '_'. Otherwise LettersToReveal letter positions are picked
// uniformly at random without replacement and shown. Spaces are always kept.
// The selection uses the shared random source and is not reproducible.
func RevealedText(answer string, pct int) string {
	return revealedText(answer, pct, rand.Perm)
}

func revealedText(answer string, pct int, perm func(int) []int) string {
	out := []byte(answer)
	if pct <= 0 {
		for i := range out {
			if out[i] != ' ' {
				out[i] = '_'
			}
		}
		return string(out)
	}

	var positions []int
	for i := 0; i < len(answer); i++ {
		if isLetter(answer[i]) {
			positions = append(positions, i)
		}
	}

	n := LettersToReveal(answer, pct)
	revealed := make(map[int]bool, n)
	for _, p := range perm(len(positions)) {
		if len(revealed) >= n {
			break
		}
		revealed[positions[p]] = true
	}

	for i := range out {
		if out[i] == ' ' || revealed[i] {
			continue
		}
		out[i] = '_'
	}
	return string(out)
}

// RevealedContent is what a player who has not solved yet gets to see.
func RevealedContent(m models.MysteryContent, totalGuesses int) string {
	level := Level(LevelFor(totalGuesses))
	if m.Type == models.MysteryTypeImage {
		return fmt.Sprintf("Pixelation: %d%%", 100-level.RevealPercentage)
	}
	return RevealedText(m.Answer, level.RevealPercentage)
}

const vowels = "AEIOU"

// WidgetReveal picks which positions the interactive letter widget shows. The
// first letter of every word is always shown, then shuffled vowels, then
// shuffled consonants, until LettersToReveal positions are shown in total.
// It is independent of RevealedText and the two can disagree.
func WidgetReveal(answer string, pct int) []bool {
	return widgetReveal(answer, pct, rand.Shuffle)
}

func widgetReveal(answer string, pct int, shuffle func(int, func(i, j int))) []bool {
	revealed := make([]bool, len(answer))
	count := 0

	wordStart := true
	for i := 0; i < len(answer); i++ {
		if answer[i] == ' ' {
			wordStart = true
			continue
		}
		if wordStart {
			revealed[i] = true
			count++
		}
		wordStart = false
	}

	var vowelPos, consonantPos []int
	for i := 0; i < len(answer); i++ {
		if answer[i] == ' ' || revealed[i] {
			continue
		}
		if strings.IndexByte(vowels, answer[i]) >= 0 {
			vowelPos = append(vowelPos, i)
		} else {
			consonantPos = append(consonantPos, i)
		}
	}
	shuffle(len(vowelPos), func(i, j int) { vowelPos[i], vowelPos[j] = vowelPos[j], vowelPos[i] })
	shuffle(len(consonantPos), func(i, j int) { consonantPos[i], consonantPos[j] = consonantPos[j], consonantPos[i] })

	target := LettersToReveal(answer, pct)
	for _, p := range append(vowelPos, consonantPos...) {
		if count >= target {
			break
		}
		revealed[p] = true
		count++
	}
	return revealed
}

// MaskWith renders answer keeping only the positions flagged in revealed.
func MaskWith(answer string, revealed []bool) string {
	out := []byte(answer)
	for i := range out {
		if out[i] == ' ' || (i < len(revealed) && revealed[i]) {
			continue
		}
		out[i] = '_'
	}
	return string(out)
}

// UnlockedHints returns the hints visible at reveal level: hint i unlocks at
// level i+1.
func UnlockedHints(hints []string, level int) []string {
	if level > len(hints) {
		level = len(hints)
	}
	if level <= 0 {
		return []string{}
	}
	return append([]string(nil), hints[:level]...)
}
