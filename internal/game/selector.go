package game

import (
	"strconv"
	"strings"

	"github.com/tahcohcat/daily-mystery/internal/models"
)

// SelectIndex maps a YYYY-MM-DD date to a pool index by summing the numeric
// components (2024+1+1, not 20240101) modulo the pool size. Components that
// fail to parse count as zero.
func SelectIndex(date string) int {
	sum := 0
	for _, part := range strings.Split(date, "-") {
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		sum += n
	}
	idx := sum % len(mysteryPool)
	if idx < 0 {
		idx += len(mysteryPool)
	}
	return idx
}

// SelectDailyMystery returns the mystery for date. Every process agrees on the
// result for the same date, there is no randomness or external state.
func SelectDailyMystery(date string) models.MysteryContent {
	m := mysteryPool[SelectIndex(date)]
	m.Hints = append([]string(nil), m.Hints...)
	return m
}
