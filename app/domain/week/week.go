// Package week implements the drop-week token scheme used to bucket new
// arrivals. A token is four characters: a zero-padded two-digit week number
// followed by the two-digit year, e.g. "0126" for week 1 of 2026.
//
// The scheme counts exactly 52 weeks per year. ISO week-53 years collapse
// into week 52; editorial tagging has always worked this way, so the walk
// in PreviousToken wraps 1 -> 52 of the prior year rather than consulting
// the ISO calendar.
package week

import (
	"fmt"
	"strconv"
	"time"
)

// maxLookback caps how far TargetWeeks walks into the past.
const maxLookback = 52

// CurrentToken returns the token for the week containing now.
func CurrentToken(now time.Time) string {
	return fmt.Sprintf("%02d%02d", weekOfYear(now), now.Year()%100)
}

// weekOfYear derives the 1..52 week number from the day of year, offset by
// the weekday of January 1st so partial first weeks count as week 1.
func weekOfYear(t time.Time) int {
	yearStart := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	offset := int(yearStart.Weekday())
	week := (t.YearDay() + offset + 6) / 7
	if week < 1 {
		week = 1
	}
	if week > 52 {
		week = 52
	}
	return week
}

// PreviousToken returns the token one week earlier. Week 1 wraps to week 52
// of the previous year. Malformed tokens are returned unchanged.
func PreviousToken(token string) string {
	weekNum, yearNum, ok := parseToken(token)
	if !ok {
		return token
	}
	weekNum--
	if weekNum < 1 {
		weekNum = 52
		yearNum--
		if yearNum < 0 {
			yearNum = 99
		}
	}
	return fmt.Sprintf("%02d%02d", weekNum, yearNum)
}

func parseToken(token string) (weekNum, yearNum int, ok bool) {
	if len(token) != 4 {
		return 0, 0, false
	}
	weekNum, err := strconv.Atoi(token[:2])
	if err != nil || weekNum < 1 || weekNum > 52 {
		return 0, 0, false
	}
	yearNum, err = strconv.Atoi(token[2:])
	if err != nil {
		return 0, 0, false
	}
	return weekNum, yearNum, true
}

// TargetWeeks walks backward from the week containing now and collects up to
// maxCount tokens that actually have products, most recent first. The walk
// never visits more than a year of history, so sparse catalogs return fewer
// tokens instead of looping.
func TargetWeeks(now time.Time, maxCount int, available map[string]struct{}) []string {
	if maxCount < 1 {
		return nil
	}
	targets := make([]string, 0, maxCount)
	token := CurrentToken(now)
	for i := 0; i < maxLookback && len(targets) < maxCount; i++ {
		if _, ok := available[token]; ok {
			targets = append(targets, token)
		}
		token = PreviousToken(token)
	}
	return targets
}
