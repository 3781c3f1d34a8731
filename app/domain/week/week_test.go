package week

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentTokenFormat(t *testing.T) {
	token := CurrentToken(time.Date(2025, time.November, 24, 12, 0, 0, 0, time.UTC))
	require.Len(t, token, 4)
	assert.Equal(t, "25", token[2:])

	// Early January always lands in week 1.
	assert.Equal(t, "0126", CurrentToken(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)))

	// Late December clamps to week 52 even in long years.
	assert.Equal(t, "5226", CurrentToken(time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)))
}

func TestPreviousTokenDecrements(t *testing.T) {
	assert.Equal(t, "4725", PreviousToken("4825"))
	assert.Equal(t, "0125", PreviousToken("0225"))
}

func TestPreviousTokenWrapsYear(t *testing.T) {
	assert.Equal(t, "5224", PreviousToken("0125"))
	assert.Equal(t, "5299", PreviousToken("0100"))
}

func TestPreviousTokenMalformedUnchanged(t *testing.T) {
	assert.Equal(t, "", PreviousToken(""))
	assert.Equal(t, "abcd", PreviousToken("abcd"))
	assert.Equal(t, "9925", PreviousToken("9925"))
}

func TestPreviousTokenFullYearRoundTrip(t *testing.T) {
	// 52 steps from any token lands on the same week number one year back,
	// and never produces week 00 or a week above 52.
	token := "3125"
	for i := 0; i < 52; i++ {
		token = PreviousToken(token)
		weekNum := token[:2]
		assert.NotEqual(t, "00", weekNum)
		assert.LessOrEqual(t, weekNum, "52")
	}
	assert.Equal(t, "3124", token)
}

func TestTargetWeeksOrderingAndMembership(t *testing.T) {
	now := time.Date(2025, time.November, 24, 0, 0, 0, 0, time.UTC)
	current := CurrentToken(now)

	available := map[string]struct{}{}
	tok := current
	for i := 0; i < 6; i++ {
		if i%2 == 0 { // every other week has products
			available[tok] = struct{}{}
		}
		tok = PreviousToken(tok)
	}

	targets := TargetWeeks(now, 3, available)
	require.Len(t, targets, 3)
	assert.Equal(t, current, targets[0])
	for _, target := range targets {
		_, ok := available[target]
		assert.True(t, ok, fmt.Sprintf("token %s not in available set", target))
	}
	// Strictly ordered by recency: each later entry is further in the past.
	assert.Equal(t, PreviousToken(PreviousToken(targets[0])), targets[1])
	assert.Equal(t, PreviousToken(PreviousToken(targets[1])), targets[2])
}

func TestTargetWeeksFewerThanRequested(t *testing.T) {
	now := time.Date(2025, time.November, 24, 0, 0, 0, 0, time.UTC)
	available := map[string]struct{}{CurrentToken(now): {}}

	targets := TargetWeeks(now, 5, available)
	assert.Equal(t, []string{CurrentToken(now)}, targets)
}

func TestTargetWeeksBounds(t *testing.T) {
	now := time.Now()
	assert.Nil(t, TargetWeeks(now, 0, map[string]struct{}{"0125": {}}))
	assert.Empty(t, TargetWeeks(now, 4, nil))
}
