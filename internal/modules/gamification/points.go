package gamification

import (
	"sort"

	"intraportal/internal/domain"
)

// levelThresholds are inclusive lower bounds: reaching exactly the
// threshold grants the level.
var levelThresholds = []int{0, 100, 300, 600, 1000, 1500, 2200, 3000, 4000, 5500}

// LevelFor maps a cumulative point total to a level between 1 and 10.
// Monotonic: levels never decrease for a growing total.
func LevelFor(totalPoints int) int {
	level := 1
	for i, threshold := range levelThresholds {
		if totalPoints >= threshold {
			level = i + 1
		}
	}
	return level
}

type countBadge struct {
	category  domain.ActivityCategory
	threshold int
	label     string
}

type pointsBadge struct {
	threshold int
	label     string
}

var countBadges = []countBadge{
	{domain.ActivityPostCreation, 5, "Comunicador"},
	{domain.ActivityReservation, 10, "Organizador"},
	{domain.ActivityProteinSwap, 15, "Gourmet"},
	{domain.ActivityComment, 20, "Sociável"},
	{domain.ActivityReaction, 50, "Engajado"},
}

// Point badges stack: every threshold met is held simultaneously.
var pointsBadges = []pointsBadge{
	{500, "Ativo"},
	{1000, "Veterano"},
	{2000, "Expert"},
	{3000, "Lenda"},
}

// ComputeBadges derives the badge set wholesale from the complete event
// list and current aggregate stats. Pure function: recomputed on every
// event so it can never drift from the source list.
func ComputeBadges(events []domain.ActivityEvent, totalPoints, streak int) []string {
	counts := make(map[domain.ActivityCategory]int)
	for _, e := range events {
		counts[e.Category]++
	}

	badges := make([]string, 0, 4)
	for _, b := range countBadges {
		if counts[b.category] >= b.threshold {
			badges = append(badges, b.label)
		}
	}
	for _, b := range pointsBadges {
		if totalPoints >= b.threshold {
			badges = append(badges, b.label)
		}
	}
	if streak >= 7 {
		badges = append(badges, "Consistente")
	}
	if streak >= 30 {
		badges = append(badges, "Dedicado")
	}

	// Set semantics: deterministic order, no duplicates.
	sort.Strings(badges)
	return badges
}
