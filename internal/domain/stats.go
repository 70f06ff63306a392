// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// RawStats holds the aggregated activity counts for a single GitHub identity.
// It is the core domain entity of this application and is never mutated after a fetch.
type RawStats struct {
	Name          string `json:"name"`
	Stars         int    `json:"stars"`
	Commits       int    `json:"commits"`
	PullRequests  int    `json:"prs"`
	Issues        int    `json:"issues"`
	ContributedTo int    `json:"contributed_to"`
	Reviews       int    `json:"reviews"`
	Followers     int    `json:"followers"`
	Repositories  int    `json:"repos"`
}

// Rank labels, ordered from highest to lowest.
const (
	RankSPlus     = "S+"
	RankS         = "S"
	RankAPlusPlus = "A++"
	RankAPlus     = "A+"
	RankA         = "A"
	RankBPlus     = "B+"
	RankB         = "B"
	RankC         = "C"
)

// RankResult is the composite activity score and its letter grade.
type RankResult struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// Card is everything produced by a single generation run.
type Card struct {
	Stats RawStats    `json:"stats"`
	Rank  *RankResult `json:"rank,omitempty"`
	SVG   string      `json:"-"`
}

// Quota is a snapshot of the GraphQL API rate limit.
type Quota struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}
