// Package render draws the stats card as a standalone SVG document.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"text/template"

	"github.com/naka-gawa/profile-stats/internal/domain"
)

// Card geometry, in SVG user units.
const (
	CardWidth  = 495
	CardHeight = 195

	paddingX   = 25
	titleY     = 35
	statsWidth = 310
	rowStartY  = 72
	rowStep    = 25

	ringRadius = 40
	// pi is truncated so ring dimensions stay stable across renders.
	pi = 3.14159
)

//go:embed card.svg.tmpl
var cardTemplate string

var tmpl = template.Must(template.New("card").Parse(cardTemplate))

// Theme holds the card colors.
type Theme struct {
	Background string
	Border     string
	Title      string
	Label      string
	Value      string
	RingTrack  string
}

// HighContrast is the fixed dark theme of the card.
var HighContrast = Theme{
	Background: "#000000",
	Border:     "#e4e2e2",
	Title:      "#e4e2e2",
	Label:      "#9f9f9f",
	Value:      "#e4e2e2",
	RingTrack:  "#333333",
}

// rankColors maps each label to its ring color.
var rankColors = map[string]string{
	domain.RankSPlus:     "#FFD700",
	domain.RankS:         "#FFD700",
	domain.RankAPlusPlus: "#F5A623",
	domain.RankAPlus:     "#F5A623",
	domain.RankA:         "#F5A623",
	domain.RankBPlus:     "#4CAF50",
	domain.RankB:         "#4CAF50",
	domain.RankC:         "#9f9f9f",
}

const fallbackRankColor = "#F5A623"

type row struct {
	Y     int
	Icon  string
	Label string
	Value string
}

type ring struct {
	CX, CY, R     int
	Circumference string
	Offset        string
	Color         string
	FontSize      int
	Label         string
}

type view struct {
	Width, Height           int
	InnerWidth, InnerHeight int
	PaddingX, TitleY        int
	StatsWidth              int
	Theme                   Theme
	Name                    string
	Rows                    []row
	Ring                    *ring
}

// RankColor returns the ring color of a rank label.
func RankColor(label string) string {
	if c, ok := rankColors[label]; ok {
		return c
	}
	return fallbackRankColor
}

// Render builds the SVG card. The rank ring is drawn only when rank is non-nil.
func Render(s domain.RawStats, rank *domain.RankResult) (string, error) {
	items := []struct {
		icon  string
		label string
		value int
	}{
		{"⭐", "Total Stars Earned", s.Stars},
		{"📝", "Total Commits", s.Commits},
		{"🔀", "Total PRs", s.PullRequests},
		{"🔴", "Total Issues", s.Issues},
		{"📦", "Contributed to", s.ContributedTo},
	}

	v := view{
		Width:       CardWidth,
		Height:      CardHeight,
		InnerWidth:  CardWidth - 1,
		InnerHeight: CardHeight - 1,
		PaddingX:    paddingX,
		TitleY:      titleY,
		StatsWidth:  statsWidth,
		Theme:       HighContrast,
		Name:        s.Name,
		Rows:        make([]row, 0, len(items)),
	}
	for i, it := range items {
		v.Rows = append(v.Rows, row{
			Y:     rowStartY + i*rowStep,
			Icon:  it.icon,
			Label: it.label,
			Value: FormatNumber(it.value),
		})
	}
	if rank != nil {
		v.Ring = newRing(*rank)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("failed to render stats card: %w", err)
	}
	return buf.String(), nil
}

func newRing(rank domain.RankResult) *ring {
	circumference := 2 * pi * ringRadius
	fontSize := 28
	if len(rank.Label) > 2 {
		fontSize = 22
	}
	return &ring{
		CX:            CardWidth - 70,
		CY:            CardHeight/2 + 8,
		R:             ringRadius,
		Circumference: strconv.FormatFloat(circumference, 'f', -1, 64),
		Offset:        fmt.Sprintf("%.1f", circumference*(1-rank.Score)),
		Color:         RankColor(rank.Label),
		FontSize:      fontSize,
		Label:         rank.Label,
	}
}
