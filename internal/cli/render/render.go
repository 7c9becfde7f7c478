// Package render formats mindful state for the terminal.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/mindful/internal/models"
)

const barWidth = 24

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Width(20)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)
)

// Badge colors are Tailwind gradient classes ("from-green-400 to-emerald-500").
var palette = map[string]string{
	"amber-400":   "#fbbf24",
	"amber-500":   "#f59e0b",
	"blue-400":    "#60a5fa",
	"blue-500":    "#3b82f6",
	"cyan-400":    "#22d3ee",
	"cyan-500":    "#06b6d4",
	"emerald-500": "#10b981",
	"gold-400":    "#facc15",
	"green-400":   "#4ade80",
	"indigo-400":  "#818cf8",
	"orange-400":  "#fb923c",
	"orange-500":  "#f97316",
	"pink-500":    "#ec4899",
	"pink-600":    "#db2777",
	"purple-400":  "#c084fc",
	"purple-500":  "#a855f7",
	"purple-600":  "#9333ea",
	"red-400":     "#f87171",
	"violet-400":  "#a78bfa",
	"yellow-400":  "#facc15",
	"yellow-500":  "#eab308",
	"yellow-600":  "#ca8a04",
}

// Gradient returns the start and end hex colors of a badge color class.
// Unknown classes fall back to the default progress gradient.
func Gradient(color string) (from, to string, ok bool) {
	for _, f := range strings.Fields(color) {
		if c, found := strings.CutPrefix(f, "from-"); found {
			from = palette[c]
		} else if c, found := strings.CutPrefix(f, "to-"); found {
			to = palette[c]
		}
	}
	return from, to, from != "" && to != ""
}

// Bar renders a static progress bar for fraction p in the badge's colors.
func Bar(color string, p float64) string {
	opts := []progress.Option{progress.WithWidth(barWidth)}
	if from, to, ok := Gradient(color); ok {
		opts = append(opts, progress.WithGradient(from, to))
	} else {
		opts = append(opts, progress.WithDefaultGradient())
	}
	return progress.New(opts...).ViewAs(p)
}

// Badge renders one badge line. Unlocked badges show when they were earned,
// locked ones a progress bar.
func Badge(b models.Badge, p float64, now time.Time) string {
	name := nameStyle.Render(b.Icon + " " + b.Name)
	if b.IsUnlocked() {
		return fmt.Sprintf("%s %s", name, SuccessStyle.Render("unlocked "+humanize.RelTime(*b.UnlockedAt, now, "ago", "from now")))
	}
	if b.Requirement.Type == models.RequirementSpecial {
		return fmt.Sprintf("%s %s", lockedStyle.Render(name), lockedStyle.Render(b.Description))
	}
	return fmt.Sprintf("%s %s", lockedStyle.Render(name), Bar(b.Color, p))
}

// Row renders a label/value pair.
func Row(label string, value any) string {
	return labelStyle.Render(label) + valueStyle.Render(fmt.Sprint(value))
}

// Stats renders the stats block.
func Stats(s models.UserStats, now time.Time) string {
	last := "never"
	if s.LastMeditationDate != nil {
		last = humanize.RelTime(*s.LastMeditationDate, now, "ago", "from now")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("Meditation Stats"),
		Row("Sessions", humanize.Comma(int64(s.TotalSessions))),
		Row("Minutes", humanize.Comma(int64(s.TotalMinutesMeditated))),
		Row("Current streak", Days(s.CurrentStreak)),
		Row("Longest streak", Days(s.LongestStreak)),
		Row("Last session", last),
	)
}

// Days formats a streak length.
func Days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return humanize.Comma(int64(n)) + " days"
}

// Requirement describes what a badge needs, e.g. "50 sessions".
func Requirement(r models.Requirement) string {
	switch r.Type {
	case models.RequirementSessions:
		return humanize.Comma(int64(r.Value)) + " sessions"
	case models.RequirementMinutes:
		return humanize.Comma(int64(r.Value)) + " minutes"
	case models.RequirementStreak:
		return Days(r.Value) + " in a row"
	case models.RequirementSpecial:
		return "special"
	default:
		return string(r.Type)
	}
}

// Percent formats fraction p as a whole percentage.
func Percent(p float64) string {
	return fmt.Sprintf("%.0f%%", p*100)
}
