// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/example/pulse/internal/core/update"
	"github.com/example/pulse/internal/ports/primary"
)

const rule = "────────────────────────────────────────────────────────────────"

var (
	heading = color.New(color.Bold)
	muted   = color.New(color.FgHiBlack)
	success = color.New(color.FgGreen)
	urgent  = color.New(color.FgRed, color.Bold)
	soon    = color.New(color.FgCyan)
)

// levelColor mirrors the badge colours of the web dashboard.
func levelColor(level string) *color.Color {
	switch update.Level(level) {
	case update.LevelExcellent:
		return color.New(color.FgHiGreen, color.Bold)
	case update.LevelGood:
		return color.New(color.FgGreen)
	case update.LevelMedium:
		return color.New(color.FgYellow)
	case update.LevelPoor:
		return color.New(color.FgRed)
	default:
		return muted
	}
}

func badge(label, level string) string {
	return fmt.Sprintf("%s: %s", label, levelColor(level).Sprint(update.Level(level).Label()))
}

func moodLine(mood string) string {
	m := update.Mood(mood)
	return fmt.Sprintf("%s %s", m.Emoji(), m.Label())
}

func deadlineText(text string) string {
	switch text {
	case "":
		return ""
	case "Due today", "Overdue":
		return urgent.Sprint(text)
	default:
		return soon.Sprint(text)
	}
}

// updatedAgo renders "Updated 3 days ago" relative to now.
func updatedAgo(createdAt, now time.Time) string {
	return "Updated " + humanize.RelTime(createdAt, now, "ago", "from now")
}

func departmentLabels(a primary.Assessment) []string {
	var labels []string
	if a.ProductAligned {
		labels = append(labels, "Product")
	}
	if a.TechAligned {
		labels = append(labels, "Tech/Engineering")
	}
	if a.MarketingAligned {
		labels = append(labels, "Marketing")
	}
	if a.ClientSuccessAligned {
		labels = append(labels, "Client Success")
	}
	if a.CommercialAligned {
		labels = append(labels, "Commercial")
	}
	return labels
}

// writeAssessment prints the ratings and notes of an update, indented.
func writeAssessment(out io.Writer, indent string, a primary.Assessment) {
	fmt.Fprintf(out, "%s%s\n", indent, moodLine(a.Mood))
	fmt.Fprintf(out, "%s%s  %s  %s  %s\n", indent,
		badge("Plan", a.Plan),
		badge("Alignment", a.Alignment),
		badge("Execution", a.Execution),
		badge("Outcomes", a.Outcomes),
	)
	if a.LatestStatus != "" {
		fmt.Fprintf(out, "%sStatus: %s\n", indent, a.LatestStatus)
	}
	if a.BiggestRisk != "" {
		fmt.Fprintf(out, "%sRisk:   %s\n", indent, a.BiggestRisk)
	}
	if labels := departmentLabels(a); len(labels) > 0 {
		fmt.Fprintf(out, "%sAligned: %s\n", indent, strings.Join(labels, ", "))
	}
}

// writeTasks prints a numbered task list; due is optional working-day text per task.
func writeTasks(out io.Writer, indent string, tasks []*primary.Task, due func(*primary.Task) string) {
	for i, task := range tasks {
		box := "[ ]"
		if task.Completed {
			box = success.Sprint("[x]")
		}
		line := fmt.Sprintf("%s%d. %s %s", indent, i+1, box, task.Text)
		if task.DueDate != "" {
			line += muted.Sprintf("  (due %s)", task.DueDate)
			if due != nil {
				if text := due(task); text != "" {
					line += " " + deadlineText(text)
				}
			}
		}
		fmt.Fprintln(out, line)
	}
}
