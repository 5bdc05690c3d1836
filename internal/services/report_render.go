// report_render.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cseboard/cse-whiteboard/internal/htmltext"
)

const (
	reportDateLayout     = "Jan 2, 2006"
	reportDateTimeLayout = "Jan 2, 2006 03:04 PM"
)

var (
	reportSeparator     = strings.Repeat("=", 42)
	reportThinSeparator = strings.Repeat("-", 50)

	// Heading lines some models prepend despite the prompt. The rendered
	// report already carries an EXECUTIVE SUMMARY section header.
	summaryHeadingRe = regexp.MustCompile(`(?i)^\*\*Executive Summary`)
)

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func cleanExecutiveSummary(summary string) string {
	lines := strings.Split(summary, "\n")
	kept := make([]string, 0, len(lines))
	prevWasHeading := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if summaryHeadingRe.MatchString(trimmed) {
			prevWasHeading = true
			continue
		}
		if trimmed == "**" && prevWasHeading {
			prevWasHeading = false
			continue
		}
		prevWasHeading = false
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// RenderReport formats report entries as the plain-text report users paste
// into email. The layout is fixed-width ASCII with = and - rules.
func RenderReport(entries []ReportEntry, weekEndingDate string) string {
	var b strings.Builder

	end, err := time.ParseInLocation("2006-01-02", weekEndingDate, time.UTC)
	weekRange := weekEndingDate
	if err == nil {
		start, _, _ := WeekWindow(weekEndingDate)
		weekRange = start.Format(reportDateLayout) + " - " + end.Format(reportDateLayout)
	}

	b.WriteString(reportSeparator + "\n")
	b.WriteString("WEEKLY CUSTOMER REPORT\n")
	b.WriteString("Week of " + weekRange + "\n")
	b.WriteString(reportSeparator + "\n\n")

	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n" + reportSeparator + "\n\n")
		}

		fmt.Fprintf(&b, "CUSTOMER: %s\n", e.Customer.Name)
		b.WriteString(reportThinSeparator + "\n\n")

		fmt.Fprintf(&b, "LTS Progress: [%s] Stage %d\n", strings.ToUpper(e.Customer.Topology), e.Customer.DumbledoreStage)
		lastPatch := "N/A"
		if e.Customer.LastPatchDate != nil {
			lastPatch = e.Customer.LastPatchDate.UTC().Format(reportDateLayout)
		}
		fmt.Fprintf(&b, "Last Patch Date: %s\n", lastPatch)
		version := "N/A"
		if e.Customer.LastPatchVersion != nil && *e.Customer.LastPatchVersion != "" {
			version = *e.Customer.LastPatchVersion
		}
		fmt.Fprintf(&b, "Last Patch Version: %s\n", version)
		fmt.Fprintf(&b, "Temperament: %s\n", capitalize(e.Customer.Temperament))
		b.WriteString("\n")

		if e.ExecutiveSummary != "" {
			b.WriteString("EXECUTIVE SUMMARY:\n")
			b.WriteString(reportThinSeparator + "\n")
			b.WriteString(cleanExecutiveSummary(e.ExecutiveSummary) + "\n\n")
		}

		if len(e.Notes) > 0 {
			fmt.Fprintf(&b, "NOTES FOR THIS WEEK (%d):\n", len(e.Notes))
			b.WriteString(reportThinSeparator + "\n\n")
			for j, n := range e.Notes {
				if j > 0 {
					b.WriteString("\n")
				}
				fmt.Fprintf(&b, "[%s]\n", n.CreatedAt.UTC().Format(reportDateTimeLayout))
				b.WriteString(htmltext.Strip(n.Note) + "\n")
			}
		} else {
			b.WriteString("NOTES FOR THIS WEEK:\n")
			b.WriteString(reportThinSeparator + "\n")
			b.WriteString("No notes recorded for this week\n")
		}
	}

	b.WriteString("\n" + reportSeparator + "\n")
	b.WriteString("End of Report\n")
	b.WriteString(reportSeparator + "\n")

	return b.String()
}
