// report.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cseboard/cse-whiteboard/internal/htmltext"
	"github.com/cseboard/cse-whiteboard/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// Summarizer produces an executive summary from a prompt. A nil Summarizer
// disables summaries; the report still renders.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// ReportEntry is one customer's slice of the weekly report.
type ReportEntry struct {
	Customer         models.Customer       `json:"customer"`
	Notes            []models.CustomerNote `json:"notes"`
	ExecutiveSummary string                `json:"executiveSummary,omitempty"`
}

const noActivitySummary = "No activity recorded for this week."

const summaryUnavailable = "Executive summary unavailable."

// WeekWindow expands a week-ending date (YYYY-MM-DD) into the Monday 00:00:00
// UTC start and the end-of-day instant of the ending date itself. The ending
// date does not have to be a Sunday; the window still opens on the preceding
// (or same-day) Monday.
func WeekWindow(weekEndingDate string) (time.Time, time.Time, error) {
	end, err := time.ParseInLocation("2006-01-02", weekEndingDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	daysBack := int(end.Weekday()) - 1
	if end.Weekday() == time.Sunday {
		daysBack = 6
	}
	start := end.AddDate(0, 0, -daysBack)
	endOfDay := end.Add(24*time.Hour - time.Millisecond)
	return start, endOfDay, nil
}

// WeeklyReport assembles the per-customer report for the week ending on the
// given date. All active customers appear, with notes created inside the
// window, oldest first. When a summarizer is set, summaries are generated with
// bounded concurrency; a failed summary degrades to a placeholder and never
// fails the report.
func WeeklyReport(ctx context.Context, db *gorm.DB, userID, weekEndingDate string, summarizer Summarizer, concurrency int) ([]ReportEntry, error) {
	start, end, err := WeekWindow(weekEndingDate)
	if err != nil {
		return nil, err
	}

	customers, err := ListCustomers(db, userID, false)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return []ReportEntry{}, nil
	}

	ids := make([]uint64, len(customers))
	for i, c := range customers {
		ids[i] = c.ID
	}

	var notes []models.CustomerNote
	err = db.Clauses(hints.CommentBefore("select", "weekly report notes window")).
		Where("customer_id IN ? AND user_id = ? AND created_at BETWEEN ? AND ?", ids, userID, start, end).
		Order("created_at asc, id asc").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[uint64][]models.CustomerNote, len(customers))
	for _, n := range notes {
		byCustomer[n.CustomerID] = append(byCustomer[n.CustomerID], n)
	}

	entries := make([]ReportEntry, len(customers))
	for i, c := range customers {
		entries[i] = ReportEntry{Customer: c, Notes: byCustomer[c.ID]}
	}

	if summarizer == nil {
		return entries, nil
	}

	if concurrency < 1 {
		concurrency = 4
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range entries {
		g.Go(func() error {
			e := &entries[i]
			if len(e.Notes) == 0 {
				e.ExecutiveSummary = noActivitySummary
				return nil
			}
			text, err := summarizer.Summarize(gctx, summaryPrompt(e))
			if err != nil {
				log.Printf("weekly report: summary for customer %d failed: %v", e.Customer.ID, err)
				e.ExecutiveSummary = summaryUnavailable
				return nil
			}
			e.ExecutiveSummary = text
			return nil
		})
	}
	// Goroutines only return nil; Wait is for completion, not errors.
	_ = g.Wait()

	return entries, nil
}

func summaryPrompt(e *ReportEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a brief executive summary of this week's activity for the customer %q.\n", e.Customer.Name)
	b.WriteString("Summarize status, risks, and next steps in a few sentences of plain prose.\n")
	b.WriteString("Do not include a heading.\n\nNotes from this week:\n")
	for _, n := range e.Notes {
		fmt.Fprintf(&b, "- [%s] %s\n", n.CreatedAt.UTC().Format("Jan 2, 2006 03:04 PM"), htmltext.Strip(n.Note))
	}
	return b.String()
}
