package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/letehaha/budget-tracker-be-sub001/internal/currency"
	"github.com/letehaha/budget-tracker-be-sub001/internal/currency/ratefile"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

type pairSummary struct {
	pair   string
	count  int
	first  time.Time
	last   time.Time
	latest currency.Rate
}

func summarize(rates []currency.Rate) []pairSummary {
	byPair := map[string]*pairSummary{}

	for _, r := range rates {
		key := r.BaseCode + "/" + r.QuoteCode

		s, ok := byPair[key]
		if !ok {
			s = &pairSummary{pair: key, first: r.Date, last: r.Date, latest: r}
			byPair[key] = s
		}

		s.count++

		if r.Date.Before(s.first) {
			s.first = r.Date
		}

		if !r.Date.Before(s.last) {
			s.last = r.Date
			s.latest = r
		}
	}

	out := make([]pairSummary, 0, len(byPair))
	for _, s := range byPair {
		out = append(out, *s)
	}

	slices.SortFunc(out, func(a, b pairSummary) int { return cmp.Compare(a.pair, b.pair) })

	return out
}

func renderReport(source string, res *ratefile.Result, dryRun bool) string {
	rows := summarize(res.Rates)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("PAIR", "ROWS", "FROM", "TO", "LATEST").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	for _, s := range rows {
		t.Row(
			s.pair,
			fmt.Sprint(s.count),
			s.first.Format(time.DateOnly),
			s.last.Format(time.DateOnly),
			s.latest.Rate.String(),
		)
	}

	verb := "imported"
	if dryRun {
		verb = "parsed (dry run)"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%d rates %s from %s", len(res.Rates), verb, source)))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(fmt.Sprintf("charset %s, %d rows skipped", res.Charset, res.Skipped)))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")

	return b.String()
}
