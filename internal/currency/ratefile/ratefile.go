// Package ratefile reads daily exchange-rate exports into currency.Rate
// values for the global daily-rate table.
//
// A file is a delimited table with a header naming the columns date, base,
// quote and rate, in any order and case. The delimiter is ';' or ','.
// Dates are YYYY-MM-DD or DD-MM-YYYY. Rates accept both "0.9123" and the
// European "0,9123" or "1.234,5" forms.
package ratefile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/letehaha/budget-tracker-be-sub001/internal/currency"
)

var ErrNoHeader = errors.New("no header with date, base, quote and rate columns")

type Result struct {
	Rates   []currency.Rate
	Charset string
	// Skipped counts rows without a date, such as blank lines and footers.
	Skipped int
}

var columns = []string{"date", "base", "quote", "rate"}

func Parse(r io.Reader) (*Result, error) {
	decoded, charset, err := decodeUTF8(r)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(decoded)

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return nil, ErrNoHeader
	}

	res := &Result{Charset: charset}

	for i, row := range rows[headerIdx+1:] {
		line := headerIdx + i + 2

		if cell(row, cols["date"]) == "" {
			res.Skipped++
			continue
		}

		rate, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		res.Rates = append(res.Rates, rate)
	}

	return res, nil
}

// sniffDelimiter picks ';' unless the first line only contains commas.
func sniffDelimiter(br *bufio.Reader) rune {
	head, _ := br.Peek(512)

	first, _, _ := strings.Cut(string(head), "\n")
	if !strings.Contains(first, ";") && strings.Contains(first, ",") {
		return ','
	}

	return ';'
}

func findHeader(rows [][]string) (map[string]int, int, bool) {
	for idx, row := range rows {
		cols := make(map[string]int, len(row))
		for i, name := range row {
			cols[strings.ToLower(strings.TrimSpace(name))] = i
		}

		found := true

		for _, name := range columns {
			if _, ok := cols[name]; !ok {
				found = false
				break
			}
		}

		if found {
			return cols, idx, true
		}
	}

	return nil, 0, false
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func parseRow(row []string, cols map[string]int) (currency.Rate, error) {
	date, err := parseDate(cell(row, cols["date"]))
	if err != nil {
		return currency.Rate{}, err
	}

	base, ok := currency.NormalizeCode(cell(row, cols["base"]))
	if !ok {
		return currency.Rate{}, fmt.Errorf("unknown base currency %q", cell(row, cols["base"]))
	}

	quote, ok := currency.NormalizeCode(cell(row, cols["quote"]))
	if !ok {
		return currency.Rate{}, fmt.Errorf("unknown quote currency %q", cell(row, cols["quote"]))
	}

	if base == quote {
		return currency.Rate{}, fmt.Errorf("rate of %s against itself", base)
	}

	rate, err := parseDecimal(cell(row, cols["rate"]))
	if err != nil {
		return currency.Rate{}, fmt.Errorf("invalid rate %q: %w", cell(row, cols["rate"]), err)
	}

	if !rate.IsPositive() {
		return currency.Rate{}, fmt.Errorf("rate %s must be positive", rate)
	}

	return currency.Rate{BaseCode: base, QuoteCode: quote, Date: date, Rate: rate}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, "02-01-2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// parseDecimal treats a comma as the decimal separator when present, so
// "1.234,5" is 1234.5 while "1234.5" is read as is.
func parseDecimal(s string) (decimal.Decimal, error) {
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	return decimal.NewFromString(s)
}
