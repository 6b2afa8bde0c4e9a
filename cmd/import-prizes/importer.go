package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/utils"
)

var prizeIDPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// rowError is a CSV row that could not be imported
type rowError struct {
	Line int
	Err  error
}

// columns maps prize fields to CSV positions. imageRef is -1 when absent.
type columns struct {
	id, name, weight, stock, imageRef int
}

var positional = columns{id: 0, name: 1, weight: 2, stock: 3, imageRef: 4}

// headerColumns resolves the columns named in a header row, in any order
func headerColumns(header []string) (columns, bool) {
	cols := columns{
		id:       utils.FindColumnIndex(header, "id", "prizeId"),
		name:     utils.FindColumnIndex(header, "name", "nombre"),
		weight:   utils.FindColumnIndex(header, "weight", "peso"),
		stock:    utils.FindColumnIndex(header, "stock"),
		imageRef: utils.FindColumnIndex(header, "imageRef", "image", "imagen"),
	}
	if cols.id < 0 || cols.name < 0 || cols.weight < 0 || cols.stock < 0 {
		return columns{}, false
	}
	return cols, true
}

// parsePrizes reads id,name,weight,stock[,imageRef] rows. A header row may name
// the columns in another order.
func parsePrizes(r io.Reader, now time.Time) ([]*models.Prize, []rowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	var (
		prizes  []*models.Prize
		skipped []rowError
		seen    = map[string]int{}
	)
	cols := positional
	for i, record := range records {
		line := i + 1
		if i == 0 {
			if header, ok := headerColumns(record); ok {
				cols = header
				continue
			}
		}

		prize, err := parseRow(record, cols, now)
		if err != nil {
			skipped = append(skipped, rowError{Line: line, Err: err})
			continue
		}
		if first, dup := seen[prize.ID]; dup {
			skipped = append(skipped, rowError{Line: line, Err: fmt.Errorf("prize %q already defined on line %d", prize.ID, first)})
			continue
		}
		seen[prize.ID] = line
		prizes = append(prizes, prize)
	}

	if len(prizes) == 0 {
		return nil, skipped, errors.New("no valid prize rows")
	}
	return prizes, skipped, nil
}

func parseRow(record []string, cols columns, now time.Time) (*models.Prize, error) {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	if len(record) < 4 {
		return nil, fmt.Errorf("expected at least 4 fields, got %d", len(record))
	}

	id := strings.ToLower(field(cols.id))
	if !prizeIDPattern.MatchString(id) {
		return nil, fmt.Errorf("invalid prize id %q", field(cols.id))
	}
	name := field(cols.name)
	if name == "" {
		return nil, errors.New("name is empty")
	}
	weight, err := strconv.Atoi(field(cols.weight))
	if err != nil || weight <= 0 {
		return nil, fmt.Errorf("weight must be a positive integer, got %q", field(cols.weight))
	}
	stock, err := strconv.Atoi(field(cols.stock))
	if err != nil || stock < 0 {
		return nil, fmt.Errorf("stock must be a non-negative integer, got %q", field(cols.stock))
	}

	prize := &models.Prize{
		ID:        id,
		Name:      name,
		Weight:    weight,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	prize.ImageRef = field(cols.imageRef)
	return prize, nil
}
