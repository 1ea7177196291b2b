// Package ingest parses the admin-maintained store-list spreadsheet into
// directory rows. The expected layout is one header row followed by one
// store per row:
//
//	PlaceID | Name | City | Latitude | Longitude | ImageURL | Rating |
//	Sun | Mon | Tue | Wed | Thu | Fri | Sat
//
// Day cells hold "09:00-18:00", split hours "09:00-13:00,14:00-18:00",
// overnight hours "22:00-02:00", or nothing for a closed day.
package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/marosa/locator-service/internal/database"
	"github.com/marosa/locator-service/internal/hours"
	"github.com/marosa/locator-service/internal/pkg/cuid2"
)

// column indexes in the sheet. The seven day columns follow dayColumnStart
// in Sunday-first order so their offset doubles as hours.Period.OpenDay.
const (
	colPlaceID = iota
	colName
	colCity
	colLatitude
	colLongitude
	colImageURL
	colRating

	dayColumnStart = iota
	columnCount    = dayColumnStart + 7
)

// RowError describes a spreadsheet row that could not be parsed. The row
// number is 1-based as shown in spreadsheet software.
type RowError struct {
	Row     int
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// Result holds the parsed store rows plus per-row errors. A bad row never
// aborts the import; it is reported and skipped.
type Result struct {
	Records []database.StoreRecord
	Errors  []RowError
}

// ParseStoreList reads the spreadsheet from r and returns directory rows.
// Rows lacking a PlaceID get a generated one so they stay addressable.
func ParseStoreList(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	result := &Result{}
	for i, cells := range rows {
		if i == 0 {
			continue // header
		}
		rowNum := i + 1

		if isEmptyRow(cells) {
			continue
		}

		rec, err := parseRow(cells)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: err.Error()})
			continue
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

func parseRow(cells []string) (database.StoreRecord, error) {
	var rec database.StoreRecord

	name := strings.TrimSpace(cell(cells, colName))
	if name == "" {
		return rec, fmt.Errorf("missing store name")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(cell(cells, colLatitude)), 64)
	if err != nil {
		return rec, fmt.Errorf("bad latitude %q", cell(cells, colLatitude))
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(cell(cells, colLongitude)), 64)
	if err != nil {
		return rec, fmt.Errorf("bad longitude %q", cell(cells, colLongitude))
	}

	rec.PlaceID = strings.TrimSpace(cell(cells, colPlaceID))
	if rec.PlaceID == "" {
		rec.PlaceID = cuid2.GeneratePrefixedId("pl", cuid2.PrefixedIdOptions{TimeSortable: true})
	}
	rec.Name = name
	rec.City = strings.TrimSpace(cell(cells, colCity))
	rec.Latitude = lat
	rec.Longitude = lng
	rec.ImageURL = strings.TrimSpace(cell(cells, colImageURL))

	if ratingStr := strings.TrimSpace(cell(cells, colRating)); ratingStr != "" {
		rating, err := strconv.ParseFloat(ratingStr, 64)
		if err != nil || rating < 0 || rating > 5 {
			return rec, fmt.Errorf("bad rating %q", ratingStr)
		}
		rec.Rating = &rating
	}

	schedule, err := parseWeek(cells)
	if err != nil {
		return rec, err
	}
	rec.Hours = schedule
	return rec, nil
}

// parseWeek reads the seven day columns into a schedule. A store with no
// filled day cells has no schedule at all (status degrades to unknown).
func parseWeek(cells []string) (*hours.Schedule, error) {
	var periods []hours.Period
	for day := 0; day < 7; day++ {
		raw := strings.TrimSpace(cell(cells, dayColumnStart+day))
		if raw == "" {
			continue
		}
		for _, interval := range strings.Split(raw, ",") {
			p, err := parseInterval(day, strings.TrimSpace(interval))
			if err != nil {
				return nil, err
			}
			periods = append(periods, p)
		}
	}
	if len(periods) == 0 {
		return nil, nil
	}
	return &hours.Schedule{Periods: periods}, nil
}

// parseInterval converts "09:00-18:00" on a given day into a period.
// A close clock earlier than the open clock rolls into the next day.
func parseInterval(day int, interval string) (hours.Period, error) {
	parts := strings.SplitN(interval, "-", 2)
	if len(parts) != 2 {
		return hours.Period{}, fmt.Errorf("bad hours interval %q", interval)
	}
	openTime, err := clockToHHMM(parts[0])
	if err != nil {
		return hours.Period{}, fmt.Errorf("bad hours interval %q: %v", interval, err)
	}
	closeTime, err := clockToHHMM(parts[1])
	if err != nil {
		return hours.Period{}, fmt.Errorf("bad hours interval %q: %v", interval, err)
	}

	closeDay := day
	if closeTime < openTime {
		closeDay = (day + 1) % 7
	}
	return hours.Period{
		OpenDay:   day,
		OpenTime:  openTime,
		CloseDay:  closeDay,
		CloseTime: closeTime,
	}, nil
}

// clockToHHMM converts "9:00" or "09:00" to the wire "HHMM" encoding.
func clockToHHMM(s string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("expected HH:MM, got %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return "", fmt.Errorf("bad hour %q", parts[0])
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return "", fmt.Errorf("bad minute %q", parts[1])
	}
	return fmt.Sprintf("%02d%02d", h, m), nil
}

func cell(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
