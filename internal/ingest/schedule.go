package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pviana/matchview-api/internal/domain/matches"
)

// Schedule exports carry their columns in this fixed order:
// week, day, date, time, home team, home xG, score, away xG, away team,
// attendance, venue, referee.
const (
	colWeek = iota
	colDay
	colDate
	colTime
	colHome
	colXGHome
	colScore
	colXGAway
	colAway
	colAttendance
	colVenue
	colReferee
	columnCount
)

const dateLayout = "2006-01-02"

// ErrEmptyDataset is returned when an upload contains no usable rows.
var ErrEmptyDataset = errors.New("schedule contains no usable rows")

type Result struct {
	Rows    []matches.MatchRecord
	Skipped int
}

// ParseSchedule reads a season schedule file. A leading header row is
// detected by its non-numeric week cell and dropped. Rows without a usable
// week number, date, home team or away team are skipped and counted;
// malformed score and xG cells are kept with zero fallbacks, since a single
// bad cell should degrade that row rather than fail the upload.
func ParseSchedule(r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("read schedule: %w", err)
	}

	var out Result
	for i, record := range records {
		row, ok := parseRow(record)
		if !ok {
			// The header row is not a data defect.
			if i > 0 || !looksLikeHeader(record) {
				out.Skipped++
			}
			continue
		}
		out.Rows = append(out.Rows, row)
	}

	if len(out.Rows) == 0 {
		return Result{}, ErrEmptyDataset
	}
	return out, nil
}

func parseRow(record []string) (matches.MatchRecord, bool) {
	if len(record) < columnCount {
		return matches.MatchRecord{}, false
	}

	week, err := strconv.Atoi(strings.TrimSpace(record[colWeek]))
	if err != nil || week <= 0 {
		return matches.MatchRecord{}, false
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(record[colDate]))
	if err != nil {
		return matches.MatchRecord{}, false
	}
	home := strings.TrimSpace(record[colHome])
	away := strings.TrimSpace(record[colAway])
	if home == "" || away == "" {
		return matches.MatchRecord{}, false
	}

	return matches.MatchRecord{
		Week:        week,
		Day:         strings.TrimSpace(record[colDay]),
		Date:        date,
		KickoffTime: strings.TrimSpace(record[colTime]),
		HomeTeam:    home,
		AwayTeam:    away,
		XGHome:      parseXg(record[colXGHome]),
		XGAway:      parseXg(record[colXGAway]),
		Score:       strings.TrimSpace(record[colScore]),
		Attendance:  strings.TrimSpace(record[colAttendance]),
		Venue:       strings.TrimSpace(record[colVenue]),
		Referee:     strings.TrimSpace(record[colReferee]),
	}, true
}

func parseXg(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func looksLikeHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(record[colWeek]))
	return err != nil
}
