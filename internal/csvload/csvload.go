// Package csvload reads the CSV exports of the match and side tables. The
// match file carries a winner flag plus ten hero columns; side files carry
// ten hero columns. Shape problems are load-time errors here, never inside
// the rule engine.
package csvload

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/baiwei2018/dota2-analysis/internal/draft"
)

// Matches reads a match table: header row, then
// winner,radiant_hero_1..5,dire_hero_1..5 per line.
func Matches(r io.Reader) (*draft.MatchTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 1 + draft.RosterSize
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading match header: %w", err)
	}
	if header[0] != "winner" {
		return nil, fmt.Errorf("match file must start with a winner column, got %q", header[0])
	}
	var recs []draft.MatchRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		winner, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad winner flag %q", line, row[0])
		}
		rec := draft.MatchRecord{Winner: draft.Winner(winner)}
		copy(rec.Radiant[:], row[1:1+draft.SideSize])
		copy(rec.Dire[:], row[1+draft.SideSize:])
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		recs = append(recs, rec)
	}
	return draft.NewMatchTable(recs), nil
}

// Sides reads a win-side or lose-side table: header row, then
// hero_1..hero_10 per line.
func Sides(r io.Reader) (*draft.SideTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = draft.RosterSize
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading side header: %w", err)
	}
	if header[0] != "hero_1" {
		return nil, fmt.Errorf("side file must start with hero_1, got %q", header[0])
	}
	var recs []draft.SideRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		var rec draft.SideRecord
		for i, h := range row {
			if h == "" {
				return nil, fmt.Errorf("line %d: empty hero slot %d", line, i+1)
			}
			rec[i] = h
		}
		recs = append(recs, rec)
	}
	return draft.NewSideTable(recs), nil
}
