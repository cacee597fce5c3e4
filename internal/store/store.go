// Package store loads and records the Postgres tables behind the analysis:
// the full match table plus the win/lose side tables the ingest pipeline
// keeps pre-split by outcome.
package store

import (
	"log"

	"github.com/jackc/pgx"
	"github.com/spf13/viper"

	"github.com/baiwei2018/dota2-analysis/internal/draft"
)

const stmtMatch = "insert_match"

type DB struct {
	*pgx.ConnPool
	matches chan draft.MatchRecord
}

func Connect() (*DB, error) {
	cfg, err := pgx.ParseConnectionString(viper.GetString("db.url"))
	if err != nil {
		return nil, err
	}
	pool, err := pgx.NewConnPool(pgx.ConnPoolConfig{
		ConnConfig: cfg,
		AfterConnect: func(conn *pgx.Conn) error {
			_, err := conn.Prepare(stmtMatch, "INSERT INTO matches (winner, radiant_hero_1, radiant_hero_2, radiant_hero_3, radiant_hero_4, radiant_hero_5, dire_hero_1, dire_hero_2, dire_hero_3, dire_hero_4, dire_hero_5) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)")
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	d := &DB{
		ConnPool: pool,
		matches:  make(chan draft.MatchRecord, 1000),
	}
	go d.matchUpdater()
	return d, nil
}

// Matches loads the full match table. Rows that fail validation are skipped
// with a log line rather than poisoning the table.
func (db *DB) Matches() (*draft.MatchTable, error) {
	rows, err := db.Query("SELECT winner, radiant_hero_1, radiant_hero_2, radiant_hero_3, radiant_hero_4, radiant_hero_5, dire_hero_1, dire_hero_2, dire_hero_3, dire_hero_4, dire_hero_5 FROM matches ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var recs []draft.MatchRecord
	for rows.Next() {
		var rec draft.MatchRecord
		var winner int
		args := make([]interface{}, 0, 1+draft.RosterSize)
		args = append(args, &winner)
		for i := range rec.Radiant {
			args = append(args, &rec.Radiant[i])
		}
		for i := range rec.Dire {
			args = append(args, &rec.Dire[i])
		}
		if err := rows.Scan(args...); err != nil {
			return nil, err
		}
		rec.Winner = draft.Winner(winner)
		if err := rec.Validate(); err != nil {
			log.Printf("skipping match row: %s", err)
			continue
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return draft.NewMatchTable(recs), nil
}

// WinSides loads the winning-side roster table.
func (db *DB) WinSides() (*draft.SideTable, error) {
	return db.sides("win_sides")
}

// LoseSides loads the losing-side roster table.
func (db *DB) LoseSides() (*draft.SideTable, error) {
	return db.sides("lose_sides")
}

func (db *DB) sides(table string) (*draft.SideTable, error) {
	rows, err := db.Query("SELECT hero_1, hero_2, hero_3, hero_4, hero_5, hero_6, hero_7, hero_8, hero_9, hero_10 FROM " + table + " ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var recs []draft.SideRecord
	for rows.Next() {
		var rec draft.SideRecord
		args := make([]interface{}, draft.RosterSize)
		for i := range rec {
			args[i] = &rec[i]
		}
		if err := rows.Scan(args...); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return draft.NewSideTable(recs), nil
}
