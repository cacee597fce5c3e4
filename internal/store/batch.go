package store

import (
	"context"
	"log"
	"time"

	"github.com/baiwei2018/dota2-analysis/internal/draft"
)

// RecordMatch queues a finished match for insertion. It never blocks; if
// the queue is full the record is dropped and the next table reload simply
// won't include it.
func (db *DB) RecordMatch(rec draft.MatchRecord) {
	select {
	case db.matches <- rec:
	default:
	}
}

func (db *DB) matchUpdater() {
	var pending []draft.MatchRecord
	t := time.NewTimer(0)
	for {
		select {
		case <-t.C:
			if len(pending) == 0 {
				t.Reset(time.Hour)
				continue
			}
			if err := db.sendBatch(pending); err != nil {
				log.Printf("error: inserting matches: %s", err)
			}
			pending = pending[:0]
		case rec := <-db.matches:
			pending = append(pending, rec)
			if len(pending) > 250 {
				if err := db.sendBatch(pending); err != nil {
					log.Printf("error: inserting matches: %s", err)
				}
				pending = pending[:0]
				t.Reset(time.Hour)
			} else {
				t.Reset(time.Second)
			}
		}
	}
}

func (db *DB) sendBatch(pending []draft.MatchRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	start := time.Now()
	b := db.BeginBatch()
	for _, rec := range pending {
		if err := rec.Validate(); err != nil {
			log.Printf("dropping match record: %s", err)
			continue
		}
		args := make([]interface{}, 0, 1+draft.RosterSize)
		args = append(args, int(rec.Winner))
		for _, h := range rec.Radiant {
			args = append(args, h)
		}
		for _, h := range rec.Dire {
			args = append(args, h)
		}
		b.Queue(stmtMatch, args, nil, nil)
	}
	if err := b.Send(ctx, nil); err != nil {
		b.Close()
		return err
	}
	if err := b.Close(); err != nil {
		return err
	}
	if d := time.Since(start); d > 100*time.Millisecond {
		log.Printf("warning: inserting matches took %s", d)
	}
	return nil
}
