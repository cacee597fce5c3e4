// Package collect subscribes to a live feed of finished matches over a
// websocket and hands validated records to the store.
package collect

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/oauth2"

	"github.com/baiwei2018/dota2-analysis/internal/draft"
)

const (
	minRetry      = 1
	maxRetry      = 60
	backoffFactor = 3
)

// Sink receives finished matches. *store.DB satisfies it.
type Sink interface {
	RecordMatch(rec draft.MatchRecord)
}

type Collector struct {
	URL   string
	Token oauth2.TokenSource // optional bearer auth for the feed
	Sink  Sink
}

// Run connects to the feed and re-connects forever with backoff. It only
// returns on a setup problem that retrying cannot fix.
func (c *Collector) Run() error {
	if c.URL == "" || c.Sink == nil {
		return fmt.Errorf("collector needs a feed URL and a sink")
	}
	delayRetry := minRetry
	first := true
	for {
		if !first {
			time.Sleep(time.Duration(delayRetry) * time.Second)
			delayRetry *= backoffFactor
			if delayRetry > maxRetry {
				delayRetry = maxRetry
			}
		}
		first = false
		hdr, err := c.header()
		if err != nil {
			log.Println("error:", err)
			continue
		}
		log.Printf("connecting to %s", c.URL)
		conn, _, err := websocket.DefaultDialer.Dial(c.URL, hdr)
		if err != nil {
			log.Println("error:", err)
			continue
		}
		donech := make(chan struct{})
		go keepalive(conn, donech)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				log.Println("read error:", err)
				break
			}
			delayRetry = minRetry
			rec, err := parseMatch(msg)
			if err != nil {
				log.Printf("error: bad feed payload: %s", err)
				continue
			}
			c.Sink.RecordMatch(rec)
		}
		close(donech)
		conn.Close()
	}
}

func (c *Collector) header() (http.Header, error) {
	if c.Token == nil {
		return nil, nil
	}
	t, err := c.Token.Token()
	if err != nil {
		return nil, fmt.Errorf("getting feed token: %s", err)
	}
	hdr := make(http.Header)
	t.SetAuthHeader(&http.Request{Header: hdr})
	return hdr, nil
}

func keepalive(conn *websocket.Conn, donech chan struct{}) {
	t := time.NewTicker(30 * time.Second)
	defer t.Stop()
	for {
		select {
		case <-donech:
			return
		case <-t.C:
			conn.WriteMessage(websocket.PingMessage, nil)
		}
	}
}

type matchPayload struct {
	Winner  int      `json:"winner"`
	Radiant []string `json:"radiant"`
	Dire    []string `json:"dire"`
}

func parseMatch(msg []byte) (draft.MatchRecord, error) {
	var p matchPayload
	if err := json.Unmarshal(msg, &p); err != nil {
		return draft.MatchRecord{}, err
	}
	if len(p.Radiant) != draft.SideSize || len(p.Dire) != draft.SideSize {
		return draft.MatchRecord{}, fmt.Errorf("want %d heroes per side, got %d/%d", draft.SideSize, len(p.Radiant), len(p.Dire))
	}
	rec := draft.MatchRecord{Winner: draft.Winner(p.Winner)}
	copy(rec.Radiant[:], p.Radiant)
	copy(rec.Dire[:], p.Dire)
	if err := rec.Validate(); err != nil {
		return draft.MatchRecord{}, err
	}
	return rec, nil
}
