// Command d2a evaluates hero association rules over historical Dota 2
// matches, collects new matches from a live feed, and trains or applies the
// draft win predictor.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/baiwei2018/dota2-analysis/internal/collect"
	"github.com/baiwei2018/dota2-analysis/internal/csvload"
	"github.com/baiwei2018/dota2-analysis/internal/draft"
	"github.com/baiwei2018/dota2-analysis/internal/predict"
	"github.com/baiwei2018/dota2-analysis/internal/rule"
	"github.com/baiwei2018/dota2-analysis/internal/store"
)

func main() {
	viper.SetConfigName("d2a")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalln("error:", err)
	}
	if len(os.Args) < 2 {
		usage()
	}
	var err error
	switch os.Args[1] {
	case "eval":
		err = runEval(os.Args[2:])
	case "collect":
		err = runCollect()
	case "train":
		err = runTrain(os.Args[2:])
	case "predict":
		err = runPredict(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		log.Fatalln("error:", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: d2a {eval|collect|train|predict} [flags]")
	os.Exit(2)
}

func heroList(s string) []string {
	var heroes []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			heroes = append(heroes, h)
		}
	}
	return heroes
}

func runEval(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	lhs := fs.String("lhs", "", "comma-separated lhs heroes")
	rhs := fs.String("rhs", "", "comma-separated rhs heroes")
	kindName := fs.String("kind", "allies", "rule kind: allies or enemies")
	winFile := fs.String("win", "", "win-side CSV (default: load from Postgres)")
	loseFile := fs.String("lose", "", "lose-side CSV")
	matchFile := fs.String("matches", "", "match CSV")
	fs.Parse(args)

	var kind rule.Kind
	switch *kindName {
	case "allies":
		kind = rule.Allies
	case "enemies":
		kind = rule.Enemies
	}
	r, err := rule.New(draft.NewHeroSet(heroList(*lhs)...), draft.NewHeroSet(heroList(*rhs)...), kind)
	if err != nil {
		return err
	}
	win, lose, matches, err := loadTables(*winFile, *loseFile, *matchFile)
	if err != nil {
		return err
	}
	if err := r.ComputeMetrics(win, lose, matches); err != nil {
		return err
	}
	fmt.Printf("rule: %s => %s (%s)\n", r.LHS(), r.RHS(), r.Kind())
	switch m := r.Metrics().(type) {
	case rule.AlliesMetrics:
		fmt.Printf("allies support: %s\n", m.Support)
		fmt.Printf("allies win rate: %s\n", m.WinRate)
	case rule.EnemiesMetrics:
		fmt.Printf("enemies confidence: %s\n", m.Confidence)
		fmt.Printf("counter coefficient: %s\n", m.Counter)
	}
	return nil
}

func loadTables(winFile, loseFile, matchFile string) (win, lose *draft.SideTable, matches *draft.MatchTable, err error) {
	if winFile == "" && loseFile == "" && matchFile == "" {
		db, err := store.Connect()
		if err != nil {
			return nil, nil, nil, err
		}
		defer db.Close()
		if win, err = db.WinSides(); err != nil {
			return nil, nil, nil, err
		}
		if lose, err = db.LoseSides(); err != nil {
			return nil, nil, nil, err
		}
		if matches, err = db.Matches(); err != nil {
			return nil, nil, nil, err
		}
		return win, lose, matches, nil
	}
	if win, err = readSides(winFile); err != nil {
		return nil, nil, nil, err
	}
	if lose, err = readSides(loseFile); err != nil {
		return nil, nil, nil, err
	}
	if matches, err = readMatches(matchFile); err != nil {
		return nil, nil, nil, err
	}
	return win, lose, matches, nil
}

func readSides(filename string) (*draft.SideTable, error) {
	if filename == "" {
		return draft.NewSideTable(nil), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return csvload.Sides(f)
}

func readMatches(filename string) (*draft.MatchTable, error) {
	if filename == "" {
		return draft.NewMatchTable(nil), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return csvload.Matches(f)
}

func runCollect() error {
	db, err := store.Connect()
	if err != nil {
		return err
	}
	c := &collect.Collector{
		URL:  viper.GetString("feed.url"),
		Sink: db,
	}
	if id := viper.GetString("feed.client_id"); id != "" {
		conf := &clientcredentials.Config{
			ClientID:     id,
			ClientSecret: viper.GetString("feed.client_secret"),
			TokenURL:     viper.GetString("feed.token_url"),
		}
		c.Token = conf.TokenSource(context.Background())
	}
	return c.Run()
}

func loadModel() (*predict.Model, error) {
	db, err := store.Connect()
	if err != nil {
		return nil, err
	}
	defer db.Close()
	win, err := db.WinSides()
	if err != nil {
		return nil, err
	}
	lose, err := db.LoseSides()
	if err != nil {
		return nil, err
	}
	matches, err := db.Matches()
	if err != nil {
		return nil, err
	}
	return predict.New(win, lose, matches), nil
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	modelFile := fs.String("model", "draftpred.dat", "model file")
	fs.Parse(args)
	m, err := loadModel()
	if err != nil {
		return err
	}
	return m.MakePredictor(*modelFile)
}

func runPredict(args []string) error {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	modelFile := fs.String("model", "draftpred.dat", "model file")
	radiant := fs.String("radiant", "", "comma-separated radiant heroes")
	dire := fs.String("dire", "", "comma-separated dire heroes")
	fs.Parse(args)
	rlist, dlist := heroList(*radiant), heroList(*dire)
	if len(rlist) != draft.SideSize || len(dlist) != draft.SideSize {
		return fmt.Errorf("need %d heroes per side", draft.SideSize)
	}
	m, err := loadModel()
	if err != nil {
		return err
	}
	if err := m.MakePredictor(*modelFile); err != nil {
		return err
	}
	var r, d [draft.SideSize]string
	copy(r[:], rlist)
	copy(d[:], dlist)
	rwin, dwin := m.Predict(r, d)
	fmt.Printf("radiant: %.3f  dire: %.3f\n", rwin, dwin)
	return nil
}
