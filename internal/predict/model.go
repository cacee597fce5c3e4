package predict

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"runtime"
	"sync"

	deep "github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"

	"github.com/baiwei2018/dota2-analysis/internal/draft"
	"github.com/baiwei2018/dota2-analysis/internal/rule"
)

const trainGens = 1500

// Model predicts the winning side of a proposed matchup from rule-metric
// feature vectors.
type Model struct {
	feats *Features
	ppool sync.Pool
}

func New(win, lose rule.SideTable, matches rule.MatchTable) *Model {
	return &Model{feats: NewFeatures(win, lose, matches)}
}

// MakePredictor loads a previously trained net from filename, or trains one
// on the match table and saves it there.
func (m *Model) MakePredictor(filename string) error {
	blob, err := ioutil.ReadFile(filename)
	if err == nil {
		dump := new(deep.Dump)
		if err := json.Unmarshal(blob, dump); err != nil {
			return err
		}
		m.setPred(dump)
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	var e training.Examples
	m.feats.matches.EachMatch(func(w draft.Winner, radiant, dire []string) {
		var r, d [draft.SideSize]string
		copy(r[:], radiant)
		copy(d[:], dire)
		response := []float64{0.0, 0.0}
		if w == draft.RadiantWin {
			response[0] = 1.0
		} else {
			response[1] = 1.0
		}
		e = append(e, training.Example{
			Input:    m.feats.Vector(r, d),
			Response: response,
		})
	})
	if len(e) == 0 {
		return fmt.Errorf("no matches to train on")
	}
	nn := deep.NewNeural(&deep.Config{
		Inputs:     vectorSize,
		Layout:     []int{5, 3, 2},
		Activation: deep.ActivationSigmoid,
		Mode:       deep.ModeMultiClass,
		Weight:     deep.NewNormal(1.0, 0.0),
		Bias:       true,
	})
	optimizer := training.NewAdam(0.001, 0.9, 0.999, 1e-8)
	trainer := training.NewBatchTrainer(optimizer, 1, 200, runtime.GOMAXPROCS(0))
	x, y := e.Split(0.75)
	trainer.Train(nn, x, y, trainGens)
	dump := nn.Dump()
	blob, err = json.Marshal(dump)
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(filename, blob, 0644); err != nil {
		return err
	}
	m.setPred(dump)
	return nil
}

func (m *Model) setPred(dump *deep.Dump) {
	// Neural objects are not goroutine-safe so use a pool instead
	m.ppool.New = func() interface{} {
		return deep.FromDump(dump)
	}
}

// Predict returns the radiant and dire win scores for a proposed matchup.
// MakePredictor must have succeeded first.
func (m *Model) Predict(radiant, dire [draft.SideSize]string) (radiantWin, direWin float64) {
	nn := m.ppool.Get().(*deep.Neural)
	o := nn.Predict(m.feats.Vector(radiant, dire))
	m.ppool.Put(nn)
	return o[0], o[1]
}
