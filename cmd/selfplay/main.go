// Command selfplay runs engine-vs-engine matches, alpha-beta against
// MCTS with colors alternating each game, and streams one record per
// game into a parquet file for offline study.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
	"golang.org/x/sync/errgroup"

	"janggi/internal/engine"
	"janggi/internal/janggi"
	"janggi/internal/mcts"
	"janggi/internal/notation"
)

type MoveEval struct {
	Ply        int32  `parquet:"name=ply, type=INT32"`
	Move       string `parquet:"name=move, type=BYTE_ARRAY, convertedtype=UTF8"`
	ScoreType  string `parquet:"name=score_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	ScoreValue int32  `parquet:"name=score_value, type=INT32"`
}

type GameRecord struct {
	GameID    string     `parquet:"name=game_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	RedName   string     `parquet:"name=red_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	BlueName  string     `parquet:"name=blue_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Winner    string     `parquet:"name=winner, type=BYTE_ARRAY, convertedtype=UTF8"`
	Reason    string     `parquet:"name=reason, type=BYTE_ARRAY, convertedtype=UTF8"`
	Plies     int32      `parquet:"name=plies, type=INT32"`
	MoveEvals []MoveEval `parquet:"name=move_evals, type=LIST"`
}

// mover is one seat at the board. Pick returns a null move (From==To)
// when the position offers nothing.
type mover interface {
	Name() string
	Pick(pos *janggi.Position) (janggi.Move, MoveEval, int64)
}

type abPlayer struct {
	name string
	eng  *engine.Engine
	cfg  engine.SearchConfig
}

func (p *abPlayer) Name() string { return p.name }

func (p *abPlayer) Pick(pos *janggi.Position) (janggi.Move, MoveEval, int64) {
	res := p.eng.Search(pos, p.cfg)
	ev := MoveEval{ScoreType: "cp", ScoreValue: int32(res.Score)}
	return res.BestMove, ev, res.Nodes
}

type mctsPlayer struct {
	name string
	s    *mcts.Searcher
}

func (p *mctsPlayer) Name() string { return p.name }

func (p *mctsPlayer) Pick(pos *janggi.Position) (janggi.Move, MoveEval, int64) {
	res := p.s.Search(pos)
	ev := MoveEval{ScoreType: "winprob_milli", ScoreValue: int32(res.WinProb * 1000)}
	return res.BestMove, ev, res.Sims
}

func main() {
	games := flag.Int("games", 10, "number of games to play")
	depth := flag.Int("depth", 3, "alpha-beta search depth")
	mctsSims := flag.Int("mcts-sims", 400, "MCTS simulations per move")
	workers := flag.Int("workers", runtime.NumCPU(), "games played in parallel")
	output := flag.String("output", "selfplay.parquet", "output parquet file")
	maxPlies := flag.Int("max-plies", 400, "abort a game after this many plies")
	seed := flag.Int64("seed", 0, "MCTS seed base; 0 seeds from the clock")
	flag.Parse()
	if *workers < 1 {
		*workers = 1
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	abName := fmt.Sprintf("alpha-beta d%d", *depth)
	mctsName := fmt.Sprintf("mcts %d sims", *mctsSims)

	// Buffered for every game so producers never block if the writer
	// stops early on an error.
	records := make(chan GameRecord, *games)
	writeErr := make(chan error, 1)
	var writeWg sync.WaitGroup
	writeWg.Add(1)
	go func() {
		defer writeWg.Done()
		writeErr <- writeParquet(*output, records, int64(*workers))
	}()

	var (
		mu        sync.Mutex
		abWins    int
		mctsWins  int
		undecided int
		plies     int64
		nodes     int64
	)

	start := time.Now()
	var eg errgroup.Group
	eg.SetLimit(*workers)
	for g := 0; g < *games; g++ {
		g := g
		eg.Go(func() error {
			// Each game gets private searchers; the alpha-beta engine
			// is not safe to share and the inner search stays single
			// threaded because games already run in parallel.
			ab := &abPlayer{
				name: abName,
				eng:  engine.NewEngine(),
				cfg: engine.SearchConfig{
					Depth:          *depth,
					NumWorkers:     1,
					UseTT:          true,
					RandomizeEqual: true,
				},
			}
			gameSeed := *seed
			if gameSeed != 0 {
				gameSeed += int64(g)
			}
			mc := &mctsPlayer{
				name: mctsName,
				s: mcts.NewSearcher(mcts.Params{
					Simulations: *mctsSims,
					RootNoise:   0.25,
					Seed:        gameSeed,
				}),
			}

			var red, blue mover = ab, mc
			if g%2 == 1 {
				red, blue = mc, ab
			}

			rec, n, err := playGame(uuid.NewString(), red, blue, *maxPlies)
			if err != nil {
				return fmt.Errorf("game %d: %w", g+1, err)
			}

			mu.Lock()
			switch rec.Winner {
			case ab.name:
				abWins++
			case mc.name:
				mctsWins++
			default:
				undecided++
			}
			plies += int64(rec.Plies)
			nodes += n
			mu.Unlock()

			log.Info().
				Int("game", g+1).
				Str("red", rec.RedName).
				Str("blue", rec.BlueName).
				Str("winner", rec.Winner).
				Str("reason", rec.Reason).
				Int32("plies", rec.Plies).
				Msg("game finished")

			records <- rec
			return nil
		})
	}

	err := eg.Wait()
	close(records)
	writeWg.Wait()
	if err != nil {
		log.Fatal().Err(err).Msg("selfplay aborted")
	}
	if werr := <-writeErr; werr != nil {
		log.Fatal().Err(werr).Str("output", *output).Msg("write parquet")
	}

	elapsed := time.Since(start)
	fmt.Printf("\n=== %d games in %s ===\n", *games, elapsed.Round(time.Millisecond))
	fmt.Printf("%-20s %d\n", abName, abWins)
	fmt.Printf("%-20s %d\n", mctsName, mctsWins)
	fmt.Printf("%-20s %d\n", "undecided", undecided)
	if *games > 0 {
		fmt.Printf("avg plies: %.1f\n", float64(plies)/float64(*games))
	}
	if secs := elapsed.Seconds(); secs > 0 {
		fmt.Printf("nodes/sec: %.0f\n", float64(nodes)/secs)
	}
	fmt.Printf("records: %s\n", *output)
}

// playGame runs one full game. The winner field carries the player
// name, not the color, so tallies survive the color swap.
func playGame(id string, red, blue mover, maxPlies int) (GameRecord, int64, error) {
	g := janggi.NewGame()
	rec := GameRecord{
		GameID:    id,
		RedName:   red.Name(),
		BlueName:  blue.Name(),
		MoveEvals: make([]MoveEval, 0, 64),
	}
	var nodes int64

	for g.Status != janggi.StatusCheckmate && int(rec.Plies) < maxPlies {
		p := blue
		if g.SideToMove() == janggi.Red {
			p = red
		}

		mv, ev, n := p.Pick(g.Pos)
		nodes += n
		if mv.From == mv.To {
			// Not mate (the loop would have ended), so the side to
			// move is stuck without being in check. Nobody wins.
			rec.Winner = "none"
			rec.Reason = "no_moves"
			return rec, nodes, nil
		}
		if err := g.ProposeMove(mv); err != nil {
			return rec, nodes, fmt.Errorf("%s proposed %s: %w", p.Name(), notation.FormatMove(mv), err)
		}

		rec.Plies++
		ev.Ply = rec.Plies
		ev.Move = notation.FormatMove(mv)
		rec.MoveEvals = append(rec.MoveEvals, ev)
	}

	if g.Status == janggi.StatusCheckmate {
		if g.Winner == janggi.Red {
			rec.Winner = red.Name()
		} else {
			rec.Winner = blue.Name()
		}
		rec.Reason = "checkmate"
	} else {
		rec.Winner = "none"
		rec.Reason = "move_cap"
	}
	return rec, nodes, nil
}

func writeParquet(path string, records <-chan GameRecord, parallel int64) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(GameRecord), parallel)
	if err != nil {
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for rec := range records {
		if err := pw.Write(rec); err != nil {
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		return err
	}
	return fw.Close()
}
