// Command janggi-cli plays a game in the terminal: draw the board,
// prompt for a move, repeat. The engine sits in as an opponent on
// request.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"janggi/internal/engine"
	"janggi/internal/janggi"
	"janggi/internal/notation"
)

func main() {
	fmt.Println("janggi - type 'help' for commands")
	g := janggi.NewGame()
	eng := engine.NewEngine()
	sc := bufio.NewScanner(os.Stdin)

	printBoard(g)
	for {
		fmt.Printf("%s move> ", g.SideToMove())
		if !sc.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch strings.ToLower(fields[0]) {
		case "quit", "exit":
			return
		case "help":
			printHelp()
		case "board":
			printBoard(g)
		case "fen":
			fmt.Println(g.Pos.Encode())
		case "load":
			if len(fields) < 2 {
				fmt.Println("usage: load <position text>")
				continue
			}
			pos, err := janggi.DecodePosition(strings.Join(fields[1:], " "))
			if err != nil {
				fmt.Println("cannot read that position:", err)
				continue
			}
			if !pos.GeneralExists(janggi.Red) || !pos.GeneralExists(janggi.Blue) {
				fmt.Println("that position is missing a general")
				continue
			}
			g = janggi.NewGameFromPosition(pos)
			printBoard(g)
			announce(g)
		case "new":
			g = janggi.NewGame()
			printBoard(g)
		case "moves":
			listMoves(g, fields)
		case "pieces":
			listPieces(g)
		case "engine":
			engineMove(g, eng, fields)
		default:
			mv, err := notation.ParseMove(line)
			if err != nil {
				fmt.Println("did not understand; 'help' lists the commands")
				continue
			}
			captured := g.Pos.Board.Squares[mv.To]
			if err := g.ProposeMove(mv); err != nil {
				fmt.Println(notation.Describe(err))
				continue
			}
			if captured != 0 {
				fmt.Printf("you take the %s.\n", notation.PieceName(captured))
			}
			printBoard(g)
			announce(g)
		}
	}
}

func printBoard(g *janggi.Game) {
	fmt.Print(notation.Render(g.Snapshot()))
}

// announce reports check and mate for the side now to move.
func announce(g *janggi.Game) {
	switch g.Status {
	case janggi.StatusCheck:
		fmt.Printf("%s is in check.\n", g.SideToMove())
	case janggi.StatusCheckmate:
		winner := "Blue"
		if g.Winner == janggi.Red {
			winner = "Red"
		}
		fmt.Printf("Checkmate. %s wins.\n", winner)
	}
}

func listMoves(g *janggi.Game, fields []string) {
	var moves []janggi.Move
	if len(fields) > 1 {
		file, rank, err := notation.ParseSquare(fields[1])
		if err != nil {
			fmt.Println("bad square:", fields[1])
			return
		}
		moves = g.Pos.LegalMovesFrom(janggi.IndexOf(file, rank))
	} else {
		moves = g.Pos.LegalMoves()
	}
	if len(moves) == 0 {
		fmt.Println("no legal moves")
		return
	}
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = notation.FormatMove(m)
	}
	fmt.Println(strings.Join(parts, " "))
}

// listPieces prints each side's pieces with their display tags, so a
// player can tell H1 from H2 when reading the board.
func listPieces(g *janggi.Game) {
	board := g.Snapshot()
	labels := notation.Labels(board)
	var red, blue []string
	for sq := 0; sq < janggi.NumSquares; sq++ {
		pc := board[sq]
		if pc == 0 {
			continue
		}
		entry := labels[sq] + " " + notation.FormatSquare(janggi.FileOf(sq), janggi.RankOf(sq))
		if pc.Side() == janggi.Red {
			red = append(red, entry)
		} else {
			blue = append(blue, entry)
		}
	}
	fmt.Println("red:  " + strings.Join(red, "  "))
	fmt.Println("blue: " + strings.Join(blue, "  "))
}

func engineMove(g *janggi.Game, eng *engine.Engine, fields []string) {
	if g.Status == janggi.StatusCheckmate {
		fmt.Println("the game is already over")
		return
	}
	depth := 4
	if len(fields) > 1 {
		if n, err := strconv.Atoi(fields[1]); err == nil && n > 0 {
			depth = n
		}
	}

	res := eng.Search(g.Pos, engine.SearchConfig{
		Depth:          depth,
		MaxTimePerMove: 10 * time.Second,
		UseTT:          true,
		RandomizeEqual: true,
	})
	if res.BestMove.From == res.BestMove.To {
		fmt.Println("no move available")
		return
	}
	captured := g.Pos.Board.Squares[res.BestMove.To]
	if err := g.ProposeMove(res.BestMove); err != nil {
		fmt.Println(notation.Describe(err))
		return
	}

	fmt.Printf("engine plays %s (score %d, depth %d, %d nodes, %s)\n",
		notation.FormatMove(res.BestMove), res.Score, res.Depth, res.Nodes,
		res.Elapsed.Round(time.Millisecond))
	if captured != 0 {
		fmt.Printf("engine takes the %s.\n", notation.PieceName(captured))
	}
	printBoard(g)
	announce(g)
}

func printHelp() {
	fmt.Print(`commands:
  <move>       play a move, e.g. c7c6 or "c7 c6"
  moves [sq]   list legal moves, optionally from one square
  pieces       list both sides' pieces with their tags
  engine [n]   let the engine reply, searching n plies deep
  board        redraw the board
  fen          print the position text
  load <text>  replace the game with a position text
  new          start over
  quit         leave
`)
}
