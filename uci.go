package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slices"

	"peregrine/chess"
	"peregrine/engine"
	"peregrine/nnue"
)

const (
	engineName   = "Peregrine 1.0"
	engineAuthor = "the Peregrine authors"
)

// uciState holds the protocol-side state: the current game position, its
// Zobrist history for repetition detection, and the searcher. Searches run
// on their own goroutine so stop can be handled while thinking.
type uciState struct {
	searcher *engine.Searcher
	net      *nnue.Network

	board  *chess.Board
	hashes []uint64

	in  io.Reader
	out io.Writer

	searching atomic.Bool
	wg        sync.WaitGroup
}

func newUCI(searcher *engine.Searcher, net *nnue.Network, in io.Reader, out io.Writer) *uciState {
	board, _ := chess.ParseFEN(chess.StartPosFEN)
	return &uciState{
		searcher: searcher,
		net:      net,
		board:    board,
		hashes:   []uint64{board.Hash()},
		in:       in,
		out:      out,
	}
}

// loop reads commands until quit or EOF. Unknown input is reported on an
// info string line and never kills the session.
func (u *uciState) loop() {
	scanner := bufio.NewScanner(u.in)
	scanner.Buffer(make([]byte, 0, 1<<16), 1<<20) // long move lists
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Fprintf(u.out, "id name %s\n", engineName)
			fmt.Fprintf(u.out, "id author %s\n", engineAuthor)
			fmt.Fprintln(u.out, "option name Hash type spin default 64 min 1 max 4096")
			fmt.Fprintln(u.out, "uciok")
		case "isready":
			fmt.Fprintln(u.out, "readyok")
		case "ucinewgame":
			u.waitForSearch()
			u.searcher.NewGame()
			u.setStartpos()
		case "position":
			u.waitForSearch()
			u.handlePosition(tokens[1:])
		case "go":
			u.handleGo(tokens[1:])
		case "stop":
			u.searcher.RequestStop()
			u.waitForSearch()
		case "setoption":
			u.handleSetOption(tokens[1:])
		case "perft":
			u.handlePerft(tokens[1:])
		case "eval":
			var acc nnue.Accumulator
			acc.Refresh(u.net, u.board)
			fmt.Fprintf(u.out, "info string static eval %d cp\n", acc.Evaluate(u.net, u.board.SideToMove()))
		case "bench":
			u.waitForSearch()
			engine.Bench(u.searcher, engine.BenchDepth, u.out)
		case "quit":
			u.searcher.RequestStop()
			u.waitForSearch()
			return
		default:
			fmt.Fprintln(u.out, "info string Unknown command:", line)
		}
	}
	u.searcher.RequestStop()
	u.waitForSearch()
}

func (u *uciState) waitForSearch() { u.wg.Wait() }

func (u *uciState) setStartpos() {
	u.board, _ = chess.ParseFEN(chess.StartPosFEN)
	u.hashes = []uint64{u.board.Hash()}
}

// handlePosition parses "startpos|fen <fen> [moves ...]". The Zobrist
// history is rebuilt from scratch so repetitions over the game moves are
// visible to the search. A malformed command leaves the old position
// untouched.
func (u *uciState) handlePosition(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(u.out, "info string Malformed position command")
		return
	}

	board := u.board
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		board, _ = chess.ParseFEN(chess.StartPosFEN)
	case "fen":
		n := len(rest)
		for i, tok := range rest {
			if strings.ToLower(tok) == "moves" {
				n = i
				break
			}
		}
		parsed, err := chess.ParseFEN(strings.Join(rest[:n], " "))
		if err != nil {
			fmt.Fprintln(u.out, "info string Invalid fen position:", err)
			return
		}
		board = parsed
		rest = rest[n:]
	default:
		fmt.Fprintln(u.out, "info string Invalid position subcommand:", args[0])
		return
	}

	hashes := []uint64{board.Hash()}
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, moveStr := range rest[1:] {
			m, err := board.ParseMove(strings.ToLower(moveStr))
			if err != nil {
				fmt.Fprintln(u.out, "info string Move", moveStr, "rejected:", err)
				return
			}
			if ok, _ := board.MakeMove(m); !ok {
				fmt.Fprintln(u.out, "info string Move", moveStr, "is illegal here")
				return
			}
			hashes = append(hashes, board.Hash())
		}
	}
	u.board = board
	u.hashes = hashes
}

// handleGo parses the search limits and starts the search goroutine. The
// board is copied so the game state cannot race with the search.
func (u *uciState) handleGo(args []string) {
	if !u.searching.CompareAndSwap(false, true) {
		fmt.Fprintln(u.out, "info string Search already running")
		return
	}

	var limits engine.Limits
	for i := 0; i < len(args); i++ {
		nextInt := func() (int, bool) {
			if i+1 >= len(args) {
				fmt.Fprintln(u.out, "info string Malformed go option", args[i])
				return 0, false
			}
			i++
			v, err := strconv.Atoi(args[i])
			if err != nil {
				fmt.Fprintln(u.out, "info string Malformed go option", args[i-1])
				return 0, false
			}
			return v, true
		}
		switch strings.ToLower(args[i]) {
		case "infinite":
			limits.Infinite = true
		case "depth":
			if v, ok := nextInt(); ok {
				limits.Depth = v
			}
		case "movetime":
			if v, ok := nextInt(); ok {
				limits.MoveTime = time.Duration(v) * time.Millisecond
			}
		case "wtime":
			if v, ok := nextInt(); ok {
				limits.WhiteTime = time.Duration(v) * time.Millisecond
			}
		case "btime":
			if v, ok := nextInt(); ok {
				limits.BlackTime = time.Duration(v) * time.Millisecond
			}
		case "winc":
			if v, ok := nextInt(); ok {
				limits.WhiteInc = time.Duration(v) * time.Millisecond
			}
		case "binc":
			if v, ok := nextInt(); ok {
				limits.BlackInc = time.Duration(v) * time.Millisecond
			}
		case "movestogo":
			if v, ok := nextInt(); ok {
				limits.MovesToGo = v
			}
		default:
			fmt.Fprintln(u.out, "info string Unknown go option", args[i])
		}
	}

	board := *u.board
	hashes := append([]uint64(nil), u.hashes...)
	u.searcher.ClearStop()
	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		defer u.searching.Store(false)
		best := u.searcher.Search(&board, hashes, limits, u.out)
		fmt.Fprintf(u.out, "bestmove %s\n", best)
	}()
}

func (u *uciState) handleSetOption(args []string) {
	// setoption name <id> value <x>
	name, value := "", ""
	for i := 0; i < len(args)-1; i++ {
		switch strings.ToLower(args[i]) {
		case "name":
			name = strings.ToLower(args[i+1])
		case "value":
			value = args[i+1]
		}
	}
	switch name {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb <= 0 {
			fmt.Fprintln(u.out, "info string Invalid Hash value:", value)
			return
		}
		u.waitForSearch()
		u.searcher.ResizeHash(mb)
	default:
		fmt.Fprintln(u.out, "info string Unknown option:", name)
	}
}

// handlePerft prints the node count per root move and the total, which is
// the shape most debugging workflows diff against a reference engine.
func (u *uciState) handlePerft(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(u.out, "info string Usage: perft <depth>")
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth <= 0 {
		fmt.Fprintln(u.out, "info string Invalid perft depth:", args[0])
		return
	}

	start := time.Now()
	counts := chess.PerftDivide(u.board, depth)
	total := uint64(0)
	lines := make([]string, 0, len(counts))
	for m, n := range counts {
		lines = append(lines, fmt.Sprintf("%s: %d", m, n))
		total += n
	}
	slices.Sort(lines)
	for _, l := range lines {
		fmt.Fprintln(u.out, l)
	}
	fmt.Fprintf(u.out, "\nNodes searched: %d (%.3fs)\n", total, time.Since(start).Seconds())
}
