package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/park285/chess-session/internal/chess"
	"github.com/park285/chess-session/internal/clock"
	"github.com/park285/chess-session/internal/msgcat"
)

var (
	whiteInk = color.New(color.FgHiYellow, color.Bold)
	blackInk = color.New(color.FgHiBlue, color.Bold)
	dimInk   = color.New(color.Faint)
	warnInk  = color.New(color.FgRed)
)

type console struct {
	in    *bufio.Scanner
	out   io.Writer
	cat   *msgcat.Catalog
	game  *chess.Game
	clock *clock.Clock
	names [2]string
}

func newConsole(in io.Reader, out io.Writer, cat *msgcat.Catalog, budget time.Duration) *console {
	return &console{
		in:    bufio.NewScanner(in),
		out:   out,
		cat:   cat,
		game:  chess.NewGame(),
		clock: clock.New(budget),
		names: [2]string{chess.White.String(), chess.Black.String()},
	}
}

func (c *console) run() {
	c.printBoard()
	c.clock.Start(chess.White)
	defer c.clock.Stop()
	for !c.game.Over() {
		mover := c.game.CurrentMover()
		fmt.Fprintf(c.out, "%s (%s) %s> ", c.names[mover], mover, clock.Format(c.clock.Remaining(mover)))
		if !c.in.Scan() {
			fmt.Fprintln(c.out)
			return
		}
		if side, flagged := c.clock.Flagged(); flagged && side == mover {
			c.finish(c.game.Timeout(mover))
			return
		}
		c.handle(mover, strings.TrimSpace(c.in.Text()))
	}
}

func (c *console) handle(mover chess.Color, line string) {
	switch strings.ToLower(line) {
	case "":
		return
	case "board":
		c.printBoard()
		return
	case "history":
		for _, rec := range c.game.MoveLog() {
			fmt.Fprintf(c.out, "%3d. %s\n", rec.Ply, rec)
		}
		return
	case "resign":
		c.finish(c.game.Resign(mover))
		return
	case "help":
		fmt.Fprintln(c.out, dimInk.Sprint("moves: <Piece> <From> <To>, e.g. Pawn E2 E4; also board, history, resign"))
		return
	}
	_, rec, err := c.game.Play(mover, line)
	if err != nil {
		code := chess.ErrorCode(err)
		if code == "" {
			code = "internal"
		}
		fmt.Fprintln(c.out, warnInk.Sprint(c.cat.ErrorText(code, msgcat.MoveErrorData(line, mover))))
		return
	}
	c.printBoard()
	fmt.Fprintln(c.out, c.cat.MoveText(rec))
	if res, over := c.game.Result(); over {
		c.finish(res, nil)
		return
	}
	c.clock.Switch(mover.Opponent())
}

func (c *console) finish(res chess.Result, err error) {
	c.clock.Stop()
	if err != nil {
		fmt.Fprintln(c.out, warnInk.Sprint(err))
		return
	}
	fmt.Fprintln(c.out, c.cat.ResultText(res, c.names[chess.White], c.names[chess.Black]))
}

func (c *console) printBoard() {
	rows := c.game.Board().Rows()
	for r, row := range rows {
		var b strings.Builder
		b.WriteString(dimInk.Sprintf("%d ", 8-r))
		for _, ch := range row {
			switch {
			case ch >= 'A' && ch <= 'Z':
				b.WriteString(whiteInk.Sprintf("%c ", ch))
			case ch >= 'a' && ch <= 'z':
				b.WriteString(blackInk.Sprintf("%c ", ch))
			default:
				b.WriteString(dimInk.Sprint(". "))
			}
		}
		fmt.Fprintln(c.out, strings.TrimRight(b.String(), " "))
	}
	fmt.Fprintln(c.out, dimInk.Sprint("  A B C D E F G H"))
}
