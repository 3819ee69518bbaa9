// Command hotseat plays one game on a single terminal, both players taking
// turns at the same keyboard.
package main

import (
	"flag"
	"fmt"
	"os"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/fatih/color"

	"github.com/park285/chess-session/internal/clock"
	"github.com/park285/chess-session/internal/msgcat"
)

func main() {
	budget := flag.String("budget", "", "time per side: 1m, 5m, 10m or seconds")
	white := flag.String("white", "", "White player's name")
	black := flag.String("black", "", "Black player's name")
	plain := flag.Bool("plain", false, "disable colored output")
	flag.Parse()

	d, err := clock.ParseBudget(*budget)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cat, err := msgcat.New(os.Getenv("MESSAGES_DIR"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *plain {
		color.NoColor = true
	}
	c := newConsole(os.Stdin, os.Stdout, cat, d)
	c.names[0], c.names[1] = nameOr(*white), nameOr(*black)
	c.run()
}

func nameOr(n string) string {
	if n != "" {
		return n
	}
	return petname.Generate(2, "-")
}
