// Command chesswatch follows a session's spectator feed and prints each
// announcement until the game ends.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/park285/chess-session/internal/match"
	"github.com/park285/chess-session/internal/msgcat"
	"github.com/park285/chess-session/internal/wsapi"
)

func main() {
	base := flag.String("server", envOr("CHESSD_URL", "ws://localhost:8080"), "chessd base URL")
	window := flag.Duration("for", 0, "stop after this long (0 = until the game ends)")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: chesswatch [-server URL] [-for 10m] <session-id>")
		os.Exit(2)
	}

	cat, err := msgcat.New(os.Getenv("MESSAGES_DIR"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if *window > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *window)
		defer cancel()
	}
	if err := watch(ctx, *base, flag.Arg(0), cat); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func watch(ctx context.Context, base, id string, cat *msgcat.Catalog) error {
	url := strings.TrimRight(base, "/") + "/sessions/" + id + "/watch"
	dctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	conn, _, err := websocket.Dial(dctx, url, nil)
	cancel()
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	for {
		var frame wsapi.Outbound
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || ctx.Err() != nil {
				return nil
			}
			return err
		}
		switch {
		case frame.Type == "snapshot" && frame.Snapshot != nil:
			for _, row := range frame.Snapshot.Rows {
				fmt.Println(row)
			}
			fmt.Println(cat.TurnText(*frame.Snapshot))
		case frame.Type == "event" && frame.Event != nil:
			if text := cat.EventText(*frame.Event); text != "" {
				fmt.Println(text)
			}
			if frame.Event.Type == match.EventMove && frame.Event.Snapshot.Result == nil {
				fmt.Println(cat.TurnText(frame.Event.Snapshot))
			}
		}
	}
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
