package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"github.com/gokatarajesh/mindquest/internal/config"
	"github.com/gokatarajesh/mindquest/internal/logging"
	"github.com/gokatarajesh/mindquest/internal/quiz"
	"github.com/gokatarajesh/mindquest/internal/render"
	"github.com/gokatarajesh/mindquest/internal/session"
)

const clearScreen = "\033[H\033[2J"

var errQuit = errors.New("quit")

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewWithWriter(os.Stderr, cfg.Name, cfg.Env, cfg.LogLevel)
	updates := make(chan quiz.Snapshot, 1)

	sess := session.New(uuid.New(), cfg.Quiz.Engine(), session.Options{
		OnUpdate: func(snap quiz.Snapshot) { offerLatest(updates, snap) },
	}, logger)

	clearTerm := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	g, ctx := errgroup.WithContext(ctx)
	lines := readLines(ctx, os.Stdin)
	g.Go(func() error {
		return sess.Run(ctx)
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case snap := <-updates:
				if clearTerm {
					fmt.Fprint(os.Stdout, clearScreen)
				}
				if err := render.Text(os.Stdout, snap); err != nil {
					return fmt.Errorf("render: %w", err)
				}
			}
		}
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case line, ok := <-lines:
				if !ok {
					return errQuit
				}
				if err := handleKey(ctx, sess, line); err != nil {
					if errors.Is(err, errQuit) {
						return err
					}
					fmt.Fprintf(os.Stdout, "(%v)\n", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("play stopped")
		os.Exit(1)
	}
}

// handleKey maps one line of input to a session command.
func handleKey(ctx context.Context, sess *session.Session, line string) error {
	key := strings.ToLower(strings.TrimSpace(line))
	switch key {
	case "":
		return nil
	case "q":
		return errQuit
	case "s":
		return sess.Start(ctx)
	}

	n, err := strconv.Atoi(key)
	if err != nil {
		return fmt.Errorf("unknown key %q", key)
	}
	snap := sess.Latest()
	if snap.Question == nil {
		return quiz.ErrNotPlaying
	}
	if n < 1 || n > len(snap.Question.Options) {
		return fmt.Errorf("pick 1-%d", len(snap.Question.Options))
	}
	return sess.SubmitInRound(ctx, snap.Round, snap.Question.Options[n-1])
}

// offerLatest replaces any unread snapshot so the publisher never blocks.
func offerLatest(ch chan quiz.Snapshot, snap quiz.Snapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- snap
}

// readLines streams lines from r until EOF or ctx is done; the channel is
// closed either way.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case out <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
