package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-cli/internal/config"
	"github.com/vancomm/minesweeper-cli/internal/scores"
	"github.com/vancomm/minesweeper-cli/internal/session"
	"github.com/vancomm/minesweeper-cli/internal/term"
)

var (
	log = logrus.New()

	envPath string
)

func init() {
	const (
		defaultEnvPath = ".env"
		usage          = "env file path"
	)
	flag.StringVar(&envPath, "env", defaultEnvPath, usage)
	flag.StringVar(&envPath, "e", defaultEnvPath, usage+" (shorthand)")
}

func setupLogging() {
	logLevel := logrus.InfoLevel
	if config.Development() {
		logLevel = logrus.DebugLevel
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   config.LogFile(),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to set up log file: ", err)
	}

	// stdout belongs to the game; logs go to the rotating file only
	for _, l := range []*logrus.Logger{log, session.Log} {
		l.SetLevel(logLevel)
		l.SetOutput(io.Discard)
		l.AddHook(hook)
	}
}

func sessionOptions(ctx context.Context) ([]session.Option, func()) {
	var opts []session.Option
	cleanup := func() {}

	if name, ok := config.DefaultDifficulty(); ok {
		if d, err := session.ParseDifficulty(name); err == nil {
			opts = append(opts, session.WithDifficulty(d))
		} else {
			log.WithError(err).Warn("ignoring MINESWEEPER_DIFFICULTY")
		}
	}

	if config.HasDatabase() {
		openCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		store, err := scores.Open(openCtx)
		if err != nil {
			log.WithError(err).Warn("records disabled: database unavailable")
		} else {
			opts = append(opts, session.WithScoreKeeper(store, config.PlayerName()))
			cleanup = store.Close
		}
	}

	return opts, cleanup
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("unable to load env file %s: %s", envPath, err.Error())
	}

	setupLogging()
	log.Info("starting up")

	opts, cleanup := sessionOptions(mainCtx)
	defer cleanup()

	sess := session.New(
		term.NewInput(os.Stdin, os.Stdout),
		term.NewRenderer(os.Stdout),
		rand.New(rand.NewPCG(
			uint64(time.Now().UnixNano()),
			uint64(os.Getpid()),
		)),
		opts...,
	)

	g, gCtx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		defer stop()
		return sess.Run(gCtx)
	})
	g.Go(func() error {
		<-gCtx.Done()
		// unblock any pending stdin read so the session can wind down
		return os.Stdin.Close()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Info("exit reason: ", err)
	}
	log.Info("goodbye")
}
