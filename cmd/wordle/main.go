// cmd/wordle/main.go
//
// Entry point. By default plays today's daily word in the terminal;
// -random plays a random word instead, and -serve runs the HTTP API for
// the web client.
//
// Environment (a .env file is honored in development):
//   LOG_LEVEL           zerolog level (default "info"; TUI defaults to "error")
//   DB_PATH             SQLite file (default ./data/wordle.db)
//   PORT                HTTP port for -serve (default 5175)
//   DAILY_SALT          salt for the daily word sequence
//   WORDS_ANSWERS_FILE  override the embedded answer list
//   WORDS_ALLOWED_FILE  override the embedded guess list

package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wordle/internal/daily"
	"wordle/internal/db"
	"wordle/internal/game"
	"wordle/internal/httpserver"
	"wordle/internal/stats"
	"wordle/internal/store"
	"wordle/internal/tui"
	"wordle/internal/words"
)

func main() {
	serve := flag.Bool("serve", false, "run the HTTP API instead of the terminal game")
	random := flag.Bool("random", false, "play a random word instead of the daily puzzle")
	answer := flag.String("answer", "", "fixed answer word (testing)")
	noDB := flag.Bool("no-db", false, "skip statistics persistence")
	flag.Parse()

	_ = godotenv.Load()

	// The TUI owns the terminal, so default logging to errors only there.
	defLevel := "error"
	if *serve {
		defLevel = "info"
	}
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", defLevel)); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	bank, err := words.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	var database *sql.DB
	if !*noDB || *serve {
		d, err := db.Open(getEnv("DB_PATH", "./data/wordle.db"))
		if err != nil {
			if *serve {
				log.Fatal().Err(err).Msg("failed to open database")
			}
			log.Warn().Err(err).Msg("statistics disabled: cannot open database")
		} else {
			database = d
			defer database.Close()
		}
	}

	if *serve {
		srv := httpserver.New(bank, store.NewMemoryStore(), database)
		port := getEnv("PORT", "5175")
		log.Info().Str("port", port).Msg("starting wordle server")
		if err := srv.Start(":" + port); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
		return
	}

	runTUI(bank, database, *random, *answer)
}

// runTUI builds the session for the chosen mode and hands the terminal to
// bubbletea.
func runTUI(bank *words.Bank, database *sql.DB, random bool, answer string) {
	puzzle := -1
	secret := answer

	switch {
	case secret != "":
		// fixed answer, keep puzzle = -1
	case random:
		var err error
		secret, err = bank.PickSecret()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to pick a word")
		}
	default:
		now := time.Now()
		answers := bank.Answers()
		secret = answers[daily.WordIndex(now, getEnv("DAILY_SALT", "local_dev_salt"), len(answers))]
		puzzle = daily.PuzzleNumber(now)
	}

	sess, err := game.NewSession(bank, secret)
	if err != nil {
		log.Fatal().Err(err).Str("answer", secret).Msg("invalid answer word")
	}

	var statsStore *stats.Store
	var dailyStore *daily.Store
	if database != nil {
		statsStore = stats.New(database)
		if puzzle >= 0 {
			dailyStore = daily.NewStore(database)
		}
	}

	m := tui.New(sess, puzzle, statsStore, dailyStore)
	if dailyStore != nil {
		// Today's daily is one play per day: a recorded result blocks replay.
		r, err := dailyStore.ResultFor(context.Background(), stats.LocalPlayer, daily.DateKey(time.Now()))
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("check daily result")
		case r != nil:
			m = m.MarkPlayed(*r)
		}
	}

	if err := tui.Run(m); err != nil {
		log.Fatal().Err(err).Msg("terminal UI exited")
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
