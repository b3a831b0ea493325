package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/hedgie/internal/config"
	"github.com/abhisek/hedgie/internal/leaderboard"
	"github.com/abhisek/hedgie/internal/llm"
	"github.com/abhisek/hedgie/internal/logging"
	"github.com/abhisek/hedgie/internal/problemgen"
	"github.com/abhisek/hedgie/internal/session"
	"github.com/abhisek/hedgie/internal/source"
	"github.com/abhisek/hedgie/internal/store"
)

// deps holds everything built from the config. Close releases it.
type deps struct {
	cfg     config.Config
	log     *logrus.Logger
	store   *store.Store
	gen     problemgen.BatchGenerator
	scores  leaderboard.Gateway
	closers []io.Closer
}

// buildDeps sets up logging, the store, the LLM generator and the
// leaderboard backend. A missing LLM provider or database degrades the
// app instead of failing it.
func buildDeps(ctx context.Context, cfg config.Config) (*deps, error) {
	log, logCloser, err := logging.Setup(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg, log: log, closers: []io.Closer{logCloser}}

	st, err := openStore(cfg)
	if err != nil {
		log.WithError(err).Warn("database unavailable, history and local scores disabled")
	} else {
		d.store = st
		d.closers = append(d.closers, st)
	}

	provider, err := llm.NewProvider(ctx, cfg.LLMProviderConfig(), d.eventRepo(), log)
	if err != nil {
		log.WithError(err).Info("LLM provider not configured")
	} else {
		d.gen = problemgen.New(provider, problemgen.DefaultConfig(), log)
	}

	scores, err := d.buildLeaderboard()
	if err != nil {
		d.Close()
		return nil, err
	}
	d.scores = scores
	return d, nil
}

func (d *deps) eventRepo() store.EventRepo {
	if d.store == nil {
		return nil
	}
	return d.store.EventRepo()
}

// buildLeaderboard picks the high score backend. The sqlite backend
// falls back to memory when the database could not be opened.
func (d *deps) buildLeaderboard() (leaderboard.Gateway, error) {
	lc := d.cfg.Leaderboard
	switch lc.Backend {
	case "redis":
		if d.cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("leaderboard backend redis needs redis.addr")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     d.cfg.Redis.Addr,
			Password: d.cfg.Redis.Password,
			DB:       d.cfg.Redis.DB,
		})
		d.closers = append(d.closers, client)
		return leaderboard.NewRedisGateway(client, lc.Size, config.Duration(d.cfg.Redis.TTL, 0)), nil
	case "http":
		if lc.URL == "" {
			return nil, fmt.Errorf("leaderboard backend http needs leaderboard.url")
		}
		return leaderboard.NewHTTPGateway(lc.URL, &http.Client{Timeout: 10 * time.Second}), nil
	case "memory":
		return leaderboard.NewMemoryGateway(lc.Size), nil
	case "sqlite", "":
		if d.store == nil {
			d.log.Warn("sqlite leaderboard unavailable, using memory")
			return leaderboard.NewMemoryGateway(lc.Size), nil
		}
		return leaderboard.NewStoreGateway(d.store.HighScoreRepo(), lc.Size), nil
	default:
		return nil, fmt.Errorf("unknown leaderboard backend %q", lc.Backend)
	}
}

// questionSource picks where difficulty-mode batches come from. Every
// fallible source falls back to the static set.
func (d *deps) questionSource(offline bool) (source.Source, error) {
	if offline {
		return source.Static{}, nil
	}
	sc := d.cfg.Source
	log := d.log.WithField("source", sc.Mode)
	switch sc.Mode {
	case "remote":
		if sc.URL == "" {
			return nil, fmt.Errorf("source mode remote needs source.url")
		}
		remote := source.NewRemote(source.RemoteConfig{
			BaseURL: sc.URL,
			Timeout: config.Duration(sc.Timeout, 0),
		})
		return source.WithFallback(remote, source.Static{}, log), nil
	case "llm", "":
		if d.gen == nil {
			d.log.Info("no LLM provider, playing with the built-in questions")
			return source.Static{}, nil
		}
		return source.WithFallback(source.NewGenerated(d.gen), source.Static{}, log), nil
	case "local":
		var mu sync.Mutex
		gen := problemgen.NewLocalGenerator(nil)
		return source.WithFallback(source.FetcherFunc(
			func(_ context.Context, count int, difficulty problemgen.Difficulty) (problemgen.Batch, error) {
				mu.Lock()
				defer mu.Unlock()
				return gen.GenerateBatch(gradeFor(difficulty), count), nil
			}), source.Static{}, log), nil
	case "static":
		return source.Static{}, nil
	default:
		return nil, fmt.Errorf("unknown source mode %q", sc.Mode)
	}
}

// gradeFor maps a difficulty onto a template tier for the local source.
func gradeFor(d problemgen.Difficulty) problemgen.GradeTier {
	switch d {
	case problemgen.Easy:
		return problemgen.First
	case problemgen.Hard:
		return problemgen.Fifth
	default:
		return problemgen.Third
	}
}

// gameConfig applies the game section of the config to the default rules.
func (d *deps) gameConfig() session.Config {
	gc := d.cfg.Game
	cfg := session.DefaultConfig()
	cfg.QuestionTime = config.Duration(gc.QuestionTime, cfg.QuestionTime)
	if gc.BatchSize > 0 {
		cfg.BatchSize = gc.BatchSize
	}
	if gc.LowWater > 0 {
		cfg.LowWater = gc.LowWater
	}
	if gc.Reward > 0 {
		cfg.Reward = gc.Reward
	}
	if gc.Penalty > 0 {
		cfg.Penalty = gc.Penalty
	}
	if gc.Lives > 0 {
		cfg.MaxLives = gc.Lives
	}
	if d.cfg.Leaderboard.Size > 0 {
		cfg.LeaderboardSize = d.cfg.Leaderboard.Size
	}
	return cfg
}

// Close releases resources in reverse order of acquisition.
func (d *deps) Close() error {
	var first error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
