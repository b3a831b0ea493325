package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/hedgie/internal/config"
	"github.com/abhisek/hedgie/internal/leaderboard"
	"github.com/abhisek/hedgie/internal/problemgen"
	"github.com/abhisek/hedgie/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question and high score API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		if cfg.Leaderboard.Backend == "http" {
			return fmt.Errorf("serve cannot use the http leaderboard backend")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d, err := buildDeps(ctx, cfg)
		if err != nil {
			return err
		}
		defer d.Close()

		var gen problemgen.BatchGenerator = d.gen
		if gen == nil {
			d.log.Warn("no LLM provider, generate-questions will return errors")
			gen = unavailableGenerator{}
		}

		srv := server.New(gen, leaderboard.NewHub(d.scores), d.log)
		return srv.ListenAndServe(ctx, server.HTTPConfig{
			Addr:         cfg.Server.Addr,
			ReadTimeout:  config.Duration(cfg.Server.ReadTimeout, 15*time.Second),
			WriteTimeout: config.Duration(cfg.Server.WriteTimeout, 60*time.Second),
		})
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
}

// unavailableGenerator answers every request with an error so the
// handler returns its 500 contract.
type unavailableGenerator struct{}

func (unavailableGenerator) Generate(context.Context, int, problemgen.Difficulty) (problemgen.Batch, error) {
	return nil, fmt.Errorf("no LLM provider configured")
}
