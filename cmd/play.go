package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/hedgie/internal/app"
	"github.com/abhisek/hedgie/internal/leaderboard"
	"github.com/abhisek/hedgie/internal/problemgen"
	"github.com/abhisek/hedgie/internal/screens/game"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().String("difficulty", "", "Start a game right away: easy, medium or hard")
	cmd.Flags().String("grade", "", "Start an untimed grade game right away (kindergarten to fifth)")
	cmd.Flags().Bool("offline", false, "Use only the built-in questions")
}

// runPlay builds dependencies and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// The terminal belongs to the renderer while the game runs.
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile()
	}

	start, err := startMode(cmd)
	if err != nil {
		return err
	}
	offline, _ := cmd.Flags().GetBool("offline")

	d, err := buildDeps(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	src, err := d.questionSource(offline)
	if err != nil {
		return err
	}

	env := &game.Env{
		Source: src,
		Grades: problemgen.NewLocalGenerator(nil),
		Scores: leaderboard.Safe(d.scores, d.log.WithField("component", "leaderboard")),
		Events: d.eventRepo(),
		Config: d.gameConfig(),
		Log:    d.log,
	}
	d.log.WithField("source", cfg.Source.Mode).Info("starting game")

	return app.Run(app.Options{Env: env, Start: start})
}

// startMode reads --difficulty and --grade. Neither means the home menu.
func startMode(cmd *cobra.Command) (*game.Mode, error) {
	diff, _ := cmd.Flags().GetString("difficulty")
	grade, _ := cmd.Flags().GetString("grade")
	switch {
	case diff != "" && grade != "":
		return nil, fmt.Errorf("use --difficulty or --grade, not both")
	case diff != "":
		d, ok := problemgen.ParseDifficulty(diff)
		if !ok {
			return nil, fmt.Errorf("invalid difficulty %q: must be easy, medium or hard", diff)
		}
		m := game.DifficultyMode(d)
		return &m, nil
	case grade != "":
		g, ok := problemgen.ParseGrade(grade)
		if !ok {
			return nil, fmt.Errorf("invalid grade %q", grade)
		}
		m := game.GradeMode(g)
		return &m, nil
	}
	return nil, nil
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hedgie", "hedgie.log")
}
