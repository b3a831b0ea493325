package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/hedgie/internal/leaderboard"
	"github.com/abhisek/hedgie/internal/problemgen"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Print the high score table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		keys := []string{problemgen.Medium.Key()}
		switch {
		case all:
			keys = leaderboard.Keys()
		case len(args) == 1:
			key := strings.ToLower(args[0])
			if d, ok := problemgen.ParseDifficulty(key); ok {
				key = d.Key()
			} else if g, ok := problemgen.ParseGrade(key); ok {
				key = g.Key()
			}
			if !leaderboard.ValidKey(key) {
				return fmt.Errorf("unknown difficulty %q", args[0])
			}
			keys = []string{key}
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.Log.Level = "error"
		d, err := buildDeps(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		for i, key := range keys {
			list, err := d.scores.Top(ctx, key)
			if err != nil {
				return fmt.Errorf("read %s scores: %w", key, err)
			}
			if i > 0 {
				fmt.Println()
			}
			printScores(leaderboard.KeyLabel(key), list)
		}
		return nil
	},
}

func printScores(title string, list []leaderboard.Entry) {
	fmt.Println(title)
	fmt.Println(strings.Repeat("─", 34))
	if len(list) == 0 {
		fmt.Println("No scores yet.")
		return
	}
	for i, e := range list {
		fmt.Printf("%2d. %-*s  %6d\n", i+1, leaderboard.MaxNameLength, e.Name, e.Score)
	}
}

func init() {
	scoresCmd.Flags().Bool("all", false, "Show every difficulty and grade")
}
