package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harvinder-fsd/roster/localstore"
	"github.com/harvinder-fsd/roster/simulate"
)

var gameSeed int64

// outcomes is the random source for one invocation. A zero seed means
// time-seeded.
func outcomes() *simulate.Random {
	seed := gameSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return simulate.NewRandom(seed)
}

// recordGame files a result under the current owner; failures only warn,
// the game itself already happened.
func recordGame(cmd *cobra.Command, game, outcome string, score int) {
	db, err := openLocal()
	if err != nil {
		cmd.PrintErrf("result not saved: %v\n", err)
		return
	}
	defer func() { _ = db.Close() }()
	if _, err := db.Games().Add(localstore.GameResult{UserID: localOwner(), Game: game, Outcome: outcome, Score: score}); err != nil {
		cmd.PrintErrf("result not saved: %v\n", err)
	}
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Party games and a simulated chat partner",
	}
	cmd.PersistentFlags().Int64Var(&gameSeed, "seed", 0, "Random seed for reproducible outcomes")
	cmd.PersistentFlags().StringVar(&localDBPath, "local-db", os.Getenv("ROSTER_LOCAL_DB"), "Local app data file (default ~/.roster/vyb.db)")

	cmd.AddCommand(&cobra.Command{
		Use:       "truth-or-dare <truth|dare>",
		Short:     "Draw a truth question or a dare",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"truth", "dare"},
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := simulate.TruthOrDare(outcomes(), args[0])
			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			recordGame(cmd, "truth-or-dare", args[0], 0)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "roast",
		Short: "Get roasted",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), simulate.Roast(outcomes()))
			recordGame(cmd, "roast", "played", 0)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "battle <mood>",
		Short: "Play one mood battle round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := simulate.MoodBattle(outcomes(), args[0])
			outcome, score := "lost", 0
			if b.PlayerWins {
				outcome, score = "won", 1
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s vs %s: you %s\n", b.PlayerMood, b.OpponentMood, outcome)
			recordGame(cmd, "mood-battle", outcome, score)
			return nil
		},
	})
	cmd.AddCommand(newChatCmd())
	return cmd
}

func newChatCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Send a message to a simulated peer and watch it react",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "you: %s\n", args[0])
			reacted := false
			err := simulate.React(ctx, outcomes(), func(ev simulate.Event) {
				reacted = true
				switch ev.Kind {
				case simulate.TypingStarted:
					fmt.Fprintln(out, "peer is typing...")
				case simulate.Replied:
					fmt.Fprintf(out, "peer: %s\n", ev.Text)
				}
			})
			if err != nil {
				return err
			}
			if !reacted {
				fmt.Fprintln(out, "(seen)")
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Give up waiting after this long")
	return cmd
}
