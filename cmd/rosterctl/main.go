package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	serviceURL  string
	profilePath string
	debug       bool
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "rosterctl",
		Short:        "rosterctl manages student records, the portfolio inbox and local app data",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})

			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				_ = os.Setenv("ROSTER_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	defaultURL := getEnv("ROSTER_SERVICE_URL", "http://localhost:5000")
	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", defaultURL, "Base URL of the roster service")
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", getEnv("ROSTER_PROFILE", defaultProfilePath()), "File holding the signed-in session")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newListUsersCmd())
	rootCmd.AddCommand(newStudentsCmd())
	rootCmd.AddCommand(newContactCmd())
	rootCmd.AddCommand(newListContactsCmd())
	rootCmd.AddCommand(newResumeCmd())
	rootCmd.AddCommand(newLocalCmd())
	rootCmd.AddCommand(newPlayCmd())

	return rootCmd
}

func defaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rosterctl.yaml"
	}
	return filepath.Join(home, ".rosterctl.yaml")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
