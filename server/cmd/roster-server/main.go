package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/harvinder-fsd/roster/server/rosterservice"
)

func main() {
	// Optional build-target flag override (local | cloud)
	buildTarget := flag.String("build-target", "", "Override ROSTER_BUILD_TARGET (local, cloud)")
	flag.Parse()

	if *buildTarget != "" {
		if err := os.Setenv("ROSTER_BUILD_TARGET", *buildTarget); err != nil {
			log.Fatal().Err(err).Msg("Invalid build-target override")
		}
	}

	if err := rosterservice.Run(); err != nil {
		log.Error().Err(err).Msg("roster service exited")
		os.Exit(1)
	}
}
