package main

import (
	"equiplend/config"
	"equiplend/helper"
	"equiplend/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const usage = "usage: migrate up|down|step-up|drop|version|force <version>"

func main() {
	if len(os.Args) < 2 {
		log.Fatal().Msg(usage)
	}

	cfg := config.Get()

	logger.Setup(cfg)

	var err error

	switch action := os.Args[1]; action {
	case "force":
		if len(os.Args) < 3 {
			log.Fatal().Msg(usage)
		}

		err = helper.Force(cfg, os.Args[2])
	default:
		err = helper.Runner(cfg, action)
	}

	if err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
