package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/Sideko-Inc/insurance-api-demo/server/insuranceservice"
)

func main() {
	if err := insuranceservice.Run(); err != nil {
		log.Error().Err(err).Msg("insurance-service exited with error")
		os.Exit(1)
	}
}
