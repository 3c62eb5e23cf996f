package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/tellapart/aurora/cmd/updater/cmd"
	"github.com/tellapart/aurora/internal/common/logging"
)

func main() {
	logging.Configure()

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
