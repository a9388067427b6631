package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/freecell/config"
)

func main() {
	cfg := config.Default()

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	logger := zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	root := rootCommand(cfg)
	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("")
		os.Exit(1)
	}
}
