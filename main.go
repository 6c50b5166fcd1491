package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

const version = "0.1.0"

var (
	app = kingpin.New(
		"zonographer",
		"Resolve geographical points into administrative zones")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("ZONOGRAPHER_DEBUG").
		Bool()

	serveCmd = app.Command("serve", "Run HTTP server.")

	serveConfig = serveCmd.Arg("config-path", "Path to the config.").
			Required().
			ExistingFile()

	annotateCmd = app.Command("annotate", "Add zone column to a CSV file with lon,lat columns.")

	annotateConfig = annotateCmd.Arg("config-path", "Path to the config.").
			Required().
			ExistingFile()

	annotateInput = annotateCmd.Arg("input", "Path to the CSV file.").
			Required().
			ExistingFile()

	annotateOutput = annotateCmd.Flag("output", "Path to the output file. Input is overwritten if omitted.").
			Short('o').
			String()
)

func main() {
	appLog := newEventLogger(os.Stderr, "app")

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		appLog.Fatal().Err(err).Msg("Cannot load .env file")
	}

	app.Version(version)

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	setupLogging(*debug)

	var err error

	switch command {
	case serveCmd.FullCommand():
		err = runServe(*serveConfig, appLog)
	case annotateCmd.FullCommand():
		err = runAnnotate(*annotateConfig, *annotateInput, *annotateOutput, appLog)
	}

	if err != nil {
		appLog.WithLevel(zerolog.FatalLevel).Err(err).Msg("")
		os.Exit(1)
	}
}
