package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/jloeber/ipmapper/config"
)

const version = "0.1.0"

var (
	app = kingpin.New(
		"ipmapper",
		"Draw frequencies of IP addresses on a world map")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("IPMAPPER_DEBUG").
		Bool()
	configFile = app.Flag("config", "Path to the config.").
			Short('c').
			Envar("IPMAPPER_CONFIG").
			File()
	inputPath = app.Arg("input-path", "Path to the file with '<count> <ip>' lines.").
			Required().
			String()
)

func init() {
	app.Version(version)
	setupLogging(false)
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	setupLogging(*debug)

	conf := config.Default()
	if *configFile != nil {
		parsed, err := config.Parse(*configFile)
		(*configFile).Close() // nolint: errcheck
		if err != nil {
			log.Fatal(err.Error())
		}
		conf = parsed
	}

	paths, err := run(afero.NewOsFs(), conf, *inputPath, makeProviders)
	if err != nil {
		log.Fatal(err.Error())
	}

	for _, path := range paths {
		fmt.Println(path)
	}
}
