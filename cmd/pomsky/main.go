package main

import (
	"github.com/projectdiscovery/gologger"

	"github.com/pomsky-lang/pomsky-sub000/runner"
)

func main() {
	opts := runner.ParseFlags()
	if err := runner.Run(opts); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}
}
