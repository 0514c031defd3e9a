package runner

import "github.com/projectdiscovery/gologger"

var banner = (`
					 __
____   ____   _____ |  | _____.__.
\____\ /  _ \ /     \|  |/ <   |  |
|  |  (  <_> )  Y Y  \    < \___  |
|__|   \____/|__|_|  /__|_ \/ ____|
                    \/     \/\/
`)

var version = "v0.1.0"

// showBanner prints the tool banner before doing any real work.
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tpomsky compiler\n\n")
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
}
