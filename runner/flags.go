package runner

import (
	"strings"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	errorutil "github.com/projectdiscovery/utils/errors"

	"github.com/pomsky-lang/pomsky-sub000/feature"
	"github.com/pomsky-lang/pomsky-sub000/unicodetab"
)

// Options holds everything a pomsky CLI invocation needs, parsed from
// flags and an optional YAML config file. It mirrors CompileOptions plus
// the I/O and discovery settings that are external to the core per spec
// §6 ("The CLI surface ... is external to this spec").
type Options struct {
	Input   string // source file path, or "-"/empty for stdin
	Dir     string // directory of *.pomsky files to compile in parallel
	Flavor  string
	Config  string
	Output  string
	JSON    bool
	Workers int
	Verbose bool
	Silent  bool

	MaxRangeDigits   int
	DisabledFeatures goflags.StringSlice

	resolvedFlavor unicodetab.Flavor
	resolvedAllow  feature.Set
}

// ParseFlags registers and parses the CLI's flags, grouped the way the
// teacher groups its own (input / output / config), then merges a config
// file over the defaults and resolves the string flavor/feature flags into
// their typed CompileOptions equivalents.
func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Compiles pomsky source into concrete regex syntax for eight target engines.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Input, "input", "i", "", "pomsky source file to compile (default stdin)"),
		flagSet.StringVarP(&opts.Dir, "dir", "d", "", "directory of *.pomsky files to compile in parallel"),
	)

	flagSet.CreateGroup("compile", "Compile",
		flagSet.StringVarP(&opts.Flavor, "flavor", "f", "", "target flavor (pcre, javascript, java, dotnet, python, ruby, rust, re2) (default pcre)"),
		flagSet.IntVar(&opts.MaxRangeDigits, "max-range-digits", 0, "max digit count accepted by a range literal (default 12)"),
		flagSet.StringSliceVarP(&opts.DisabledFeatures, "disable-feature", "df", nil, "feature(s) to disable (comma-separated)", goflags.CommaSeparatedStringSliceOptions),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "", "output file for the compiled regex or result records (default stdout)"),
		flagSet.BoolVar(&opts.JSON, "json", false, "emit the stable JSON result record instead of bare regex text"),
		flagSet.IntVarP(&opts.Workers, "workers", "w", 0, "worker pool size for -dir compilation (default 8)"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVar(printVersion, "version", "display pomsky compiler version"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&opts.Config, "config", "", "pomsky cli config file (YAML)"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s\n", err)
	}

	if opts.Config != "" {
		cfg, err := loadConfig(opts.Config)
		if err != nil {
			gologger.Fatal().Msgf("failed to read config file: %s\n", err)
		}
		cfg.applyDefaults(opts)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if !opts.Silent {
		showBanner()
	}

	if opts.Flavor == "" {
		opts.Flavor = "pcre"
	}
	if opts.MaxRangeDigits <= 0 {
		opts.MaxRangeDigits = feature.DefaultMaxRangeDigits
	}
	if opts.Workers <= 0 {
		opts.Workers = 8
	}

	flavor, err := parseFlavor(opts.Flavor)
	if err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}
	opts.resolvedFlavor = flavor

	allow := feature.All()
	for _, name := range opts.DisabledFeatures {
		bit, err := featureByName(name)
		if err != nil {
			gologger.Fatal().Msgf("%s\n", err)
		}
		allow = allow.Without(bit)
	}
	opts.resolvedAllow = allow

	return opts
}

var flavorNames = map[string]unicodetab.Flavor{
	"pcre":       unicodetab.Pcre,
	"javascript": unicodetab.JavaScript,
	"js":         unicodetab.JavaScript,
	"java":       unicodetab.Java,
	"dotnet":     unicodetab.DotNet,
	"net":        unicodetab.DotNet,
	"python":     unicodetab.Python,
	"py":         unicodetab.Python,
	"ruby":       unicodetab.Ruby,
	"rust":       unicodetab.Rust,
	"re2":        unicodetab.RE2,
}

func parseFlavor(name string) (unicodetab.Flavor, error) {
	f, ok := flavorNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errorutil.New("unknown flavor %q", name)
	}
	return f, nil
}

var featureNames = map[string]feature.Set{
	"grapheme":        feature.Grapheme,
	"numberedgroups":  feature.NumberedGroups,
	"namedgroups":     feature.NamedGroups,
	"atomicgroups":    feature.AtomicGroups,
	"references":      feature.References,
	"lazymode":        feature.LazyMode,
	"asciimode":       feature.AsciiMode,
	"ranges":          feature.Ranges,
	"variables":       feature.Variables,
	"lookahead":       feature.Lookahead,
	"lookbehind":      feature.Lookbehind,
	"boundaries":      feature.Boundaries,
	"regexes":         feature.Regexes,
	"dot":             feature.Dot,
	"recursion":       feature.Recursion,
	"intersection":    feature.Intersection,
}

func featureByName(name string) (feature.Set, error) {
	bit, ok := featureNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errorutil.New("unknown feature %q", name)
	}
	return bit, nil
}
