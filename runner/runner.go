package runner

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"
	fileutil "github.com/projectdiscovery/utils/file"

	"github.com/pomsky-lang/pomsky-sub000/diag"
	"github.com/pomsky-lang/pomsky-sub000/pomsky"
)

// Run executes one CLI invocation: either a single source (file or stdin)
// or, with -dir set, every *.pomsky file under a directory compiled in
// parallel by a worker pool (spec §5: "the surrounding test runner walks a
// directory of *.pomsky files in parallel using a worker pool; each worker
// holds an immutable reference to the parsed options").
func Run(opts *Options) error {
	compileOpts := pomsky.CompileOptions{
		Flavor:          opts.resolvedFlavor,
		MaxRangeDigits:  opts.MaxRangeDigits,
		AllowedFeatures: opts.resolvedAllow,
	}

	if opts.Dir != "" {
		return runDir(opts, compileOpts)
	}
	return runSingle(opts, compileOpts)
}

func runSingle(opts *Options, compileOpts pomsky.CompileOptions) error {
	source, path, err := readSource(opts.Input)
	if err != nil {
		return errorutil.NewWithErr(err).Msgf("failed to read input")
	}

	start := time.Now()
	regex, diagnostics, err := pomsky.Compile(source, compileOpts)
	if err != nil {
		return errorutil.NewWithErr(err).Msgf("compilation failed")
	}
	elapsed := time.Since(start)

	result := pomsky.NewCompilationResult(path, source, regex, diagnostics, elapsed, false)
	return writeResult(opts, result)
}

func runDir(opts *Options, compileOpts pomsky.CompileOptions) error {
	files, err := discoverPomskyFiles(opts.Dir)
	if err != nil {
		return errorutil.NewWithErr(err).Msgf("failed to list %v", opts.Dir)
	}
	if len(files) == 0 {
		gologger.Warning().Msgf("no *.pomsky files found under %v", opts.Dir)
		return nil
	}

	type job struct {
		index int
		path  string
	}
	jobs := make(chan job)
	results := make([]pomsky.CompilationResult, len(files))

	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Each worker only ever reads compileOpts, never mutates it,
			// matching the immutable-shared-options contract spec §5 asks
			// the surrounding test runner to uphold. Writing to results[j.index]
			// is race-free because no two workers ever receive the same index.
			for j := range jobs {
				results[j.index] = compileOne(j.path, compileOpts)
			}
		}()
	}
	for i, path := range files {
		jobs <- job{index: i, path: path}
	}
	close(jobs)
	wg.Wait()

	overallSuccess := true
	for _, r := range results {
		if !r.Success {
			overallSuccess = false
		}
		if err := writeResult(opts, r); err != nil {
			return err
		}
	}
	if !overallSuccess {
		return errorutil.New("one or more files failed to compile")
	}
	return nil
}

// compileOne compiles the file at path and returns its wire result.
func compileOne(path string, compileOpts pomsky.CompileOptions) pomsky.CompilationResult {
	bin, err := os.ReadFile(path)
	if err != nil {
		gologger.Error().Msgf("failed to read %v: %v", path, err)
		return pomsky.NewCompilationResult(path, "", "", []diag.Diagnostic{
			diag.New(diag.KindOther, "", diag.Empty, err.Error()),
		}, 0, false)
	}

	start := time.Now()
	regex, diagnostics, cerr := pomsky.Compile(string(bin), compileOpts)
	if cerr != nil {
		gologger.Error().Msgf("%v: %v", path, cerr)
		diagnostics = append(diagnostics, diag.New(diag.KindOther, "", diag.Empty, cerr.Error()))
	}
	elapsed := time.Since(start)

	return pomsky.NewCompilationResult(path, string(bin), regex, diagnostics, elapsed, false)
}

// readSource returns the source text and a display path: the given file
// path, or "" (stdin) when input is empty or "-".
func readSource(input string) (source string, path string, err error) {
	if input == "" || input == "-" {
		if !fileutil.HasStdin() {
			return "", "", errorutil.New("no input file given and stdin is not a pipe")
		}
		bin, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(bin), "", nil
	}
	bin, err := os.ReadFile(input)
	if err != nil {
		return "", "", err
	}
	return string(bin), input, nil
}

func writeResult(opts *Options, result pomsky.CompilationResult) error {
	var out io.Writer = os.Stdout
	if opts.Output != "" {
		f, err := os.OpenFile(opts.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errorutil.NewWithErr(err).Msgf("failed to open %v", opts.Output)
		}
		defer f.Close()
		out = f
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		return enc.Encode(result)
	}

	for _, d := range result.Diagnostics {
		if d.Severity == "error" {
			gologger.Error().Msgf("[%s] %s (%d..%d)", d.Code, d.Description, spanStart(d), spanEnd(d))
		} else {
			gologger.Warning().Msgf("[%s] %s", d.Code, d.Description)
		}
	}
	if result.Output != nil {
		io.WriteString(out, *result.Output+"\n")
	}
	return nil
}

func spanStart(d diag.Record) uint32 {
	if len(d.Spans) == 0 {
		return 0
	}
	return d.Spans[0].Start
}

func spanEnd(d diag.Record) uint32 {
	if len(d.Spans) == 0 {
		return 0
	}
	return d.Spans[0].End
}
