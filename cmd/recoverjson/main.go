// Command recoverjson parses a JSON value from stdin or an argument,
// optionally with error recovery armed, and prints the resulting value and
// any diagnostic.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"go.uber.org/zap"

	"github.com/alecthomas/parsec"
	"github.com/alecthomas/parsec/json"
)

var (
	version string = "dev"
	cli     struct {
		Version kong.VersionFlag
		Recover bool   `help:"Arm error recovery instead of stopping at the first error."`
		Trace   bool   `help:"Log each JSON value rule entered, via a structured logger."`
		Input   string `arg:"" optional:"" help:"JSON text to parse; reads stdin if omitted."`
	}
)

func main() {
	kctx := kong.Parse(&cli,
		kong.Description(`Parse a JSON value, with optional error recovery.`),
		kong.Vars{"version": version},
	)
	kctx.FatalIfErrorf(run())
}

func run() error {
	src := cli.Input
	if src == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		src = string(b)
	}

	var opts []parsec.Option
	if cli.Recover {
		opts = append(opts, parsec.WithRecovery())
	}
	if cli.Trace {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
		opts = append(opts, parsec.WithLogger(logger))
	}

	value, err := json.ParseWith(src, opts...)
	repr.Println(value)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return nil
}
