package main

import (
	"io"
	"os"

	"git.gammaspectra.live/P2Pool/sph/registry"
	"git.gammaspectra.live/P2Pool/sph/utils"
	"github.com/alecthomas/kong"
)

type cli struct {
	Debug     bool `help:"Log progress and debug messages, including passing test vectors."`
	LogCaller bool `help:"Prefix log lines with the calling file, line and function."`

	List  listCmd  `cmd:"" help:"List the supported algorithms."`
	Sum   sumCmd   `cmd:"" default:"withargs" help:"Print the digest of files."`
	KAT   katCmd   `cmd:"" name:"kat" help:"Run known-answer test vectors."`
	Bench benchCmd `cmd:"" help:"Measure hashing throughput."`
}

func (c *cli) AfterApply() error {
	if c.Debug {
		utils.GlobalLogLevel |= utils.LogLevelNotice | utils.LogLevelDebug
	}
	if c.LogCaller {
		utils.LogFile = true
		utils.LogFunc = true
	}
	return nil
}

func newParser(c *cli, stdout, stderr io.Writer) (*kong.Kong, error) {
	return kong.New(c,
		kong.Name("sphsum"),
		kong.Description("Compute and verify BLAKE, BMW, Shabal and Keccak digests."),
		kong.Writers(stdout, stderr),
		kong.Bind(registry.Default()),
		kong.UsageOnError(),
	)
}

func main() {
	var c cli

	parser, err := newParser(&c, os.Stdout, os.Stderr)
	if err != nil {
		utils.Fatalf("sphsum: %s", err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(path)
}
