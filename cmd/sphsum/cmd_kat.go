package main

import (
	"fmt"

	"git.gammaspectra.live/P2Pool/sph/kat"
	"git.gammaspectra.live/P2Pool/sph/registry"
	"git.gammaspectra.live/P2Pool/sph/utils"
	"github.com/alecthomas/kong"
)

type katCmd struct {
	JSON  bool     `name:"json" help:"Print every result as JSON."`
	Files []string `arg:"" optional:"" help:"JSON vector files. The built-in vectors are used when none is given."`
}

func (cmd *katCmd) Run(ctx *kong.Context, reg *registry.Registry) error {
	var vectors []kat.Vector
	if len(cmd.Files) == 0 {
		vectors = kat.Builtin()
	}
	for _, path := range cmd.Files {
		v, err := kat.LoadFile(path)
		if err != nil {
			return err
		}
		vectors = append(vectors, v...)
	}

	results, err := kat.Run(reg, vectors)
	if err != nil {
		return err
	}

	if cmd.JSON {
		buf, err := utils.MarshalJSON(results)
		if err != nil {
			return err
		}
		if _, err = fmt.Fprintf(ctx.Stdout, "%s\n", buf); err != nil {
			return err
		}
	}

	failed := kat.Failed(results)
	utils.Logf("KAT", "%d vectors, %d passed, %d failed", len(results), len(results)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d vectors failed", failed, len(results))
	}

	_, err = fmt.Fprintf(ctx.Stdout, "%d vectors passed\n", len(results))
	return err
}
