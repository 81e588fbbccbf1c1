package main

import (
	"fmt"

	"git.gammaspectra.live/P2Pool/sph/registry"
	"github.com/alecthomas/kong"
)

type listCmd struct{}

func (cmd *listCmd) Run(ctx *kong.Context, reg *registry.Registry) error {
	for _, id := range reg.Algorithms() {
		d, err := reg.New(id)
		if err != nil {
			return err
		}

		if _, err = fmt.Fprintf(ctx.Stdout, "%-12s %-12s %4d bits, %3d byte blocks\n", id, d.Name(), d.Size()*8, d.BlockSize()); err != nil {
			return err
		}
	}
	return nil
}
