package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"git.gammaspectra.live/P2Pool/sph/registry"
	"git.gammaspectra.live/P2Pool/sph/types"
	"git.gammaspectra.live/P2Pool/sph/utils"
	"github.com/alecthomas/kong"
)

var errStdinTwice = errors.New("stdin can only be hashed once")

type sumCmd struct {
	Algorithm string   `short:"a" default:"BLAKE512" help:"The algorithm to use."`
	JSON      bool     `name:"json" help:"Print a JSON array instead of one line per file."`
	Jobs      int      `short:"j" default:"0" help:"Files hashed in parallel, 0 for one per CPU."`
	Files     []string `arg:"" optional:"" default:"-" help:"The files to hash, - for stdin."`
}

type fileSum struct {
	Path      string             `json:"path"`
	Algorithm registry.Algorithm `json:"algorithm"`
	Digest    types.Sum          `json:"digest"`
}

func (cmd *sumCmd) Run(ctx *kong.Context, reg *registry.Registry) error {
	id, err := reg.Lookup(cmd.Algorithm)
	if err != nil {
		return err
	}

	if slices.Index(cmd.Files, "-") != slices.LastIndex(cmd.Files, "-") {
		return errStdinTwice
	}

	sums := make([]fileSum, len(cmd.Files))
	err = utils.SplitWork(context.Background(), cmd.Jobs, uint64(len(cmd.Files)), func(ctx context.Context, workIndex uint64, routineIndex int) error {
		path := cmd.Files[workIndex]
		sum, err := hashFile(reg, id, path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		utils.Noticef("sum", "routine %d hashed %s", routineIndex, path)
		sums[workIndex] = fileSum{Path: path, Algorithm: id, Digest: sum}
		return nil
	})
	if err != nil {
		return err
	}

	if cmd.JSON {
		buf, err := utils.MarshalJSONIndent(sums, "\t")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(ctx.Stdout, "%s\n", buf)
		return err
	}

	for _, s := range sums {
		if _, err = fmt.Fprintf(ctx.Stdout, "%s  %s\n", s.Digest, s.Path); err != nil {
			return err
		}
	}
	return nil
}

func hashFile(reg *registry.Registry, id registry.Algorithm, path string) (types.Sum, error) {
	d, err := reg.New(id)
	if err != nil {
		return nil, err
	}

	src, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	if _, err = io.Copy(d, src); err != nil {
		return nil, err
	}
	return d.Sum(nil), nil
}
