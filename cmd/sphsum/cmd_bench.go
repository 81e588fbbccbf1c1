package main

import (
	"fmt"
	"time"

	"git.gammaspectra.live/P2Pool/sph/digest"
	"git.gammaspectra.live/P2Pool/sph/registry"
	"git.gammaspectra.live/P2Pool/sph/utils"
	"github.com/alecthomas/kong"
)

type benchCmd struct {
	Algorithms []string      `name:"algorithm" short:"a" help:"Algorithms to measure, all of them when empty."`
	Size       int           `default:"65536" help:"Bytes per write."`
	Duration   time.Duration `default:"1s" help:"Time spent on each algorithm."`
}

func (cmd *benchCmd) Run(ctx *kong.Context, reg *registry.Registry) error {
	ids := reg.Algorithms()
	if len(cmd.Algorithms) > 0 {
		ids = ids[:0:0]
		for _, name := range cmd.Algorithms {
			id, err := reg.Lookup(name)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
	}

	if cmd.Size <= 0 {
		return fmt.Errorf("invalid size %d", cmd.Size)
	}
	buf := make([]byte, cmd.Size)

	for _, id := range ids {
		d, err := reg.New(id)
		if err != nil {
			return err
		}

		total, elapsed := measure(d, buf, cmd.Duration)

		utils.Debugf("bench", "%s: %d bytes in %s", id, total, elapsed)
		if _, err = fmt.Fprintf(ctx.Stdout, "%-12s %sB/s\n", id, utils.SiUnits(float64(total)/elapsed.Seconds(), 2)); err != nil {
			return err
		}
	}
	return nil
}

// measure writes buf into d until duration has passed, then finalizes once. buf is only read.
func measure(d digest.Digest, buf []byte, duration time.Duration) (total uint64, elapsed time.Duration) {
	start := time.Now()
	for time.Since(start) < duration {
		_, _ = d.Write(buf)
		total += uint64(len(buf))
	}
	_ = d.Sum(nil)
	return total, time.Since(start)
}
