// Command grainsim is the reference simulator. It reads config.txt from the
// working directory, grows grains, writes board.txt and prints its timings
// to stdout in the time-log format.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"voxca/internal/board"
	"voxca/internal/jobconf"
	"voxca/internal/sims/grain"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	start := time.Now()
	f, err := os.Open(jobconf.FileName)
	if err != nil {
		return err
	}
	fields, err := jobconf.Parse(f)
	f.Close()
	if err != nil {
		return err
	}
	cfg, warnings := grain.FromFields(fields)
	for _, w := range warnings {
		fmt.Println(w)
	}
	fmt.Printf("ReadConfig=%d\n", ms(start))

	seed := cfg.Seed
	if !cfg.HasSeed {
		seed = time.Now().UnixNano()
	}

	start = time.Now()
	a := grain.New(cfg)
	a.Reset(seed)

	var iterations []string
	growStart := time.Now()
	last := time.Now()
	a.Grow(func(int) {
		iterations = append(iterations, strconv.FormatInt(ms(last), 10))
		last = time.Now()
	})
	fmt.Printf("Iterations=%s\n", joinTrailing(iterations))
	fmt.Printf("Structure_generation=%d\n", ms(growStart))

	var mc []string
	mcStart := time.Now()
	for i := 0; i < cfg.MCIterations; i++ {
		t := time.Now()
		a.MonteCarlo(cfg.MCKt)
		mc = append(mc, strconv.FormatInt(ms(t), 10))
	}
	fmt.Printf("MCiterations=%s\n", joinTrailing(mc))
	fmt.Printf("MC=%d\n", ms(mcStart))
	fmt.Printf("AllBoard=%d\n", ms(start))

	start = time.Now()
	if err := board.WriteFile(board.FileName, a.Board()); err != nil {
		return err
	}
	fmt.Printf("WriteToFile=%d\n", ms(start))
	return nil
}

func ms(since time.Time) int64 { return time.Since(since).Milliseconds() }

func joinTrailing(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return strings.Join(values, ",") + ","
}
