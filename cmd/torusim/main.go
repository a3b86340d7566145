package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"torusim/core"
	"torusim/sim"
)

func main() {
	log.SetFlags(0)
	defer func() {
		if r := recover(); r != nil {
			log.Fatal(r)
		}
	}()

	var (
		cfgFile    string
		d, k       int
		rule       string
		cht, bl    int
		lambda     float64
		maxst      int64
		dbg        int
		seed       int64
		svgFile    string
	)

	flag.StringVar(&cfgFile, "c", "", "JSON-encoded configuration file (overrides defaults, overridden by flags below)")
	flag.IntVar(&d, "d", 0, "torus dimensions")
	flag.IntVar(&k, "k", 0, "size per dimension")
	flag.StringVar(&rule, "r", "", "switching rule (a-f)")
	flag.IntVar(&cht, "cht", 0, "channel-hold time per hop, in ticks")
	flag.IntVar(&bl, "bl", -1, "per-node blocked-queue capacity")
	flag.Float64Var(&lambda, "lambda", 0, "per-node packet generation rate")
	flag.Int64Var(&maxst, "maxst", 0, "halt at this simulated time")
	flag.IntVar(&dbg, "dbg", -1, "debug verbosity (0, 1, 2+)")
	flag.Int64Var(&seed, "seed", 0, "PRNG seed")
	flag.StringVar(&svgFile, "svg", "", "write a final-state SVG snapshot to this file")
	flag.Parse()

	log.Println("torus network packet switching simulator")

	cfg := sim.Default()
	if cfgFile != "" {
		var err error
		cfg, err = sim.ReadConfig(cfgFile)
		if err != nil {
			log.Fatalf("reading config: %v", err)
		}
	}
	applyOverrides(cfg, d, k, rule, cht, bl, lambda, maxst, dbg, seed, svgFile)

	if err := cfg.Core.Validate(); err != nil {
		log.Fatal(err)
	}
	printInputInfo(cfg)

	report, err := sim.Run(cfg)
	if err != nil {
		log.Fatal(err)
	}
	printReport(report)
}

func applyOverrides(cfg *sim.Config, d, k int, rule string, cht, bl int, lambda float64, maxst int64, dbg int, seed int64, svgFile string) {
	if d > 0 {
		cfg.Core.D = d
	}
	if k > 0 {
		cfg.Core.K = k
	}
	if rule != "" {
		cfg.Core.Rule = rule[0]
	}
	if cht > 0 {
		cfg.Core.CHT = cht
	}
	if bl >= 0 {
		cfg.Core.BL = bl
	}
	if lambda > 0 {
		cfg.Core.Lambda = lambda
	}
	if maxst > 0 {
		cfg.Core.MaxST = maxst
	}
	if dbg >= 0 {
		cfg.Core.Dbg = core.DebugLevel(dbg)
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if svgFile != "" {
		cfg.Render = &sim.RenderCfg{Mode: "svg", File: svgFile}
	}
}

func printInputInfo(cfg *sim.Config) {
	c := cfg.Core
	log.Printf("d=%d k=%d r=%c cht=%d bl=%d lambda=%g maxst=%d dbg=%d seed=%d",
		c.D, c.K, c.Rule, c.CHT, c.BL, c.Lambda, c.MaxST, c.Dbg, cfg.Seed)
	if c.Dbg >= 1 {
		log.Printf("nodes=%d ports/node=%d channels=%d", c.NumNodes(), c.NumPorts(), c.NumChannels())
	}
}

func printReport(r core.Report) {
	fmt.Printf("simulated time:        %d\n", r.SimTime)
	fmt.Printf("packets generated:     %d\n", r.Generated)
	fmt.Printf("packets delivered:     %d\n", r.Delivered)
	fmt.Printf("packets queued (live): %d\n", r.Queued)
	fmt.Printf("packets dropped:       %d\n", r.Dropped)
	fmt.Printf("throughput:            %.6f packets/tick\n", r.Throughput)
	fmt.Printf("channel load:          %.4f\n", r.Load)
	if r.DropMeaningful {
		fmt.Printf("avg hops:              %.4f\n", r.AvgHops)
		fmt.Printf("avg channel time:      %.4f\n", r.AvgChanTime)
		fmt.Printf("drop/delivered ratio:  %.6f\n", r.DropRatio)
	} else {
		fmt.Println("avg hops:              n/a")
		fmt.Println("avg channel time:      n/a")
		fmt.Println("drop/delivered ratio:  n/a")
	}
	os.Stdout.Sync()
}
