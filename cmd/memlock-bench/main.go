package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/mirkobrombin/go-memlock/v1/harness"
	"github.com/mirkobrombin/go-memlock/v1/lock"
	"github.com/mirkobrombin/go-memlock/v1/ordering"
)

var (
	iterations = flag.Int("n", 200000, "Lock/unlock cycles per participant")
	target     = flag.String("target", "all", "Target: peterson-seqcst, peterson-acqrel, peterson-plain, spinlock, sync-mutex")
	timeout    = flag.Duration("timeout", 30*time.Second, "Per-target deadline")
)

func main() {
	flag.Parse()

	targets := strings.Split(*target, ",")
	if *target == "all" {
		targets = []string{"peterson-seqcst", "peterson-acqrel", "peterson-plain", "spinlock", "sync-mutex"}
	}

	fmt.Printf("| %-16s | %-12s | %-10s | %-12s |\n", "Lock", "Ops/sec", "Elapsed", "Max holders")
	fmt.Println("|:---|:---|:---|:---|")

	for _, t := range targets {
		runBenchmark(strings.TrimSpace(t))
	}
}

func runBenchmark(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	totalOps := 2 * (*iterations)

	if mode, ok := strings.CutPrefix(name, "peterson-"); ok {
		m, ok := ordering.ParseMode(mode)
		if !ok {
			log.Printf("unknown peterson mode %q, skipping", mode)
			return
		}
		rep, err := harness.Run(ctx, harness.Config{Mode: m, Iterations: *iterations})
		if err != nil {
			fmt.Printf("| %-16s | %-12s | %-10s | %-12s |\n", name, "-", "-", err.Error())
			return
		}
		printRow(name, totalOps, rep.Elapsed, fmt.Sprintf("%d", rep.MaxHolders))
		return
	}

	var lockFn, unlockFn func()
	switch name {
	case "spinlock":
		var l lock.SpinLock
		lockFn, unlockFn = l.Lock, l.Unlock
	case "sync-mutex":
		var mu sync.Mutex
		lockFn, unlockFn = mu.Lock, mu.Unlock
	default:
		log.Printf("unknown target %q, skipping", name)
		return
	}

	var wg sync.WaitGroup
	start := time.Now()
	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < *iterations; i++ {
				lockFn()
				unlockFn()
			}
		}()
	}
	wg.Wait()
	printRow(name, totalOps, time.Since(start), "1")
}

func printRow(name string, ops int, elapsed time.Duration, holders string) {
	opsPerSec := float64(ops) / elapsed.Seconds()
	fmt.Printf("| %-16s | %-12.0f | %-10s | %-12s |\n", name, opsPerSec, elapsed.Round(time.Millisecond), holders)
}
