package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/fgantt/sente/config"
	"github.com/fgantt/sente/repetition"
	"github.com/fgantt/sente/shogi"
	"github.com/fgantt/sente/transposition"
	"github.com/fgantt/sente/zobrist"
)

const movesPerLane = 200000

func main() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	log.Logger = log.Output(output)

	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("parsing flags")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("validating config")
	}

	if profilePath := os.Getenv("TTBENCH_PROFILE"); profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("creating profile file")
		}
		defer f.Close()
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	mgr := transposition.NewManager(cfg.AgeEventInterval)
	table, err := transposition.New(transposition.Options{
		Entries:     cfg.TableSize,
		MemFraction: cfg.MemFraction,
		Buckets:     cfg.BucketCount,
		Statistics:  cfg.EnableStatistics,
		Prefetching: cfg.EnablePrefetching,
		Policy:      transposition.DepthAgeCombined,
	}, mgr)
	if err != nil {
		log.Fatal().Err(err).Msg("creating table")
	}

	z := &zobrist.Zobrist{}
	z.Initialize()

	log.Info().Int("threads", cfg.Threads).Int("moves-per-lane", movesPerLane).
		Msg("starting store/probe storm")
	tstart := time.Now()

	g := errgroup.Group{}
	for lane := 0; lane < cfg.Threads; lane++ {
		lane := lane
		g.Go(func() error {
			runLane(lane, table, mgr, z, cfg.MaxRepetitionPlies)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("bench lane failed")
	}
	elapsed := time.Since(tstart)

	stats := table.Stats()
	log.Info().
		Dur("elapsed", elapsed).
		Uint64("probes", stats.TotalProbes).
		Uint64("hits", stats.Hits).
		Uint64("misses", stats.Misses).
		Uint64("stores", stats.Stores).
		Uint64("replacements", stats.Replacements).
		Uint64("atomic-operations", stats.AtomicOperations).
		Uint64("poison-recoveries", stats.PoisonRecoveries).
		Float64("hit-rate", stats.HitRate).
		Uint32("final-age", mgr.Age()).
		Msg("storm-complete")
}

// runLane plays random move sequences from the start position,
// maintaining the incremental hash and repetition state exactly the way
// a search lane would, probing before every move and storing after.
func runLane(lane int, table *transposition.Table, mgr *transposition.Manager,
	z *zobrist.Zobrist, maxRepPlies int) {

	seed := make([]byte, 32)
	seed[0] = byte(lane + 1)
	rng := frand.NewCustom(seed, 1024, 12)

	pos := shogi.StartPosition()
	tracker := repetition.NewTracker(maxRepPlies)
	rep := repetition.None
	hash := z.Hash(pos, rep)
	tracker.Push(hash)

	for i := 0; i < movesPerLane; i++ {
		m, ok := shogi.SampleMove(pos, rng)
		if !ok {
			pos = shogi.StartPosition()
			tracker.Reset()
			rep = repetition.None
			hash = z.Hash(pos, rep)
			tracker.Push(hash)
			continue
		}
		next := z.AddMove(hash, m, pos, rep, rep)
		table.ProbeWithPrefetch(hash, 0, next)
		pos.ApplyMove(m)
		// Track the class-independent fingerprint, then fold the new
		// class back in.
		base := z.FoldRepetition(next, rep, repetition.None)
		tracker.Push(base)
		newRep := tracker.Classify(base)
		hash = z.FoldRepetition(next, rep, newRep)
		rep = newRep

		table.Store(transposition.Record{
			Hash:    hash,
			Score:   int32(rng.Intn(2001)) - 1000,
			Depth:   uint8(rng.Intn(12)),
			Bound:   transposition.Bound(rng.Intn(3) + 1),
			Move:    m,
			HasMove: true,
			Source:  transposition.SourceMainSearch,
		})
		mgr.IncrementAge(1)
	}
}
