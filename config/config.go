package config

import (
	"errors"

	"github.com/namsral/flag"
)

// Config carries the cache settings shared by the bench tool and any
// host engine embedding the cache.
type Config struct {
	TableSize          int     // entries; rounded up to a power of two
	MemFraction        float64 // alternative sizing: fraction of system memory
	BucketCount        int     // lock buckets; rounded up to a power of two
	EnableStatistics   bool
	EnablePrefetching  bool
	MaxRepetitionPlies int
	AgeEventInterval   uint64
	Threads            int
}

var (
	ErrNoTableSize  = errors.New("config: one of table-size or mem-fraction must be set")
	ErrNoBuckets    = errors.New("config: bucket-count must be positive")
	ErrBadThreads   = errors.New("config: threads must be positive")
	ErrBadFraction  = errors.New("config: mem-fraction must be below 1")
	ErrBadRepPlies  = errors.New("config: max-repetition-plies must be positive")
)

func DefaultConfig() Config {
	return Config{
		TableSize:          1 << 20,
		BucketCount:        64,
		EnableStatistics:   true,
		MaxRepetitionPlies: 256,
		AgeEventInterval:   1 << 16,
		Threads:            4,
	}
}

func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("sente", flag.ContinueOnError)
	fs.IntVar(&c.TableSize, "table-size", 1<<20, "transposition table size in entries, rounded up to a power of two")
	fs.Float64Var(&c.MemFraction, "mem-fraction", 0, "size the table as this fraction of system memory instead of table-size")
	fs.IntVar(&c.BucketCount, "bucket-count", 64, "number of independent write-lock buckets")
	fs.BoolVar(&c.EnableStatistics, "stats", true, "collect probe/store/hit statistics")
	fs.BoolVar(&c.EnablePrefetching, "prefetch", false, "issue prefetch hints on probe")
	fs.IntVar(&c.MaxRepetitionPlies, "max-repetition-plies", 256, "repetition history length per search line")
	fs.Uint64Var(&c.AgeEventInterval, "age-event-interval", 1<<16, "search events per age-clock tick")
	fs.IntVar(&c.Threads, "threads", 4, "number of search lanes")
	return fs.Parse(args)
}

// Validate catches bad settings at startup; construction never has to
// handle them mid-run.
func (c *Config) Validate() error {
	if c.TableSize <= 0 && c.MemFraction <= 0 {
		return ErrNoTableSize
	}
	if c.MemFraction >= 1 {
		return ErrBadFraction
	}
	if c.BucketCount <= 0 {
		return ErrNoBuckets
	}
	if c.Threads <= 0 {
		return ErrBadThreads
	}
	if c.MaxRepetitionPlies <= 0 {
		return ErrBadRepPlies
	}
	return nil
}
