package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	c := Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.TableSize, 1<<20)
	is.Equal(c.BucketCount, 64)
	is.True(c.EnableStatistics)
	is.True(!c.EnablePrefetching)
	is.NoErr(c.Validate())
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	c := Config{}
	is.NoErr(c.Load([]string{
		"-table-size", "4096",
		"-bucket-count", "8",
		"-prefetch",
		"-threads", "2",
	}))
	is.Equal(c.TableSize, 4096)
	is.Equal(c.BucketCount, 8)
	is.True(c.EnablePrefetching)
	is.Equal(c.Threads, 2)
}

func TestValidate(t *testing.T) {
	is := is.New(t)

	c := DefaultConfig()
	is.NoErr(c.Validate())

	c = DefaultConfig()
	c.TableSize = 0
	is.Equal(c.Validate(), ErrNoTableSize)

	c = DefaultConfig()
	c.TableSize = 0
	c.MemFraction = 0.25
	is.NoErr(c.Validate())

	c = DefaultConfig()
	c.MemFraction = 1.5
	is.Equal(c.Validate(), ErrBadFraction)

	c = DefaultConfig()
	c.BucketCount = 0
	is.Equal(c.Validate(), ErrNoBuckets)

	c = DefaultConfig()
	c.Threads = -1
	is.Equal(c.Validate(), ErrBadThreads)

	c = DefaultConfig()
	c.MaxRepetitionPlies = 0
	is.Equal(c.Validate(), ErrBadRepPlies)
}
