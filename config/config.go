// Package config loads the runtime's tunables from a TOML file, the same
// configuration format the wider example pack reaches for via
// github.com/BurntSushi/toml.
package config

import "github.com/BurntSushi/toml"

// Runtime holds the values a platform port and the demo command need at
// startup.
type Runtime struct {
	// DefaultStackSize is the stack byte count TaskCreate callers reach for
	// when they don't have a size-tuning reason to pick their own.
	DefaultStackSize uint32 `toml:"default_stack_size"`
	// IdleEpollBatch bounds how many epoll events port/hosted reads per
	// idle wait on Linux; ignored on other platforms.
	IdleEpollBatch int `toml:"idle_epoll_batch"`
}

// Default is the configuration used when no file is supplied.
func Default() Runtime {
	return Runtime{
		DefaultStackSize: 16 * 1024,
		IdleEpollBatch:   8,
	}
}

// Load decodes a TOML file into a Runtime starting from Default, so a file
// that sets only some fields leaves the rest at their defaults.
func Load(path string) (Runtime, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Runtime{}, err
	}
	return cfg, nil
}
