// Package config loads the benchmark workload description.
//
// Values come from, in increasing precedence: built-in defaults, an optional
// config file (any format viper understands: YAML, TOML, JSON, ...), and
// LRUBENCH_* environment variables. Command-line flags are applied on top by
// the caller.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to upper-cased keys, e.g. LRUBENCH_CAPACITY.
const EnvPrefix = "LRUBENCH"

// Key distributions understood by the workload generator.
const (
	DistSeq  = "seq"  // round-robin over the keyspace
	DistZipf = "zipf" // skewed, few hot keys
	DistUUID = "uuid" // random UUIDs, every key is new (pure scan)
)

// Workload describes one synthetic run against the cache.
type Workload struct {
	Capacity int `mapstructure:"capacity"` // cache capacity (entries)

	Workers  int           `mapstructure:"workers"`  // worker goroutines sharing the cache
	Duration time.Duration `mapstructure:"duration"` // run length
	ReadPct  int           `mapstructure:"reads"`    // share of reads [0..100]

	// ComputePct is the share of reads served through ComputeIfAbsent
	// instead of Get [0..100].
	ComputePct int `mapstructure:"computes"`

	Keys  int     `mapstructure:"keys"` // keyspace size (seq, zipf)
	Dist  string  `mapstructure:"dist"`
	ZipfS float64 `mapstructure:"zipf_s"` // Zipf s > 1 (skew)
	ZipfV float64 `mapstructure:"zipf_v"` // Zipf v >= 1
	Seed  int64   `mapstructure:"seed"`

	Preload int     `mapstructure:"preload"` // entries set before the run; 0 = Capacity/2
	Rate    float64 `mapstructure:"rate"`    // total ops/s limit; 0 = unlimited

	HTTPAddr string `mapstructure:"http"`      // serve /metrics and /debug/pprof; empty = disabled
	LogLevel string `mapstructure:"log_level"` // debug|info|warn|error
}

// Defaults returns the built-in workload.
func Defaults() Workload {
	return Workload{
		Capacity:   100_000,
		Workers:    8,
		Duration:   10 * time.Second,
		ReadPct:    80,
		ComputePct: 25,
		Keys:       1_000_000,
		Dist:       DistZipf,
		ZipfS:      1.1,
		ZipfV:      1.0,
		Seed:       1,
		LogLevel:   "info",
	}
}

// Load reads the workload from defaults, the file at path (if non-empty)
// and the environment, then validates it.
func Load(path string) (Workload, error) {
	v := viper.New()
	setDefaults(v, Defaults())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Workload{}, errors.Wrapf(err, "config: read %s", path)
		}
	}

	var w Workload
	if err := v.Unmarshal(&w); err != nil {
		return Workload{}, errors.Wrap(err, "config: decode")
	}
	if err := w.Validate(); err != nil {
		return Workload{}, err
	}
	return w, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it on Unmarshal.
func setDefaults(v *viper.Viper, d Workload) {
	v.SetDefault("capacity", d.Capacity)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("duration", d.Duration)
	v.SetDefault("reads", d.ReadPct)
	v.SetDefault("computes", d.ComputePct)
	v.SetDefault("keys", d.Keys)
	v.SetDefault("dist", d.Dist)
	v.SetDefault("zipf_s", d.ZipfS)
	v.SetDefault("zipf_v", d.ZipfV)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("preload", d.Preload)
	v.SetDefault("rate", d.Rate)
	v.SetDefault("http", d.HTTPAddr)
	v.SetDefault("log_level", d.LogLevel)
}

// Validate reports the first invalid field.
func (w Workload) Validate() error {
	switch {
	case w.Capacity < 0:
		return errors.Errorf("config: capacity must be >= 0, got %d", w.Capacity)
	case w.Workers <= 0:
		return errors.Errorf("config: workers must be > 0, got %d", w.Workers)
	case w.Duration <= 0:
		return errors.Errorf("config: duration must be > 0, got %v", w.Duration)
	case w.ReadPct < 0 || w.ReadPct > 100:
		return errors.Errorf("config: reads must be in [0..100], got %d", w.ReadPct)
	case w.ComputePct < 0 || w.ComputePct > 100:
		return errors.Errorf("config: computes must be in [0..100], got %d", w.ComputePct)
	case w.Preload < 0:
		return errors.Errorf("config: preload must be >= 0, got %d", w.Preload)
	case w.Rate < 0:
		return errors.Errorf("config: rate must be >= 0, got %v", w.Rate)
	}

	switch w.Dist {
	case DistSeq:
		if w.Keys <= 0 {
			return errors.Errorf("config: keys must be > 0, got %d", w.Keys)
		}
	case DistZipf:
		if w.Keys <= 0 {
			return errors.Errorf("config: keys must be > 0, got %d", w.Keys)
		}
		if w.ZipfS <= 1 || w.ZipfV < 1 {
			return errors.Errorf("config: zipf needs s > 1 and v >= 1, got s=%v v=%v", w.ZipfS, w.ZipfV)
		}
	case DistUUID:
	default:
		return errors.Errorf("config: unknown dist %q (use %s | %s | %s)", w.Dist, DistSeq, DistZipf, DistUUID)
	}

	if _, err := w.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (w Workload) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(w.LogLevel)); err != nil {
		return l, errors.Wrapf(err, "config: log_level %q", w.LogLevel)
	}
	return l, nil
}

// PreloadCount returns how many entries to set before the run.
func (w Workload) PreloadCount() int {
	if w.Preload == 0 {
		return w.Capacity / 2
	}
	return w.Preload
}
