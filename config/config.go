// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/asgdnmf/matrix"
	"github.com/katalvlaran/asgdnmf/nmf"
	"github.com/katalvlaran/asgdnmf/walk"
)

// Env variable names.
const (
	EnvRank            = "NMF_RANK"
	EnvSeed            = "NMF_SEED"
	EnvBatchSize       = "NMF_BATCH_SIZE"
	EnvWindowSize      = "NMF_WINDOW_SIZE"
	EnvWarpProb        = "NMF_WARP_PROB"
	EnvStartPolicy     = "NMF_START_POLICY"
	EnvLearningRate    = "NMF_LEARNING_RATE"
	EnvIterPerNode     = "NMF_ITER_PER_NODE"
	EnvBufferFactor    = "NMF_BUFFER_FACTOR"
	EnvLossReportEvery = "NMF_LOSS_REPORT_EVERY"
	EnvSamplers        = "NMF_SAMPLER_WORKERS"
	EnvTrainers        = "NMF_TRAINER_WORKERS"
)

// DefaultRank is used when neither file nor environment sets a rank.
const DefaultRank = 2

// Config is the YAML document and environment view of a fit run.
type Config struct {
	Rank     int      `yaml:"rank"`
	Seed     *int64   `yaml:"seed,omitempty"`
	Sampling Sampling `yaml:"sampling"`
	Training Training `yaml:"training"`
	Workers  Workers  `yaml:"workers"`
}

// Sampling configures the random-walk batch producers.
type Sampling struct {
	BatchSize   int     `yaml:"batch_size"`
	WindowSize  int     `yaml:"window_size"`
	WarpProb    float64 `yaml:"warp_prob"`
	StartPolicy string  `yaml:"start_policy"`
}

// Training configures the gradient steps and the replay buffer.
type Training struct {
	LearningRate    float64 `yaml:"learning_rate"`
	IterPerNode     int     `yaml:"iter_per_node"`
	BufferFactor    int     `yaml:"buffer_factor"`
	LossReportEvery int     `yaml:"loss_report_every"`
}

// Workers holds pool sizes; 0 means nmf.DefaultWorkers().
type Workers struct {
	Samplers int `yaml:"samplers"`
	Trainers int `yaml:"trainers"`
}

// Default returns the nmf defaults.
func Default() *Config {
	return &Config{
		Rank: DefaultRank,
		Sampling: Sampling{
			BatchSize:   nmf.DefaultBatchSize,
			WindowSize:  nmf.DefaultWindowSize,
			WarpProb:    nmf.DefaultWarpProb,
			StartPolicy: walk.UnvisitedFirst.String(),
		},
		Training: Training{
			LearningRate: nmf.DefaultLearningRate,
			IterPerNode:  nmf.DefaultIterPerNode,
			BufferFactor: nmf.DefaultBufferFactor,
		},
	}
}

// Load reads path (skipped when empty) over Default, applies the
// environment and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv overrides fields from NMF_* variables. A set but unparsable
// variable is an error.
func (c *Config) ApplyEnv() error {
	var err error
	set := func(e error) {
		if err == nil && e != nil {
			err = e
		}
	}
	set(envInt(EnvRank, &c.Rank))
	set(envInt(EnvBatchSize, &c.Sampling.BatchSize))
	set(envInt(EnvWindowSize, &c.Sampling.WindowSize))
	set(envFloat(EnvWarpProb, &c.Sampling.WarpProb))
	c.Sampling.StartPolicy = getEnv(EnvStartPolicy, c.Sampling.StartPolicy)
	set(envFloat(EnvLearningRate, &c.Training.LearningRate))
	set(envInt(EnvIterPerNode, &c.Training.IterPerNode))
	set(envInt(EnvBufferFactor, &c.Training.BufferFactor))
	set(envInt(EnvLossReportEvery, &c.Training.LossReportEvery))
	set(envInt(EnvSamplers, &c.Workers.Samplers))
	set(envInt(EnvTrainers, &c.Workers.Trainers))
	if v := os.Getenv(EnvSeed); v != "" {
		seed, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			set(fmt.Errorf("%s=%q: %w", EnvSeed, v, perr))
		} else {
			c.Seed = &seed
		}
	}

	return err
}

// Validate checks every field range.
func (c *Config) Validate() error {
	switch {
	case c.Rank < 1:
		return invalid("rank", c.Rank)
	case c.Sampling.BatchSize < 1:
		return invalid("sampling.batch_size", c.Sampling.BatchSize)
	case c.Sampling.WindowSize < 0:
		return invalid("sampling.window_size", c.Sampling.WindowSize)
	case math.IsNaN(c.Sampling.WarpProb) || c.Sampling.WarpProb < 0 || c.Sampling.WarpProb > 1:
		return invalid("sampling.warp_prob", c.Sampling.WarpProb)
	case !(c.Training.LearningRate > 0) || math.IsInf(c.Training.LearningRate, 0):
		return invalid("training.learning_rate", c.Training.LearningRate)
	case c.Training.IterPerNode < 1:
		return invalid("training.iter_per_node", c.Training.IterPerNode)
	case c.Training.BufferFactor < 1:
		return invalid("training.buffer_factor", c.Training.BufferFactor)
	case c.Training.LossReportEvery < 0:
		return invalid("training.loss_report_every", c.Training.LossReportEvery)
	case c.Workers.Samplers < 0:
		return invalid("workers.samplers", c.Workers.Samplers)
	case c.Workers.Trainers < 0:
		return invalid("workers.trainers", c.Workers.Trainers)
	}
	if _, err := c.startPolicy(); err != nil {
		return err
	}

	return nil
}

func invalid(field string, v any) error {
	return fmt.Errorf("%s=%v: %w", field, v, ErrInvalidConfig)
}

func (c *Config) startPolicy() (walk.StartPolicy, error) {
	switch c.Sampling.StartPolicy {
	case "", walk.UnvisitedFirst.String():
		return walk.UnvisitedFirst, nil
	case walk.UniformStart.String():
		return walk.UniformStart, nil
	default:
		return 0, invalid("sampling.start_policy", c.Sampling.StartPolicy)
	}
}

// SamplerWorkers returns the effective sampler pool size.
func (c *Config) SamplerWorkers() int { return workers(c.Workers.Samplers) }

// TrainerWorkers returns the effective trainer pool size.
func (c *Config) TrainerWorkers() int { return workers(c.Workers.Trainers) }

func workers(n int) int {
	if n == 0 {
		return nmf.DefaultWorkers()
	}

	return max(nmf.MinWorkers, n)
}

// Options converts c into nmf options. Extra options are appended last and
// win. c must be valid.
func (c *Config) Options(extra ...nmf.Option) []nmf.Option {
	policy, _ := c.startPolicy()
	opts := []nmf.Option{
		nmf.WithBatchSize(c.Sampling.BatchSize),
		nmf.WithWindowSize(c.Sampling.WindowSize),
		nmf.WithWarpProb(c.Sampling.WarpProb),
		nmf.WithLearningRate(c.Training.LearningRate),
		nmf.WithIterPerNode(c.Training.IterPerNode),
		nmf.WithBufferFactor(c.Training.BufferFactor),
		nmf.WithSamplerWorkers(c.SamplerWorkers()),
		nmf.WithTrainerWorkers(c.TrainerWorkers()),
		nmf.WithSamplerFactory(func(x *matrix.Sparse) (walk.Sampler, error) {
			return walk.NewNetwork(x, walk.WithStartPolicy(policy))
		}),
	}
	if c.Seed != nil {
		opts = append(opts, nmf.WithSeed(*c.Seed))
	}

	return append(opts, extra...)
}

// Model builds an nmf.Model of rank c.Rank.
func (c *Config) Model(extra ...nmf.Option) (*nmf.Model, error) {
	return nmf.New(c.Rank, c.Options(extra...)...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envInt(key string, dst *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s=%q: %w", key, value, err)
	}
	*dst = v
	return nil
}

func envFloat(key string, dst *float64) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%s=%q: %w", key, value, err)
	}
	*dst = v
	return nil
}
