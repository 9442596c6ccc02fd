// Package config holds the server's startup configuration and the
// cobra/pflag/viper wiring that builds it, in the same shape as the
// teacher's own config.go.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is every option from spec §6.3, with its default.
type Config struct {
	BindAddr          string
	Debug             bool
	Threads           int
	MaxSession        int
	SessionCapacity   int
	Tick              time.Duration
	BroadcastInterval time.Duration
	MaxUser           int
	MaxParticipant    int
}

// Validate mirrors the teacher's Config.validate: reject combinations
// that can never produce a working server.
func (c *Config) Validate() error {
	if c.Threads < 1 {
		return fmt.Errorf("invalid threads (must be >= 1): %d", c.Threads)
	}
	if c.MaxSession < 1 {
		return fmt.Errorf("invalid max-session (must be >= 1): %d", c.MaxSession)
	}
	if c.SessionCapacity < 1 {
		return fmt.Errorf("invalid session-capacity (must be >= 1): %d", c.SessionCapacity)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("invalid tick (must be > 0): %s", c.Tick)
	}
	if c.BroadcastInterval <= 0 {
		return fmt.Errorf("invalid broadcast-interval (must be > 0): %s", c.BroadcastInterval)
	}
	if c.MaxUser < 1 {
		return fmt.Errorf("invalid max-user (must be >= 1): %d", c.MaxUser)
	}
	if c.MaxParticipant < 4 {
		return fmt.Errorf("invalid max-participant (must be >= 4): %d", c.MaxParticipant)
	}
	return nil
}

// envPrefix is the viper environment variable prefix for every flag.
const envPrefix = "BUGHOUSE"

// NewCmd builds the root cobra command, binding every flag to viper
// under envPrefix, the same normalizer/bind-loop shape as the
// teacher's newCmd.
func NewCmd(cfg *Config, run func(cmd *cobra.Command, args []string) error) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "bughouseserver",
		Short:         "A real-time bughouse chess session server.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.BindAddr, "bind-addr", "127.0.0.1:8080", "HTTP bind address (env: BUGHOUSE_BIND_ADDR)")
	fs.BoolVar(&cfg.Debug, "debug", false, "verbose diagnostics (env: BUGHOUSE_DEBUG)")
	fs.IntVar(&cfg.Threads, "threads", 2, "executor worker count; 1 means single-threaded (env: BUGHOUSE_THREADS)")
	fs.IntVar(&cfg.MaxSession, "max-session", 10, "soft registry cap (env: BUGHOUSE_MAX_SESSION)")
	fs.IntVar(&cfg.SessionCapacity, "session-capacity", 4, "session command-channel capacity (env: BUGHOUSE_SESSION_CAPACITY)")
	fs.DurationVar(&cfg.Tick, "tick", 2*time.Second, "clock/end-condition poll interval (env: BUGHOUSE_TICK)")
	fs.DurationVar(&cfg.BroadcastInterval, "broadcast-interval", 20*time.Second, "periodic snapshot interval (env: BUGHOUSE_BROADCAST_INTERVAL)")
	fs.IntVar(&cfg.MaxUser, "max-user", 20, "per-session user cap (env: BUGHOUSE_MAX_USER)")
	fs.IntVar(&cfg.MaxParticipant, "max-participant", 5, "participants upper bound (env: BUGHOUSE_MAX_PARTICIPANT)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
