package config

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaultsOK(t *testing.T) {
	cfg := &Config{
		BindAddr:          "127.0.0.1:8080",
		Threads:           2,
		MaxSession:        10,
		SessionCapacity:   4,
		Tick:              2 * time.Second,
		BroadcastInterval: 20 * time.Second,
		MaxUser:           20,
		MaxParticipant:    5,
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsParticipantBoundBelowFour(t *testing.T) {
	cfg := &Config{Threads: 1, MaxSession: 1, SessionCapacity: 1, Tick: time.Second, BroadcastInterval: time.Second, MaxUser: 1, MaxParticipant: 3}
	err := cfg.Validate()
	require.Error(t, err)
}

func TestValidateRejectsZeroTick(t *testing.T) {
	cfg := &Config{Threads: 1, MaxSession: 1, SessionCapacity: 1, Tick: 0, BroadcastInterval: time.Second, MaxUser: 1, MaxParticipant: 4}
	require.Error(t, cfg.Validate())
}

func TestNewCmdAppliesDefaultsOnExecute(t *testing.T) {
	cfg := &Config{}
	ran := false
	cmd := NewCmd(cfg, func(cmd *cobra.Command, args []string) error {
		ran = true
		return nil
	})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.True(t, ran)
	assert.Equal(t, "127.0.0.1:8080", cfg.BindAddr)
	assert.Equal(t, 5, cfg.MaxParticipant)
}
