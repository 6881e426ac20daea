package main

import (
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wejn/xrandr-by-edid/server"
)

var (
	agentInterval time.Duration
	agentBroker   string
	agentTopic    string

	agentCmd = &cobra.Command{
		Use:   "agent",
		Short: "Watch for output changes and keep the configuration applied",
		Long: `agent polls the xrandr status dump and, whenever the set of connected
outputs changes, re-runs the serial matching and re-applies the resolved
configuration. With --broker set, per-output state is also published to
MQTT under <topic-prefix>/<output>@<machine-id>/state.`,
		RunE: runAgent,
	}
)

func init() {
	agentCmd.Flags().DurationVar(&agentInterval, "interval", 2*time.Second, "poll interval for output changes")
	agentCmd.Flags().StringVar(&agentBroker, "broker", "", "MQTT broker URL for state reporting (disabled when empty)")
	agentCmd.Flags().StringVar(&agentTopic, "topic-prefix", "xrandr-by-edid", "MQTT topic prefix for state reporting")
}

func runAgent(cmd *cobra.Command, args []string) error {
	matcher, err := buildMatcher()
	if err != nil {
		return err
	}

	machineID := "unknown"
	if agentBroker != "" {
		id, err := MachineID()
		if err != nil {
			log.WithError(err).Warn("unable to get machine id")
		} else {
			machineID = id
		}
	}

	a := server.New(machineID, agentTopic, matcher, strings.Fields(prefixArgs), agentInterval)
	defer a.Close()
	return a.Run(cmd.Context(), agentBroker)
}
