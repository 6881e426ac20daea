// Package server implements agent mode: poll the X server for output
// changes, re-resolve the EDID matching, re-apply the configuration, and
// optionally report per-output state over MQTT.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/coreos/go-systemd/daemon"

	"github.com/wejn/xrandr-by-edid/match"
	"github.com/wejn/xrandr-by-edid/mqtt"
	"github.com/wejn/xrandr-by-edid/outputs"
	"github.com/wejn/xrandr-by-edid/outputs/xrandr"
)

// Agent watches the set of connected outputs and keeps the resolved
// configuration applied. Nothing is persisted between refreshes; the
// fingerprint only deduplicates applies within one process lifetime.
type Agent struct {
	MachineID   string
	TopicPrefix string
	Matcher     *match.Matcher
	Prefix      []string
	Interval    time.Duration

	mqttClient *mqtt.Client

	lastFingerprint string
	lastOutputs     map[string]bool
	ready           bool
}

func New(machineID string, topicPrefix string, matcher *match.Matcher, prefix []string, interval time.Duration) *Agent {
	return &Agent{
		MachineID:   machineID,
		TopicPrefix: topicPrefix,
		Matcher:     matcher,
		Prefix:      prefix,
		Interval:    interval,
		lastOutputs: make(map[string]bool),
	}
}

func (a *Agent) Close() {
	if a.mqttClient != nil {
		log.Debug("closing mqtt client")
		a.mqttClient.Close()
	}
}

// Run polls for output changes until the context is cancelled. An empty
// brokerURL disables MQTT reporting.
func (a *Agent) Run(ctx context.Context, brokerURL string) error {
	if brokerURL != "" {
		client, err := mqtt.Connect(brokerURL)
		if err != nil {
			return fmt.Errorf("unable to connect to mqtt: %w", err)
		}
		a.mqttClient = client
	}

	log.WithFields(log.Fields{
		"machineID":   a.MachineID,
		"topicPrefix": a.TopicPrefix,
		"interval":    a.Interval,
	}).Info("agent started")

	ticker := time.NewTicker(a.Interval)
	defer ticker.Stop()

	for {
		if err := a.refresh(); err != nil {
			log.WithError(err).Error("failed to refresh outputs")
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			log.Debug("agent stopping")
			return nil
		}
	}
}

// refresh re-discovers the outputs and, when their set changed, re-runs
// matching and re-applies the configuration.
func (a *Agent) refresh() error {
	outs, err := xrandr.Discover()
	if err != nil {
		return err
	}

	fp := fingerprint(outs)
	if fp == a.lastFingerprint {
		daemon.SdNotify(false, "WATCHDOG=1")
		return nil
	}
	log.WithField("outputs", len(outs)).Info("output topology changed")

	assignments, err := a.Matcher.Match(outs)
	if err != nil {
		return err
	}

	if err := xrandr.Apply(xrandr.ComposeArgs(a.Prefix, assignments)); err != nil {
		return fmt.Errorf("unable to apply configuration: %w", err)
	}
	a.lastFingerprint = fp

	a.publish(outs, assignments)

	// mark as ready once the first configuration was applied
	if !a.ready {
		daemon.SdNotify(false, daemon.SdNotifyReady)
		a.ready = true
	}
	daemon.SdNotify(false, "WATCHDOG=1")

	return nil
}

type outputState struct {
	Name     string   `json:"name"`
	Screen   *int     `json:"screen"`
	Identity string   `json:"identity"`
	Serial   string   `json:"serial,omitempty"`
	Args     []string `json:"args"`
}

// publish reports per-output state to the broker, and an empty object for
// outputs that disappeared since the previous refresh.
func (a *Agent) publish(outs []outputs.Output, assignments []match.Assignment) {
	if a.mqttClient == nil {
		return
	}

	byOutput := make(map[string]match.Assignment, len(assignments))
	for _, as := range assignments {
		byOutput[as.Output] = as
	}

	seen := make(map[string]bool, len(outs))
	for i := range outs {
		o := &outs[i]
		seen[o.Name] = true
		l := log.WithField("output", o.Name)

		as := byOutput[o.Name]
		stateJSON, err := json.Marshal(&outputState{
			Name:     o.Name,
			Screen:   o.Screen,
			Identity: outputs.Humanize(o.Identity()),
			Serial:   as.Serial,
			Args:     as.Args,
		})
		if err != nil {
			l.WithError(err).Warn("unable to marshal state json")
			continue
		}
		if err := a.mqttClient.Publish(a.topicForOutput(o.Name)+"/state", stateJSON); err != nil {
			l.WithError(err).Warn("unable to publish output state")
		}
	}

	for name := range a.lastOutputs {
		if !seen[name] {
			if err := a.mqttClient.Publish(a.topicForOutput(name)+"/state", []byte("{}")); err != nil {
				log.WithField("output", name).WithError(err).Warn("unable to publish output removal")
			}
		}
	}
	a.lastOutputs = seen
}

func (a *Agent) topicForOutput(name string) string {
	return a.TopicPrefix + "/" + name + "@" + a.MachineID
}

func fingerprint(outs []outputs.Output) string {
	parts := make([]string, 0, len(outs))
	for i := range outs {
		parts = append(parts, outs[i].Name+"="+outs[i].Identity())
	}
	return strings.Join(parts, "\n")
}
