package main

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wejn/xrandr-by-edid/match"
	"github.com/wejn/xrandr-by-edid/outputs"
	"github.com/wejn/xrandr-by-edid/outputs/xrandr"
)

var version = "0.1.0"

var (
	verbosity    int
	dryRun       bool
	strict       bool
	defaultArgs  string
	prefixArgs   string
	mappingsFile string
	pairs        pairList

	rootCmd = &cobra.Command{
		Use:   "xrandr-by-edid",
		Short: "Configure X outputs by matching EDID serial substrings",
		Long: `xrandr-by-edid discovers outputs from the xrandr status dump, matches
their EDID blobs against the serials you supply, and invokes xrandr with
the per-output configuration of whichever serial matched. Outputs no
serial matches get the default configuration.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbosity)
			log.WithField("command", cmd.Name()).Debug("command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runApply,
	}
)

// Execute runs the root command. Called by main.main().
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.VarP(&serialFlag{&pairs}, "serial", "s", "serial (or any EDID substring) to match; starts a new mapping")
	pf.VarP(&configFlag{&pairs}, "config", "c", "xrandr arguments for the preceding --serial")
	pf.StringVar(&mappingsFile, "mappings", "", "YAML file with ordered serial/config mappings")
	pf.StringVar(&defaultArgs, "default", "--auto", "xrandr arguments for outputs no serial matches")
	pf.StringVar(&prefixArgs, "prefix", "", "fixed xrandr arguments inserted before the per-output ones")
	pf.BoolVar(&strict, "strict", false, "fail unless every serial matches some output")
	pf.CountVarP(&verbosity, "verbose", "v", "increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the composed xrandr command instead of running it")

	rootCmd.AddCommand(agentCmd)
}

func setupLogging(verbosity int) {
	switch verbosity {
	case 0:
		log.SetLevel(log.WarnLevel)
	case 1:
		log.SetLevel(log.InfoLevel)
	case 2:
		log.SetLevel(log.DebugLevel)
	default:
		log.SetLevel(log.TraceLevel)
	}
}

func runApply(cmd *cobra.Command, args []string) error {
	matcher, err := buildMatcher()
	if err != nil {
		return err
	}

	outs, err := xrandr.Discover()
	if err != nil {
		return err
	}
	log.WithField("outputs", len(outs)).Debug("parsed status dump")

	assignments, err := matcher.Match(outs)
	if err != nil {
		return err
	}

	full := xrandr.ComposeArgs(strings.Fields(prefixArgs), assignments)
	if dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), renderCommand(full))
		return nil
	}
	return xrandr.Apply(full)
}

// buildMatcher assembles the ordered specs from the mappings file (first)
// and the command line pairs, and validates that every serial got a config.
func buildMatcher() (*match.Matcher, error) {
	var specs []match.Spec

	if mappingsFile != "" {
		fromFile, err := loadMappings(mappingsFile)
		if err != nil {
			return nil, err
		}
		specs = append(specs, fromFile...)
	}

	for _, s := range pairs.specs {
		if s.Args == nil {
			return nil, fmt.Errorf("serial %q has no --config", s.Serial)
		}
	}
	specs = append(specs, pairs.specs...)

	m := &match.Matcher{
		Specs:   specs,
		Default: strings.Fields(defaultArgs),
		Strict:  strict,
	}
	if verbosity > 0 {
		m.Diagnose = newDiagnoser()
	}
	return m, nil
}

// newDiagnoser logs identity and current layout for outputs no serial
// claimed. The layout lookup is fetched lazily, once, and degrades to a
// placeholder when `xrandr --listmonitors` is unusable.
func newDiagnoser() func(o outputs.Output) {
	var (
		layout  xrandr.Layout
		ok      bool
		fetched bool
	)
	return func(o outputs.Output) {
		if !fetched {
			layout, ok = xrandr.CurrentLayout()
			fetched = true
		}
		current := outputs.Unknown
		if ok {
			current = layout.Describe(o.Name)
		}
		log.WithFields(log.Fields{
			"output":   o.Name,
			"identity": outputs.Humanize(o.Identity()),
			"current":  current,
		}).Info("output matched no serial")
	}
}

func renderCommand(args []string) string {
	return strings.Join(append([]string{"xrandr"}, args...), " ")
}
