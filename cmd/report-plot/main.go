// Command report-plot renders the experiment report charts from run,
// probe, and perturbation artifacts.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"attractor-report/internal/artifact"
	"attractor-report/internal/config"
	"attractor-report/internal/report"
)

var plotFlags struct {
	kind           string
	input          string
	outDir         string
	formats        string
	topology       string
	probeTopK      int
	traceFile      string
	perturbSummary []string
	perturbTrials  []string
	perturbLabels  []string
	configPath     string
	bundlePath     string
}

var rootCmd = &cobra.Command{
	Use:   "report-plot",
	Short: "Render experiment report charts from run, probe, and perturbation artifacts",
	RunE:  runPlot,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&plotFlags.kind, "kind", "", "Plot kind: probe, run, run_acc_history, or perturb (required)")
	f.StringVar(&plotFlags.input, "input", "", "Artifact JSON path (required for non-perturb kinds)")
	f.StringVar(&plotFlags.outDir, "outDir", "", "Output directory, created if absent")
	f.StringVar(&plotFlags.formats, "formats", "", "Comma-separated output formats (default png)")
	f.StringVar(&plotFlags.topology, "topology", "", "Topology tag for titles and file names")
	f.IntVar(&plotFlags.probeTopK, "probeTopK", 0, "Number of top probe candidates to plot")
	f.StringVar(&plotFlags.traceFile, "traceFile", "", "Trace JSON to render alongside any kind")
	f.StringArrayVar(&plotFlags.perturbSummary, "perturbSummary", nil, "Perturbation summary JSON (repeatable, comma-splittable)")
	f.StringArrayVar(&plotFlags.perturbTrials, "perturbTrials", nil, "Perturbation trials CSV (repeatable, comma-splittable)")
	f.StringArrayVar(&plotFlags.perturbLabels, "perturbLabel", nil, "Label for the matching perturbation set (repeatable)")
	f.StringVar(&plotFlags.configPath, "config", "", "Optional TOML settings file")
	f.StringVar(&plotFlags.bundlePath, "bundle", "", "Bundle every rendered PNG into this PDF")
	_ = rootCmd.MarkFlagRequired("kind")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("[main] %v", err)
	}
}

func runPlot(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(plotFlags.configPath)
	if err != nil {
		return err
	}
	opts, topK := resolveOptions(cmd, cfg)

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", opts.OutDir, err)
	}

	switch plotFlags.kind {
	case "probe":
		payload, err := loadRequiredProbe()
		if err != nil {
			return err
		}
		if err := report.PlotProbe(payload, opts, topK); err != nil {
			return err
		}
	case "run", "run_acc_history":
		if plotFlags.input == "" {
			return fmt.Errorf("--input is required for kind %q", plotFlags.kind)
		}
		payload, err := artifact.LoadRun(plotFlags.input)
		if err != nil {
			return err
		}
		if plotFlags.kind == "run" {
			if err := report.PlotRun(payload, opts); err != nil {
				return err
			}
		} else {
			if err := report.PlotRunHistory(payload, opts); err != nil {
				return err
			}
		}
	case "perturb":
		sets := collectPerturbSets()
		if len(sets) == 0 {
			log.Printf("[main] no perturbation sets given, nothing to render")
			break
		}
		if err := report.PlotPerturbation(sets, opts); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown kind %q (want probe, run, run_acc_history, or perturb)", plotFlags.kind)
	}

	if plotFlags.traceFile != "" {
		traces, err := artifact.LoadTraces(plotFlags.traceFile)
		if err != nil {
			return err
		}
		if traces != nil {
			if err := report.PlotTraces(traces, opts); err != nil {
				return err
			}
		}
	}

	if plotFlags.bundlePath != "" {
		if err := report.BundlePDF(opts.OutDir, plotFlags.bundlePath); err != nil {
			return err
		}
	}
	return nil
}

// resolveOptions folds the config-file defaults under any flags the user
// actually set.
func resolveOptions(cmd *cobra.Command, cfg config.Config) (report.Options, int) {
	opts := report.Options{
		OutDir:   cfg.OutDir,
		Formats:  cfg.Formats,
		Topology: cfg.Topology,
	}
	topK := cfg.ProbeTopK
	if cmd.Flags().Changed("outDir") {
		opts.OutDir = plotFlags.outDir
	}
	if cmd.Flags().Changed("formats") {
		opts.Formats = splitList([]string{plotFlags.formats})
	}
	if cmd.Flags().Changed("topology") {
		opts.Topology = plotFlags.topology
	}
	if cmd.Flags().Changed("probeTopK") {
		topK = plotFlags.probeTopK
	}
	return opts, topK
}

func loadRequiredProbe() (*artifact.ProbePayload, error) {
	if plotFlags.input == "" {
		return nil, fmt.Errorf("--input is required for kind probe")
	}
	return artifact.LoadProbe(plotFlags.input)
}

// collectPerturbSets zips the repeated summary, trials, and label flags by
// index after comma-splitting each occurrence. Labels missing at an index
// derive from the summary-or-trials path; sets with neither path drop.
func collectPerturbSets() []report.PerturbSet {
	summaries := splitList(plotFlags.perturbSummary)
	trials := splitList(plotFlags.perturbTrials)
	labels := splitList(plotFlags.perturbLabels)

	n := len(summaries)
	if len(trials) > n {
		n = len(trials)
	}

	var sets []report.PerturbSet
	for i := 0; i < n; i++ {
		set := report.PerturbSet{
			SummaryPath: at(summaries, i),
			TrialsPath:  at(trials, i),
		}
		if set.SummaryPath == "" && set.TrialsPath == "" {
			continue
		}
		set.Label = at(labels, i)
		if set.Label == "" {
			src := set.SummaryPath
			if src == "" {
				src = set.TrialsPath
			}
			set.Label = artifact.DeriveLabel(src, fmt.Sprintf("set-%d", i+1))
		}
		sets = append(sets, set)
	}
	return sets
}

// splitList comma-splits every element and concatenates the results,
// dropping empty entries.
func splitList(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}
