package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/OpenTraceLab/easyeda2kicad/pkg/convert"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/easyeda"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/footprint"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/model3d"
)

var (
	outputPath   string
	fpName       string
	assembly     string
	strict       bool
	noCourtyard  bool
	modelsDir    string
	requireModel bool
	metricsFile  string
)

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Convert an EasyEDA footprint to .kicad_mod",
	Long: `Converts an EasyEDA footprint, given as component JSON or as a text file
with one shape string per line, into a KiCad footprint.

Without -o the footprint is written to <name>.kicad_mod in the current
directory. Use -o - to write to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (- for stdout)")
	convertCmd.Flags().StringVar(&fpName, "name", "", "footprint name (default: package name from the input)")
	convertCmd.Flags().StringVar(&assembly, "assembly", "", "force assembly process: smt or tht (default: detect)")
	convertCmd.Flags().BoolVar(&strict, "strict", false, "fail when a pad cannot be converted")
	convertCmd.Flags().BoolVar(&noCourtyard, "no-courtyard", false, "do not draw a courtyard")
	convertCmd.Flags().StringVar(&modelsDir, "models-dir", "", "directory holding <uuid>.wrl 3D models")
	convertCmd.Flags().BoolVar(&requireModel, "require-models", false, "fail a 3D model reference when its file is missing")
	convertCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write conversion metrics in Prometheus text format")
}

// buildConverter merges persisted config and flags into a Converter
func buildConverter(cmd *cobra.Command, reg prometheus.Registerer) (*convert.Converter, error) {
	cfg := convert.DefaultConfig()
	appConfig.Apply(cfg)

	cfg.Name = fpName
	cfg.AssemblyProcess = easyeda.AssemblyProcess(assembly)
	cfg.Strict = strict
	if noCourtyard {
		cfg.Courtyard = false
	}

	opts := []convert.Option{convert.WithLogger(logger)}

	dir := appConfig.ModelsDir
	if cmd.Flags().Changed("models-dir") {
		dir = modelsDir
	}
	if dir != "" {
		opts = append(opts, convert.WithModelResolver(&model3d.LibraryResolver{
			Dir:         dir,
			RequireFile: requireModel,
			Logger:      logger,
		}))
	}
	if reg != nil {
		opts = append(opts, convert.WithMetrics(convert.NewMetrics(reg)))
	}

	return convert.New(cfg, opts...)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]

	doc, err := easyeda.LoadFile(input)
	if err != nil {
		return fmt.Errorf("error loading %s: %w", input, err)
	}

	var reg *prometheus.Registry
	var registerer prometheus.Registerer
	if metricsFile != "" {
		reg = prometheus.NewRegistry()
		registerer = reg
	}

	converter, err := buildConverter(cmd, registerer)
	if err != nil {
		return err
	}

	fp, report, err := converter.Convert(doc)
	if err != nil {
		return fmt.Errorf("error converting %s: %w", input, err)
	}

	out := outputPath
	if out == "" {
		out = fileNameFor(fp.Name) + ".kicad_mod"
	}

	summary := cmd.OutOrStdout()
	if out == "-" {
		if _, err := fp.WriteTo(cmd.OutOrStdout()); err != nil {
			return err
		}
		summary = cmd.ErrOrStderr()
	} else if err := writeFootprint(out, fp); err != nil {
		return err
	}

	if reg != nil {
		if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	printReport(summary, report, out)
	logger.Debug("wrote footprint", zap.String("path", out))
	return nil
}

func writeFootprint(path string, fp *footprint.Footprint) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := fp.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func printReport(w io.Writer, report *convert.Report, out string) {
	fmt.Fprintf(w, "Footprint: %s (%s)\n", report.Name, report.AssemblyProcess)
	if !report.Bounds.IsEmpty() {
		fmt.Fprintf(w, "  Size: %.2f x %.2f mm\n", report.Bounds.Width(), report.Bounds.Height())
	}
	fmt.Fprintf(w, "  %-12s %8s %8s %8s\n", "Kind", "emitted", "skipped", "failed")
	for _, kind := range report.Kinds() {
		c := report.Counts[kind]
		fmt.Fprintf(w, "  %-12s %8d %8d %8d\n", kind, c[convert.Emitted], c[convert.Skipped], c[convert.Failed])
	}
	for _, f := range report.Failures {
		fmt.Fprintf(w, "  failed %s: %v\n", f.Kind, f.Err)
	}
	if out != "-" {
		fmt.Fprintf(w, "Wrote %s\n", out)
	}
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._+-]+`)

// fileNameFor turns a footprint name into a safe file name
func fileNameFor(name string) string {
	s := unsafeFileChars.ReplaceAllString(name, "_")
	if s == "" || s == "." || s == ".." {
		return "footprint"
	}
	return s
}
