package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/regionpick/internal/config"
	"github.com/ensigniasec/regionpick/internal/responsive"
	"github.com/ensigniasec/regionpick/internal/selector"
	"github.com/ensigniasec/regionpick/internal/storage"
	"github.com/ensigniasec/regionpick/internal/tui"
)

const defaultCellWidth = 8

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	stateFile    = storage.DefaultPath
	configFile   string
	optionsFile  string
	cellWidth    float64
	noResponsive bool
	watchConfig  bool
	verbose      bool
	logFile      string
	jsonOutput   bool

	rootCmd = &cobra.Command{
		Use:   "regionpick",
		Short: "A terminal region picker whose layout scales with the window width.",
		Long: `regionpick presents a two-level region picker. The option tree and the selected region are saved to a local state file and restored on the next start.

The layout scale follows the terminal width: columns are converted to pixels (--cell-width) and matched against breakpoint thresholds, and the resulting scale resizes spacing and borders.`,
		Args: cobra.NoArgs,
		Run:  runPicker,
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr to avoid polluting stdout, especially for --json output.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().StringVar(&stateFile, "state-file", stateFile, "Path of the persisted picker state")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Optional: YAML or JSON file with responsive settings")
	rootCmd.PersistentFlags().
		Float64Var(&cellWidth, "cell-width", defaultCellWidth, "Pixels per terminal column used to map the window width to breakpoints")

	rootCmd.Flags().StringVar(&optionsFile, "options-file", "", "Optional: YAML or JSON option tree installed by fetch")
	rootCmd.Flags().BoolVar(&noResponsive, "no-responsive", false, "Disable responsive scaling")
	rootCmd.Flags().BoolVar(&watchConfig, "watch", false, "Reload --config when it changes")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Optional: write logs here while the picker is running")

	scaleCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format instead of text")

	rootCmd.AddCommand(scaleCmd)
	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateClearCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")

	cobra.OnInitialize(func() {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	})
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func main() {
	Execute()
}

// settings combines the config file with flags; explicitly set flags win.
type settings struct {
	responsive responsive.Config
	disabled   bool
	cellWidth  float64
}

func loadSettings(cmd *cobra.Command) settings {
	s := settings{cellWidth: cellWidth, disabled: noResponsive}
	if configFile == "" {
		return s
	}
	f, err := config.Load(configFile)
	if err != nil {
		logrus.Fatalf("Unable to load config: %v", err)
	}
	s.responsive = f.Responsive
	if f.Enabled != nil && !cmd.Flags().Changed("no-responsive") {
		s.disabled = !*f.Enabled
	}
	if f.CellWidth > 0 && !cmd.Flags().Changed("cell-width") {
		s.cellWidth = f.CellWidth
	}
	return s
}

func runPicker(cmd *cobra.Command, _ []string) {
	s := loadSettings(cmd)

	st, err := storage.NewStore(stateFile)
	if err != nil {
		logrus.Fatalf("Unable to open state file: %v", err)
	}

	opts := tui.Options{
		Store:      st,
		Responsive: s.responsive,
		Disabled:   s.disabled,
		CellWidth:  s.cellWidth,
		ConfigPath: configFile,
		Watch:      watchConfig,
	}
	if optionsFile != "" {
		tree, err := selector.LoadOptionsFile(optionsFile)
		if err != nil {
			logrus.Fatalf("Unable to load options: %v", err)
		}
		opts.Fetched = tree
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			logrus.Fatalf("Unable to open log file: %v", err)
		}
		defer f.Close()
		opts.LogOutput = f
	}

	if err := tui.Run(cmd.Context(), opts); err != nil {
		logrus.Fatalf("TUI failed: %v", err)
	}
}

// scaleReport is the --json output of the scale command.
type scaleReport struct {
	Width      float64               `json:"width"`
	Breakpoint string                `json:"breakpoint"`
	Scale      float64               `json:"scale"`
	Variables  []responsive.Variable `json:"variables"`
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var scaleCmd = &cobra.Command{
	Use:   "scale [WIDTH]",
	Short: "Print the breakpoint, scale and style variables for a width in pixels",
	Long:  "Resolve the breakpoint and scale for WIDTH pixels and print every style variable that would be published. Without WIDTH the current terminal width times --cell-width is used.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := loadSettings(cmd)
		cfg := responsive.DefaultConfig().Merge(s.responsive)

		var width float64
		if len(args) == 1 {
			w, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				logrus.Fatalf("Invalid width %q: expected a number of pixels", args[0])
			}
			width = w
		} else {
			width = float64(tui.TerminalColumns(0)) * s.cellWidth
		}

		scale := responsive.CalculateScale(width, cfg)
		report := scaleReport{
			Width:      width,
			Breakpoint: responsive.CurrentBreakpoint(width, cfg),
			Scale:      scale,
			Variables:  responsive.Variables(scale, cfg),
		}
		printScaleReport(report, jsonOutput)
	},
}

func printScaleReport(r scaleReport, asJSON bool) {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			logrus.Fatal(err)
		}
		return
	}
	fmt.Fprintf(os.Stdout, "width: %spx\n", strconv.FormatFloat(r.Width, 'f', -1, 64))
	fmt.Fprintf(os.Stdout, "breakpoint: %s\n", r.Breakpoint)
	fmt.Fprintf(os.Stdout, "scale: %s\n", strconv.FormatFloat(r.Scale, 'f', -1, 64))
	for _, v := range r.Variables {
		fmt.Fprintf(os.Stdout, "%s: %s\n", v.Name, v.Value)
	}
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or clear the persisted picker state",
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the persisted option tree and selection",
	Run: func(cmd *cobra.Command, args []string) {
		st, err := storage.NewStore(stateFile)
		if err != nil {
			logrus.Fatal(err)
		}
		tree, ok := storage.TryLoad[[]selector.Option](st, selector.OptionsKey)
		if !ok {
			fmt.Fprintln(os.Stdout, "options: (built-in defaults)")
			tree = selector.DefaultOptions()
		} else {
			fmt.Fprintf(os.Stdout, "options: %d regions\n", len(tree))
		}
		for _, region := range tree {
			fmt.Fprintf(os.Stdout, "  - %s (%s): %d districts\n", region.Label, region.Value, len(region.Children))
		}

		sel, ok := storage.TryLoad[[]string](st, selector.SelectionKey)
		if !ok || len(sel) == 0 {
			fmt.Fprintln(os.Stdout, "selection: none")
			return
		}
		fmt.Fprintf(os.Stdout, "selection: %s\n", strings.Join(sel, " / "))
		if labels := selector.Labels(tree, sel); len(labels) > 0 {
			fmt.Fprintf(os.Stdout, "labels: %s\n", strings.Join(labels, " / "))
		}
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var stateClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the persisted option tree and selection",
	Run: func(cmd *cobra.Command, args []string) {
		st, err := storage.NewStore(stateFile)
		if err != nil {
			logrus.Fatal(err)
		}
		for _, key := range []string{selector.OptionsKey, selector.SelectionKey} {
			if err := st.Remove(key); err != nil {
				logrus.Fatal(err)
			}
		}
		fmt.Fprintln(os.Stdout, "Picker state cleared")
	},
}
