package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/fedfire/fedfire/internal/calculation"
	"github.com/fedfire/fedfire/internal/config"
	"github.com/fedfire/fedfire/internal/domain"
	"github.com/fedfire/fedfire/internal/output"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "fedfire %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "fedfire",
	Short: "FIRE planning calculator for federal employees",
	Long:  "Projects TSP growth, FERS pension paths and FIRE readiness for federal employees",
}

// loadScenario parses the input file and builds an engine honoring --debug.
func loadScenario(cmd *cobra.Command, inputFile string) (*domain.Scenario, *calculation.Engine) {
	parser := config.NewInputParser()
	scenario, err := parser.LoadFromFile(inputFile)
	if err != nil {
		log.Fatal(err)
	}

	engine := calculation.NewEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return scenario, engine
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Run the deterministic projection, pension and FIRE gap report",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scenario, engine := loadScenario(cmd, args[0])
		report := engine.RunScenario(scenario)

		outputFormat, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			log.Fatalf("unsupported format: %s (valid: console, json, csv)", outputFormat)
		}
		data, err := f.Format(report)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(string(data))
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a scenario file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Scenario file %s is valid\n", args[0])
	},
}

var fireGapCmd = &cobra.Command{
	Use:   "firegap [input-file]",
	Short: "Show only the FIRE gap analysis for a scenario",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scenario, engine := loadScenario(cmd, args[0])
		report := engine.RunScenario(scenario)

		outputFormat, _ := cmd.Flags().GetString("format")
		if outputFormat == "json" {
			data, err := json.MarshalIndent(report.FireGap, "", "  ")
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(string(data))
			return
		}
		fmt.Print(output.FormatFireGap(report.FireGap))
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [input-file]",
	Short: "Run Monte Carlo retirement simulations for a scenario",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scenario, engine := loadScenario(cmd, args[0])

		numSims, _ := cmd.Flags().GetInt("simulations")
		endAge, _ := cmd.Flags().GetInt("end-age")
		seed, _ := cmd.Flags().GetInt64("seed")

		result := engine.Simulate(scenario, calculation.SimulationConfig{
			NumSimulations: numSims,
			EndAge:         endAge,
			Seed:           seed,
		})

		outputFormat, _ := cmd.Flags().GetString("format")
		text, err := output.NewSimulationFormatter(outputFormat).FormatSimulation(result)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(text)
	},
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize [input-file]",
	Short: "Search retirement age, contribution and spending changes that reach FIRE earlier",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scenario, engine := loadScenario(cmd, args[0])
		candidates := engine.Optimize(scenario)

		outputFormat, _ := cmd.Flags().GetString("format")
		text, err := output.NewOptimizerFormatter(outputFormat).FormatCandidates(candidates)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(text)
	},
}

func init() {
	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	calculateCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	fireGapCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	fireGapCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	simulateCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	simulateCmd.Flags().IntP("simulations", "s", 1000, "Number of simulations to run")
	simulateCmd.Flags().Int("end-age", 95, "Age the simulated paths run to")
	simulateCmd.Flags().Int64("seed", 0, "Random seed (0 uses wall-clock time)")
	simulateCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	optimizeCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	optimizeCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fireGapCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
