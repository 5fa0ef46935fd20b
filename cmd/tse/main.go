// tse is a host wrapper around the metric engine. It reads a headered CSV
// dataset and prints averaged total survey error metrics per weighting scheme.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/surveytse/tse"
	"github.com/surveytse/tse/metric"
	"github.com/surveytse/tse/surveydataset"
)

var rootCmd = &cobra.Command{
	Use:   "tse",
	Short: "Compute averaged total survey error metrics from a CSV dataset",
	Long: `Compute averaged total survey error metrics comparing gold standard columns
against surveyed columns, unweighted and under any number of weighting schemes.

Each --weights flag names one weighting scheme as a comma separated column
list. A scheme naming a single column is broadcast across all survey columns.

Examples:
  # full scale-dependent report for two variables under two schemes
  tse --input testwgt.csv --actual A1,A2 --survey Q1,Q2 --weights W1 --weights W2 --report dependent

  # a single metric as JSON
  tse --input testwgt.csv --actual A1,A2 --survey Q1,Q2 --metric aMAPE --output json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().String("input", "", "path to the CSV dataset (required)")
	rootCmd.Flags().String("actual", "", "comma separated gold standard column names (required)")
	rootCmd.Flags().String("survey", "", "comma separated surveyed column names (required)")
	rootCmd.Flags().StringArray("weights", nil, "weight column names for one scheme, repeatable")
	rootCmd.Flags().String("report", "", "composite report: dependent or independent")
	rootCmd.Flags().String("metric", "", "single metric name, e.g. aMAE")
	rootCmd.Flags().String("output", "table", "output format: table, json, or csv")
	rootCmd.Flags().Bool("propagate-nonfinite", false, "propagate ±Inf/NaN on zero denominators instead of failing")
	_ = rootCmd.MarkFlagRequired("input")
	_ = rootCmd.MarkFlagRequired("actual")
	_ = rootCmd.MarkFlagRequired("survey")

	viper.SetEnvPrefix("TSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("output", "table")
	_ = viper.BindPFlags(rootCmd.Flags())
}

func run(_ *cobra.Command, _ []string) error {
	f, err := os.Open(viper.GetString("input"))
	if err != nil {
		return fmt.Errorf("unable to open input, %w", err)
	}
	defer func() { _ = f.Close() }()

	surveyCols := splitNames(viper.GetString("survey"))
	spec := surveydataset.ColumnSpec{
		Actual: splitNames(viper.GetString("actual")),
		Survey: surveyCols,
	}
	for _, scheme := range viper.GetStringSlice("weights") {
		names := splitNames(scheme)
		if len(names) == 1 && len(surveyCols) > 1 {
			single := names[0]
			names = make([]string, len(surveyCols))
			for i := range names {
				names[i] = single
			}
		}
		spec.Weights = append(spec.Weights, names)
	}

	ds, err := surveydataset.FromCSV(f, spec)
	if err != nil {
		return err
	}

	opt := tse.NewDefaultOptions()
	opt.Metric.PropagateNonFinite = viper.GetBool("propagate-nonfinite")
	eng, err := tse.New(ds.Actual, ds.Survey, ds.Weights, opt)
	if err != nil {
		return err
	}

	res, title, err := invoke(eng)
	if err != nil {
		return err
	}

	switch viper.GetString("output") {
	case "json":
		b, err := res.JSON()
		if err != nil {
			return err
		}
		fmt.Println(string(b))
	case "csv":
		return res.WriteCSV(os.Stdout)
	default:
		color.New(color.FgCyan, color.Bold).Println(title)
		return res.WriteTable(os.Stdout)
	}
	return nil
}

// invoke selects the operation from the report or metric flag, defaulting to
// the full scale-dependent report.
func invoke(eng *tse.Engine) (*tse.Result, string, error) {
	if name := viper.GetString("metric"); name != "" {
		kind, err := metric.ParseKind(name)
		if err != nil {
			return nil, "", err
		}
		res, err := eng.Ave(kind)
		return res, string(kind), err
	}

	switch report := viper.GetString("report"); report {
	case "", "dependent":
		res, err := eng.FullScaleDependent()
		return res, "scale-dependent metrics", err
	case "independent":
		res, err := eng.FullScaleIndependent()
		return res, "scale-independent metrics", err
	default:
		return nil, "", fmt.Errorf("unknown report %q, expecting dependent or independent", report)
	}
}

func splitNames(s string) []string {
	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
