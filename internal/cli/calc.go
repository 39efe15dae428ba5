package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/gosignal/signal"
)

// Metric selectors for --metric.
const (
	MetricAll    = "all"
	MetricEnergy = "energy"
	MetricPower  = "power"
	MetricMean   = "mean"
)

// Report is one line of calc output: func_str followed by the result's own
// fields.
type Report struct {
	FuncStr string
	signal.Result
}

func (r Report) MarshalJSON() ([]byte, error) {
	head, err := json.Marshal(map[string]string{"func_str": r.FuncStr})
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(r.Result)
	if err != nil {
		return nil, err
	}
	if len(body) <= 2 {
		return head, nil
	}
	out := append(head[:len(head)-1], ',')
	return append(out, body[1:]...), nil
}

func (r Report) MarshalYAML() (interface{}, error) {
	var n yaml.Node
	if err := n.Encode(r.Result); err != nil {
		return nil, err
	}
	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "func_str"}
	val := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.FuncStr}
	n.Content = append([]*yaml.Node{key, val}, n.Content...)
	return &n, nil
}

func newCalcCmd(a *app) *cobra.Command {
	var metric, output string
	cmd := &cobra.Command{
		Use:   "calc <expr>...",
		Short: "Analyze one or more signals",
		Example: `  gosignal calc 'sin(t)'
  gosignal calc 'rect(t)' 'exp(-t)*u(t)' --metric energy --output yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkChoice("metric", metric, MetricAll, MetricEnergy, MetricPower, MetricMean); err != nil {
				return err
			}
			if err := checkChoice("output", output, "json", "yaml"); err != nil {
				return err
			}
			results := a.analyzer.AnalyzeBatch(cmd.Context(), args)
			reports := make([]Report, len(results))
			failed := 0
			for i, res := range results {
				if res.Error != "" {
					failed++
				}
				reports[i] = Report{FuncStr: args[i], Result: selectMetric(res, metric)}
			}
			if err := writeReports(cmd.OutOrStdout(), reports, output); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d analyses failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&metric, "metric", MetricAll, "metric to report: all, energy, power or mean")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}

// selectMetric clears every metric but the chosen one. Period, regime and
// error are always kept.
func selectMetric(res signal.Result, metric string) signal.Result {
	if metric == MetricAll || res.Error != "" {
		return res
	}
	if metric != MetricEnergy {
		res.Energy = nil
	}
	if metric != MetricPower {
		res.Power = nil
	}
	if metric != MetricMean {
		res.Mean = nil
	}
	return res
}

func writeReports(w io.Writer, reports []Report, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(reports)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

func checkChoice(flag, value string, choices ...string) error {
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	return fmt.Errorf("invalid --%s %q: want one of %s", flag, value, strings.Join(choices, ", "))
}
