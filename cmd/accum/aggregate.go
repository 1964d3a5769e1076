package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/go-sif/accum"
	"github.com/go-sif/accum/cluster"
	"github.com/go-sif/accum/codec"
	"github.com/go-sif/accum/internal/jsonl"
	"github.com/go-sif/accum/logging"
	"github.com/go-sif/accum/params"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

type aggregateOptions struct {
	Field         string // gjson path of the aggregated field
	Workers       int    // number of concurrent tasks
	PartitionSize int    // records per task
	Retries       int    // attempts per task
	Serialize     bool   // ship task partials as bytes
	ShowDistinct  bool   // print every distinct value, not just the number of them
}

var aggregateConf = &aggregateOptions{}

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <file.jsonl>",
	Short: "Compute count, sum, min, max and distinct values of a field across a JSON Lines file",
	Long: `Splits a JSON Lines file (or "-" for stdin) into partitions, and aggregates one field of every
record in parallel. Numeric values contribute to the sum, min and max; every present value
contributes to the set of distinct values; records without the field are counted as skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, ok := logging.ParseLevel(logLevel)
		if !ok {
			level = logging.LevelFromEnv(logging.WarnLevel)
		}
		log := logging.NewLogger(cmd.ErrOrStderr(), level)

		var in io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		summary, err := runAggregate(cmd.Context(), in, log, aggregateConf)
		if err != nil {
			return err
		}
		return summary.write(cmd.OutOrStdout(), aggregateConf.ShowDistinct)
	},
}

func init() {
	aggregateCmd.Flags().StringVarP(&aggregateConf.Field, "field", "f", "", "gjson path of the field to aggregate (required)")
	aggregateCmd.Flags().IntVarP(&aggregateConf.Workers, "workers", "w", 0, "number of concurrent tasks (defaults to the number of CPUs)")
	aggregateCmd.Flags().IntVar(&aggregateConf.PartitionSize, "partition-size", 128, "number of records per task")
	aggregateCmd.Flags().IntVar(&aggregateConf.Retries, "retries", 3, "number of attempts per task")
	aggregateCmd.Flags().BoolVar(&aggregateConf.Serialize, "serialize", false, "encode task partials before merging them")
	aggregateCmd.Flags().BoolVar(&aggregateConf.ShowDistinct, "show-distinct", false, "print every distinct value")
	aggregateCmd.MarkFlagRequired("field")
}

type summary struct {
	Count    uint64
	Sum      float64
	Range    params.PairOf[params.Extremum[float64], params.Extremum[float64]]
	Distinct params.Set[string]
	Skipped  int64
}

func (s *summary) write(w io.Writer, showDistinct bool) error {
	lines := []string{
		fmt.Sprintf("count: %d", s.Count),
		fmt.Sprintf("sum: %g", s.Sum),
		fmt.Sprintf("min: %s", formatExtremum(s.Range.First)),
		fmt.Sprintf("max: %s", formatExtremum(s.Range.Second)),
		fmt.Sprintf("distinct: %d", len(s.Distinct)),
		fmt.Sprintf("skipped: %d", s.Skipped),
	}
	if showDistinct {
		values := make([]string, 0, len(s.Distinct))
		for v := range s.Distinct {
			values = append(values, v)
		}
		sort.Strings(values)
		for _, v := range values {
			lines = append(lines, "  "+v)
		}
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func formatExtremum(e params.Extremum[float64]) string {
	if !e.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%g", e.Value)
}

// runAggregate aggregates conf.Field over every record in r
func runAggregate(ctx context.Context, r io.Reader, log *logrus.Logger, conf *aggregateOptions) (*summary, error) {
	if len(conf.Field) == 0 {
		return nil, fmt.Errorf("A field must be specified")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	parser := jsonl.CreateParser(&jsonl.ParserConf{PartitionSize: conf.PartitionSize, Comment: '#'})
	parts, err := parser.ParseAll(r)
	if err != nil {
		return nil, err
	}

	actx, err := accum.NewContext(&accum.ContextOptions{Name: "aggregate", Logger: log})
	if err != nil {
		return nil, err
	}
	defer actx.Close()
	count := accum.NewAccumulable[uint64, gjson.Result](actx, 0, params.Counter[gjson.Result](), "count",
		accum.WithCodec[uint64](codec.Uint64()))
	sum := accum.FloatAccumulator(actx, 0, "sum")
	type extrema = params.PairOf[params.Extremum[float64], params.Extremum[float64]]
	minMax := accum.NewAccumulable[extrema, params.PairOf[float64, float64]](actx, extrema{},
		params.Compose[params.Extremum[float64], float64, params.Extremum[float64], float64](params.Minimum[float64](), params.Maximum[float64]()),
		"range", accum.WithCodec[extrema](codec.Gob[extrema]()))
	distinct := accum.NewAccumulable[params.Set[string], string](actx, nil, params.Union[string](), "distinct",
		accum.WithCodec[params.Set[string]](codec.LZ4[params.Set[string]](codec.Sets[string]())))
	skipped := accum.IntAccumulator(actx, 0, "skipped")

	tasks := make([]cluster.Task, len(parts))
	for i, part := range parts {
		part := part
		tasks[i] = func(tc *cluster.TaskContext) error {
			counts := cluster.Local(tc, count)
			sums := cluster.Local(tc, sum.Accumulable)
			ranges := cluster.Local(tc, minMax)
			values := cluster.Local(tc, distinct)
			skips := cluster.Local(tc, skipped.Accumulable)
			for _, record := range part {
				if err := counts.Add(record); err != nil {
					return err
				}
				v := record.Get(conf.Field)
				if !v.Exists() {
					if err := skips.Add(1); err != nil {
						return err
					}
					continue
				}
				if err := values.Add(v.String()); err != nil {
					return err
				}
				if v.Type != gjson.Number {
					continue
				}
				n := v.Float()
				if err := sums.Add(n); err != nil {
					return err
				}
				if err := ranges.Add(params.PairOf[float64, float64]{First: n, Second: n}); err != nil {
					return err
				}
			}
			return nil
		}
	}

	coordinator := cluster.NewCoordinator(actx, &cluster.Options{
		NumWorkers:       conf.Workers,
		MaxTaskAttempts:  conf.Retries,
		SerializeUpdates: conf.Serialize,
	})
	result, err := coordinator.Run(ctx, &cluster.Job{Name: "aggregate " + conf.Field, Tasks: tasks})
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"tasks":    result.Stats.GetNumTasks(),
		"attempts": result.Stats.GetNumAttempts(),
		"runtime":  result.Stats.GetRuntime(),
	}).Info("Aggregated")

	s := &summary{}
	if s.Count, err = count.Value(actx.Owner()); err != nil {
		return nil, err
	}
	if s.Sum, err = sum.Value(actx.Owner()); err != nil {
		return nil, err
	}
	if s.Range, err = minMax.Value(actx.Owner()); err != nil {
		return nil, err
	}
	if s.Distinct, err = distinct.Value(actx.Owner()); err != nil {
		return nil, err
	}
	if s.Skipped, err = skipped.Value(actx.Owner()); err != nil {
		return nil, err
	}
	return s, nil
}
