// Command jobsystem runs the canonical eight-job game-loop DAG in serial
// or parallel mode, parses the -t/--threads and -p/--parallel flags, and
// reports timing -- all deliberately kept outside the jobsystem package
// itself.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/go-foundations/jobsystem"
	"github.com/go-foundations/jobsystem/internal/config"
	"github.com/go-foundations/jobsystem/internal/telemetry"
	"github.com/go-foundations/jobsystem/internal/workload"
)

func main() {
	app := &cli.App{
		Name:  "jobsystem",
		Usage: "run the canonical job-dependency DAG, serially or in parallel",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "threads", Aliases: []string{"t"}, Value: 0,
				Usage: "worker count; 0 selects max(hardware_threads, 2) - 1"},
			&cli.BoolFlag{Name: "parallel", Aliases: []string{"p"},
				Usage: "use the Pool-driven engine instead of the serial fallback"},
			&cli.IntFlag{Name: "frames", Value: 1, Usage: "number of frames to run"},
			&cli.StringFlag{Name: "log-level", Value: "info"},
			&cli.StringFlag{Name: "log-format", Value: "console"},
		},
		Action: runAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var cfgErr *jobsystem.ConfigurationError
		if errors.As(err, &cfgErr) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func runAction(c *cli.Context) error {
	threads, err := config.ResolveThreads(c.Int("threads"))
	if err != nil {
		return &jobsystem.ConfigurationError{Reason: err.Error()}
	}

	sink := telemetry.NewZerologSink(telemetry.Config{
		Level:  c.String("log-level"),
		Format: c.String("log-format"),
	})

	frames := c.Int("frames")
	if frames < 1 {
		frames = 1
	}

	var total time.Duration
	for f := 0; f < frames; f++ {
		d, err := runFrame(c.Bool("parallel"), threads, sink)
		if err != nil {
			return err
		}
		total += d
	}

	fmt.Printf("ran %d frame(s) on %d thread(s) (parallel=%v); total=%s avg=%s\n",
		frames, threads, c.Bool("parallel"), total, total/time.Duration(frames))
	return nil
}

func runFrame(parallel bool, threads int, sink telemetry.Sink) (time.Duration, error) {
	rec := workload.NewRecorder()
	start := time.Now()

	if !parallel {
		workload.RunSerial(rec)
		return time.Since(start), nil
	}

	pool, err := jobsystem.NewPool(jobsystem.Config{
		NumWorkers: threads,
		Sink:       sink,
	})
	if err != nil {
		return 0, err
	}
	defer pool.Shutdown()

	for _, j := range workload.BuildDAG(rec) {
		pool.Submit(j)
	}

	for !pool.AllIdle() {
		time.Sleep(100 * time.Microsecond)
	}

	if panics := pool.Panics(); len(panics) > 0 {
		return 0, panics[0]
	}
	if violations := pool.InvariantViolations(); len(violations) > 0 {
		return 0, violations[0]
	}

	return time.Since(start), nil
}
