package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/spf13/cobra"
)

var benchCmd = &cobra.Command{
	Use:   "bench URL|PATH",
	Short: "Issue repeated GET requests and report latency percentiles",
	Long: `Bench issues sequential GET requests against the target and prints an
HDR-histogram latency summary. Each request runs over a fresh
connection, so the numbers include connect (and TLS) time.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("requests")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		insecure, _ := cmd.Flags().GetBool("insecure")
		unixPath, _ := cmd.Flags().GetString("unix")
		profileName, _ := cmd.Flags().GetString("profile")
		configPath, _ := cmd.Flags().GetString("config")

		// One microsecond to one minute, three significant figures.
		hist := hdrhistogram.New(1, time.Minute.Microseconds(), 3)
		failures := 0

		for i := 0; i < count; i++ {
			req, _, path, err := buildRequest(args[0], unixPath, profileName, configPath)
			if err != nil {
				return err
			}
			if timeout > 0 {
				req.WithTimeout(timeout)
			}
			if insecure {
				req.Secure(false)
			}

			start := time.Now()
			_, err = req.Get(path).End(context.Background())
			if err != nil {
				failures++
				continue
			}
			hist.RecordValue(time.Since(start).Microseconds())
		}

		fmt.Printf("requests: %d  ok: %d  failed: %d\n", count, count-failures, failures)
		if hist.TotalCount() > 0 {
			fmt.Printf("  p50: %s\n", time.Duration(hist.ValueAtQuantile(50))*time.Microsecond)
			fmt.Printf("  p90: %s\n", time.Duration(hist.ValueAtQuantile(90))*time.Microsecond)
			fmt.Printf("  p99: %s\n", time.Duration(hist.ValueAtQuantile(99))*time.Microsecond)
			fmt.Printf("  max: %s\n", time.Duration(hist.Max())*time.Microsecond)
		}
		if failures > 0 {
			return fmt.Errorf("%d of %d requests failed", failures, count)
		}
		return nil
	},
}

func init() {
	benchCmd.Flags().IntP("requests", "n", 10, "Number of requests to issue")
	benchCmd.Flags().DurationP("timeout", "t", 0, "Per-exchange timeout (0 uses the process default)")
	benchCmd.Flags().BoolP("insecure", "k", false, "Skip TLS certificate verification")
	benchCmd.Flags().String("unix", "", "Unix socket path to connect to")
	benchCmd.Flags().String("profile", "", "Named profile from the config file")
	benchCmd.Flags().String("config", "parley.yaml", "Profile config file")
}
