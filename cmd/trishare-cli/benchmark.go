package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BackendStack21/trishare-go/sharing"
	"github.com/BackendStack21/trishare-go/vdf"
)

func newBenchmarkCmd(a *app) *cobra.Command {
	var iterations, size int
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Time split, reconstruct and delay cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if iterations < 1 {
				iterations = 1
			}
			if size < 1 {
				size = 1
			}
			secret := bytes.Repeat([]byte{0x42}, size)
			s := sharing.New(a.cfg.Sharing, sharing.WithLogger(a.log), sharing.WithMetrics(a.metrics))

			fmt.Fprintf(cmd.OutOrStdout(), "trishare Benchmark Results\n")
			fmt.Fprintf(cmd.OutOrStdout(), "==========================\n")
			fmt.Fprintf(cmd.OutOrStdout(), "Iterations: %d\n", iterations)
			fmt.Fprintf(cmd.OutOrStdout(), "Size:       %d bytes\n\n", size)

			var splitTotal, reconTotal time.Duration
			for i := 0; i < iterations; i++ {
				start := time.Now()
				shares, err := s.Split(secret)
				splitTotal += time.Since(start)
				if err != nil {
					return err
				}

				start = time.Now()
				_, err = s.Reconstruct(shares)
				reconTotal += time.Since(start)
				if err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  Split:       %v (avg)\n", splitTotal/time.Duration(iterations))
			fmt.Fprintf(cmd.OutOrStdout(), "  Reconstruct: %v (avg)\n", reconTotal/time.Duration(iterations))

			var cycleTotal time.Duration
			v := vdf.New(a.cfg.Temporal, vdf.WithLogger(a.log), vdf.WithMetrics(a.metrics))
			for i := 0; i < iterations; i++ {
				start := time.Now()
				if _, _, err := vdf.RunCycle(v, secret); err != nil {
					return err
				}
				cycleTotal += time.Since(start)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  VDF cycle:   %v (avg)\n", cycleTotal/time.Duration(iterations))
			return nil
		},
	}
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 10, "iterations per operation")
	cmd.Flags().IntVar(&size, "size", 1024, "secret size in bytes")
	return cmd
}
