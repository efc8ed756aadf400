package main

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BackendStack21/trishare-go/vdf"
)

func newVDFCmd(a *app) *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "vdf",
		Short: "Run one paced delay cycle over a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := vdf.New(a.cfg.Temporal, vdf.WithLogger(a.log), vdf.WithMetrics(a.metrics))

			start := time.Now()
			out, proof, err := vdf.RunCycle(v, []byte(message))
			if err != nil {
				return err
			}
			ok, err := v.VerifyProof(proof)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Output:        %s\n", out[:len(message)])
			fmt.Fprintf(cmd.OutOrStdout(), "Iterations:    %d\n", proof.IterationCount)
			fmt.Fprintf(cmd.OutOrStdout(), "Elapsed:       %v\n", time.Since(start).Round(time.Millisecond))
			fmt.Fprintf(cmd.OutOrStdout(), "Initial hash:  %s\n", hex.EncodeToString(proof.InitialStateHash[:]))
			fmt.Fprintf(cmd.OutOrStdout(), "Final hash:    %s\n", hex.EncodeToString(proof.FinalStateHash[:]))
			fmt.Fprintf(cmd.OutOrStdout(), "Proof valid:   %t\n", ok)
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "Hello, World!", "message to run through the cycle")
	return cmd
}
