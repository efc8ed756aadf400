package main

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	trishare "github.com/BackendStack21/trishare-go"
	"github.com/BackendStack21/trishare-go/demo"
	"github.com/BackendStack21/trishare-go/protect"
	"github.com/BackendStack21/trishare-go/sharing"
)

func newDemoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run three-party demonstrations",
	}
	cmd.AddCommand(
		newDemoImageCmd(a),
		newDemoExchangeCmd(a),
		newDemoAuthCmd(a),
		newDemoTrainingCmd(a),
	)
	return cmd
}

func newDemoImageCmd(a *app) *cobra.Command {
	var width, height int
	var seed int64
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Protect and reconstruct a simulated X-ray image",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Creating simulated X-ray image (%d x %d, %d bits)\n", width, height, demo.XRayBitsPerPixel)
			data, err := demo.SimulateXRay(width, height, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}

			meta := protect.ImageMeta{Width: width, Height: height, BitsPerPixel: demo.XRayBitsPerPixel, Modality: protect.XRay}
			start := time.Now()
			img, err := protect.NewImage(data, meta, a.cfg, protect.WithLogger(a.log), protect.WithMetrics(a.metrics))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Image protected in %v\n", time.Since(start).Round(time.Millisecond))

			for i := 1; !img.IsComplete(); i++ {
				step := time.Now()
				if err := img.Advance(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Advanced temporal state %d of %d in %v\n", i, protect.TotalSteps, time.Since(step).Round(time.Millisecond))
			}

			start = time.Now()
			got, err := img.Reconstruct()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reconstructed in %v\n", time.Since(start).Round(time.Millisecond))
			if !bytes.Equal(got, data) {
				return trishare.VerificationFailed("reconstructed image differs from original")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Image successfully protected and reconstructed!")
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 512, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 512, "image height in pixels")
	cmd.Flags().Int64Var(&seed, "seed", 1, "pixel noise seed")
	return cmd
}

func newDemoExchangeCmd(a *app) *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Three-way key exchange",
		RunE: func(cmd *cobra.Command, args []string) error {
			parts := make([][]byte, trishare.ShareCount)
			for i := range parts {
				p, err := demo.KeyShare(length)
				if err != nil {
					return err
				}
				parts[i] = p
			}
			key, err := demo.KeyExchange(parts[0], parts[1], parts[2])
			if err != nil {
				return err
			}
			a.log.Debugf("exchanged %d-byte shares", length)
			fmt.Fprintf(cmd.OutOrStdout(), "Generated shared key: %s\n", key)
			return nil
		},
	}
	cmd.Flags().IntVar(&length, "length", 32, "key share length in bytes")
	return cmd
}

func newDemoAuthCmd(a *app) *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Three-party authentication challenge",
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := demo.AuthTokens()
			if err != nil {
				return err
			}
			a.log.Debugf("issued %d tokens of %d bytes", len(tokens), demo.TokenLength)

			s := sharing.New(a.cfg.Sharing, sharing.WithLogger(a.log), sharing.WithMetrics(a.metrics))
			ch, err := demo.AuthChallenge(s, message, time.Now())
			if err != nil {
				return err
			}
			got, err := ch.Verify(s)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Authentication message: %s\n", got)
			fmt.Fprintf(cmd.OutOrStdout(), "Verification hash: %s\n", ch.VerificationHash)
			fmt.Fprintf(cmd.OutOrStdout(), "Timestamp: %s\n", ch.Timestamp)
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "Request for access to secure resource", "message to authenticate")
	return cmd
}

func newDemoTrainingCmd(a *app) *cobra.Command {
	var batches, images, size int
	var duration time.Duration
	cmd := &cobra.Command{
		Use:   "training",
		Short: "Paced training session over batches of images",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := demo.NewSession(a.cfg, duration, a.log)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			for b := 1; b <= batches; b++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				batch := make([][]byte, images)
				for i := range batch {
					batch[i] = make([]byte, size)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Processing batch %d/%d...\n", b, batches)
				if err := session.ProcessBatch(batch); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Phase: %s\n", session.Phase())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&batches, "batches", 2, "number of batches")
	cmd.Flags().IntVar(&images, "images", 2, "images per batch")
	cmd.Flags().IntVar(&size, "size", 64*1024, "image size in bytes")
	cmd.Flags().DurationVar(&duration, "duration", 5*time.Second, "planned duration of one batch")
	return cmd
}
