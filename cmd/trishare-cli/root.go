package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	trishare "github.com/BackendStack21/trishare-go"
	"github.com/BackendStack21/trishare-go/core"
	"github.com/BackendStack21/trishare-go/logging"
	"github.com/BackendStack21/trishare-go/metrics"
)

const (
	appName    = "trishare-cli"
	appVersion = "0.4.0"
)

// app holds state shared by every subcommand.
type app struct {
	configFile  string
	profile     string
	verbose     bool
	metricsAddr string

	cfg      trishare.Config
	log      *logrus.Logger
	registry *prometheus.Registry
	metrics  *metrics.Recorder
	server   *http.Server
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   appName,
		Short: "trishare CLI - three-way XOR secret splitting with paced delay cycles",
		Long: `trishare-cli splits secrets into three XOR shares, reconstructs them,
and runs the paced temporal delay function over arbitrary messages.

WARNING: XOR 3-of-3 splitting is not a threshold scheme and the delay
function is not a cryptographically sound VDF.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "",
		"YAML config file (overrides --profile)")
	root.PersistentFlags().StringVarP(&a.profile, "profile", "p", string(core.ProfileStandard),
		"configuration profile (standard, imaging, fast)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"debug logging")
	root.PersistentFlags().StringVar(&a.metricsAddr, "metrics-addr", "",
		"serve Prometheus metrics on this address while the command runs")

	root.AddCommand(
		newSplitCmd(a),
		newReconstructCmd(a),
		newVDFCmd(a),
		newDemoCmd(a),
		newBenchmarkCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	level := logrus.WarnLevel.String()
	if a.verbose {
		level = logrus.DebugLevel.String()
	}
	log, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.log = log

	if a.configFile != "" {
		a.cfg, err = core.LoadConfig(a.configFile)
	} else {
		a.cfg, err = core.GetProfile(core.Profile(a.profile))
	}
	if err != nil {
		return err
	}
	a.log.Debugf("config: %s", core.Describe(a.cfg))

	a.registry = prometheus.NewRegistry()
	a.metrics, err = metrics.NewRecorder(a.registry)
	if err != nil {
		return err
	}
	if a.metricsAddr != "" {
		a.serveMetrics()
	}
	return nil
}

func (a *app) serveMetrics() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	a.server = &http.Server{
		Addr:              a.metricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		a.log.Infof("serving metrics on %s/metrics", a.metricsAddr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.WithError(err).Error("metrics server failed")
		}
	}()
}

func (a *app) teardown() error {
	if a.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.server.Shutdown(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, appVersion)
			fmt.Fprintf(cmd.OutOrStdout(), "trishare library version %s\n", trishare.Version)
		},
	}
}
