// Command qhg analyzes phrases with the Quantum Hermetic Gematria engine,
// either in process or against a running qhgd.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/talgya/quantum-gematria/internal/client"
	"github.com/talgya/quantum-gematria/internal/config"
	"github.com/talgya/quantum-gematria/internal/daemon"
	"github.com/talgya/quantum-gematria/internal/gematria"
	"github.com/talgya/quantum-gematria/internal/logger"
)

var (
	Version     = "0.1.0"
	CommitSha   = "unknown"
	FullVersion = Version + "-" + CommitSha
)

// options are the persistent flags shared by every subcommand.
type options struct {
	configPath string
	server     string
	logLevel   string
	noColor    bool
	json       bool

	cfg *config.Config

	// sessionPath keeps the remote history session between runs.
	sessionPath string

	// now anchors relative times in history output.
	now func() time.Time
}

func (o *options) backend() backend {
	if o.server != "" {
		c := client.New(o.server)
		c.AdminKey = o.cfg.Server.AdminKey
		c.Session = loadSession(o.sessionPath)
		return &remoteBackend{c: c}
	}
	return newLocalBackend(o.cfg)
}

// withBackend opens a backend for the duration of fn.
func (o *options) withBackend(fn func(b backend) error) error {
	b := o.backend()
	defer func() {
		if err := b.Close(); err != nil {
			slog.Warn("close backend", "error", err)
		}
	}()
	return fn(b)
}

func defaultOptions() *options {
	return &options{
		sessionPath: filepath.Join(xdg.StateHome, "qhg", "session"),
		now:         time.Now,
	}
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "qhg",
		Short: "Quantum Hermetic Gematria resonance analysis",
		Long: color.New(color.FgHiMagenta).Sprint("qhg") +
			" encodes phrases with a gematria scheme, projects them through\n" +
			"sacred geometry tensors and reports resonance patterns.",
		Version:       FullVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				if _, ok := logger.ParseLevel(opts.logLevel); !ok {
					return fmt.Errorf("invalid --log-level %q", opts.logLevel)
				}
				cfg.Log.Level = opts.logLevel
			}
			opts.cfg = cfg
			logger.Init(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)

			if opts.noColor || !isTerminal(cmd) {
				color.NoColor = true
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", os.Getenv("QHG_CONFIG"), "config file (.yaml or .toml)")
	pf.StringVarP(&opts.server, "server", "s", os.Getenv("QHG_SERVER"), "qhgd base URL; empty runs the engine locally")
	pf.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	pf.BoolVar(&opts.json, "json", false, "print raw JSON")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newCompareCmd(opts),
		newChartCmd(opts),
		newSchemesCmd(opts),
		newHistoryCmd(opts),
		newServeCmd(opts),
	)
	return root
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	var scheme string
	cmd := &cobra.Command{
		Use:   "analyze <text...>",
		Short: "Analyze a phrase",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return opts.withBackend(func(b backend) error {
				a, err := b.Analyze(cmd.Context(), text, scheme)
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(cmd.OutOrStdout(), a)
				}
				renderAnalysis(cmd.OutOrStdout(), a)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&scheme, "scheme", gematria.DefaultScheme.String(), "gematria scheme")
	return cmd
}

func newCompareCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <phrase1> <phrase2>",
		Short: "Compare the resonance of two phrases",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBackend(func(b backend) error {
				c, err := b.Compare(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(cmd.OutOrStdout(), c)
				}
				renderComparison(cmd.OutOrStdout(), c)
				return nil
			})
		},
	}
}

func newChartCmd(opts *options) *cobra.Command {
	var scheme string
	cmd := &cobra.Command{
		Use:   "chart <text...>",
		Short: "Draw the resonance series of a phrase",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			return opts.withBackend(func(b backend) error {
				c, err := b.Chart(cmd.Context(), text, scheme)
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(cmd.OutOrStdout(), c)
				}
				renderChart(cmd.OutOrStdout(), c)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&scheme, "scheme", gematria.DefaultScheme.String(), "gematria scheme")
	return cmd
}

func newSchemesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List gematria schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBackend(func(b backend) error {
				names, err := b.Schemes(cmd.Context())
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(cmd.OutOrStdout(), names)
				}
				for _, n := range names {
					if n == gematria.DefaultScheme.String() {
						fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", n, dimStyle.Sprint("(default)"))
						continue
					}
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			})
		},
	}
}

func newHistoryCmd(opts *options) *cobra.Command {
	var (
		limit    int
		clearAll bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear recent analyses and comparisons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBackend(func(b backend) error {
				if clearAll {
					if err := b.ClearHistory(cmd.Context()); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
					return nil
				}
				h, err := b.History(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if opts.json {
					return writeJSON(cmd.OutOrStdout(), h)
				}
				renderHistory(cmd.OutOrStdout(), h, opts.now())
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "entries per list; 0 uses the configured history limit")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete history instead of listing it")
	return cmd
}

func newServeCmd(opts *options) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				opts.cfg.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return daemon.Run(ctx, opts.cfg, FullVersion)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")
	return cmd
}

func main() {
	if err := newRootCmd(defaultOptions()).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		slog.Debug("qhg failed", "error", err)
		os.Exit(1)
	}
}
