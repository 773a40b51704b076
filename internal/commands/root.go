// Package commands implements the fortuna-forecast command line, which runs projections
// and simulations offline over a TOML snapshot.
package commands

import (
	"encoding/json"
	"io"

	"github.com/dafibh/fortuna/fortuna-forecast/internal/config"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/forecast"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/snapshot"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose    bool
	policyFile string
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "fortuna-forecast",
		Short: "Project obligations and simulate cash flow",
		Long:  "Project upcoming loan, fixed-expense and subscription payments and simulate month-by-month cash flow from a TOML snapshot.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := zerolog.InfoLevel
			if opts.verbose {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log at debug level")
	root.PersistentFlags().StringVar(&opts.policyFile, "policy", "", "TOML file overriding the priority heuristics")

	root.AddCommand(newProjectCommand(opts), newSimulateCommand(opts))
	return root
}

// load reads the snapshot and the priority policy named on the command line
func (o *rootOptions) load(snapshotPath string) (*snapshot.Snapshot, forecast.PolicySet, error) {
	policy := forecast.DefaultPolicySet()
	if o.policyFile != "" {
		var err error
		if policy, err = config.LoadPriorityPolicy(o.policyFile); err != nil {
			return nil, policy, err
		}
		log.Debug().Str("path", o.policyFile).Msg("Loaded priority policy")
	}

	snap, err := snapshot.Load(snapshotPath)
	if err != nil {
		return nil, policy, err
	}
	log.Debug().
		Str("path", snapshotPath).
		Int("loans", len(snap.Sources.Loans)).
		Int("fixed_expenses", len(snap.Sources.FixedExpenses)).
		Int("subscriptions", len(snap.Sources.Subscriptions)).
		Msg("Loaded snapshot")
	return snap, policy, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
