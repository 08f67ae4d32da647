package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	verbose    bool
}

// NewRootCmd builds the emi command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "emi",
		Short: "EMI and amortization schedule calculator",
		Long: `emi computes the equated monthly installment of a fixed-rate loan and its
month-by-month amortization schedule, with optional monthly prepayment.

Commands:
  schedule - print the schedule for one set of loan terms
  serve    - start the loan HTTP API`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: $LOAN_CONFIG)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(newScheduleCmd(opts))
	root.AddCommand(newServeCmd(opts))
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) logLevel() logrus.Level {
	if o.verbose {
		return logrus.DebugLevel
	}
	return logrus.WarnLevel
}
