package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"loan-schedule/domain"
	"loan-schedule/repository"
	"loan-schedule/service"
)

type scheduleOptions struct {
	terms       domain.LoanTerms
	jsonOutput  bool
	summaryOnly bool
}

func newScheduleCmd(root *rootOptions) *cobra.Command {
	opts := &scheduleOptions{}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the EMI and amortization schedule",
		Long: `Prints the EMI, totals and the month-by-month amortization schedule.

Examples:
  emi schedule --principal 500000 --rate 8.5 --tenure 240
  emi schedule --principal 500000 --rate 8.5 --tenure 240 --prepayment 5000 --summary
  emi schedule --principal 120000 --rate 0 --tenure 12 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchedule(cmd, root, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.terms.Principal, "principal", 0, "loan principal")
	cmd.Flags().Float64Var(&opts.terms.AnnualRatePercent, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&opts.terms.TenureMonths, "tenure", 0, "tenure in months")
	cmd.Flags().Float64Var(&opts.terms.MonthlyPrepayment, "prepayment", 0, "extra principal paid every month")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.summaryOnly, "summary", false, "print totals only")
	cmd.MarkFlagRequired("principal")
	cmd.MarkFlagRequired("rate")
	cmd.MarkFlagRequired("tenure")

	return cmd
}

func runSchedule(cmd *cobra.Command, root *rootOptions, opts *scheduleOptions) error {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(root.logLevel())

	loanService := service.NewLoanService(repository.NewMemoryCache(), logger, time.Hour)

	result, err := loanService.CalculateLoan(cmd.Context(), opts.terms)
	if err != nil && !errors.Is(err, domain.ErrNonConvergent) {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(result); encErr != nil {
			return fmt.Errorf("failed to encode result: %w", encErr)
		}
	} else {
		fmt.Fprintln(out, renderSummary(opts.terms, result))
		if !opts.summaryOnly {
			fmt.Fprintln(out, renderSchedule(result.Schedule))
		}
	}

	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), warningStyle.Render("warning: the schedule above is partial"))
		return err
	}
	return nil
}
