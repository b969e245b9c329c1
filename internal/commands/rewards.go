package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-points/internal/models"
	"github.com/insightdelivered/statement-points/internal/rewards"
)

type rentFlags struct {
	rent     float64
	eco      float64
	biltCash bool
}

func (r *rentFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&r.rent, "rent", 0, "monthly rent in dollars (default from config)")
	cmd.Flags().Float64Var(&r.eco, "ecosystem-spend", 0, "monthly Bilt Cash redeemed outside rent (default from config)")
	cmd.Flags().BoolVar(&r.biltCash, "bilt-cash", false, "convert Bilt Cash to rent points (default from config)")
}

// settings overlays the flags the user set onto the configured defaults.
func (r *rentFlags) settings(cmd *cobra.Command, e *env) rewards.RentSettings {
	s := rewards.RentSettings{
		MonthlyRent:           e.cfg.Rewards.MonthlyRent,
		MonthlyEcosystemSpend: e.cfg.Rewards.EcosystemSpend,
		Enabled:               e.cfg.Rewards.BiltCash,
	}
	if cmd.Flags().Changed("rent") {
		s.MonthlyRent = r.rent
	}
	if cmd.Flags().Changed("ecosystem-spend") {
		s.MonthlyEcosystemSpend = r.eco
	}
	if cmd.Flags().Changed("bilt-cash") {
		s.Enabled = r.biltCash
	}
	return s
}

func newCompareCommand(e *env) *cobra.Command {
	var cards []string
	var asJSON bool
	var rf rentFlags

	cmd := &cobra.Command{
		Use:   "compare <statement> [statement ...]",
		Short: "Project annual points, fees and credits for each card",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := cards
			if len(names) == 0 {
				names = e.cfg.Rewards.Cards
			}
			keys := models.AllCardKeys
			if len(names) > 0 {
				keys = nil
				for _, n := range names {
					k, err := models.ParseCardKey(n)
					if err != nil {
						return err
					}
					keys = append(keys, k)
				}
			}

			res, err := e.ingestPaths(cmd.Context(), cmd, args)
			if err != nil {
				return err
			}
			rent := rf.settings(cmd, e)
			summaries, err := rewards.Compare(keys, res.Transactions, &rent)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), summaries)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total spend: $%.2f\n\n", rewards.TotalSpend(res.Transactions))
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "CARD\tPOINTS\tRENT PTS\tFEE\tCREDITS\tPTS/FEE $\t")
			for _, s := range summaries {
				fmt.Fprintf(tw, "%s\t%.0f\t%.0f\t$%.0f\t$%.0f\t%.1f\t\n",
					s.Name, s.Points, s.RentPts, s.AnnualFee, s.Credits, s.PointsPerFee)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringSliceVar(&cards, "cards", nil, "cards to compare, e.g. csr,bilt (default all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	rf.register(cmd)
	return cmd
}

func newOptimizeCommand(e *env) *cobra.Command {
	var cardA, cardB string
	var asJSON bool
	var rf rentFlags

	cmd := &cobra.Command{
		Use:   "optimize <statement> [statement ...]",
		Short: "Route each spend category to the better of two cards",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cardA == "" {
				cardA = e.cfg.Rewards.CardA
			}
			if cardB == "" {
				cardB = e.cfg.Rewards.CardB
			}
			a, b, err := rewards.ParsePair(cardA, cardB)
			if err != nil {
				return err
			}

			res, err := e.ingestPaths(cmd.Context(), cmd, args)
			if err != nil {
				return err
			}
			rent := rf.settings(cmd, e)
			opt, err := rewards.Optimize(a, b, res.Transactions, &rent)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), opt)
			}
			return printOptimization(cmd, opt)
		},
	}

	cmd.Flags().StringVar(&cardA, "a", "", "first card (default from config)")
	cmd.Flags().StringVar(&cardB, "b", "", "second card (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	rf.register(cmd)
	return cmd
}

func printOptimization(cmd *cobra.Command, opt *rewards.Optimization) error {
	out := cmd.OutOrStdout()
	name := map[string]string{
		rewards.SideA: rewards.Cards[opt.CardA].Name,
		rewards.SideB: rewards.Cards[opt.CardB].Name,
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tSPEND\tA\tB\tUSE")
	for _, asg := range opt.Assignments {
		fmt.Fprintf(tw, "%s\t$%.2f\t%gx %.0f\t%gx %.0f\t%s\n",
			asg.Label, asg.Spend, asg.MultA, asg.PtsIfA, asg.MultB, asg.PtsIfB, name[asg.AssignedTo])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s: %.0f pts on $%.2f\n", name[rewards.SideA], opt.PtsA, opt.SpendOnA)
	fmt.Fprintf(out, "%s: %.0f pts on $%.2f\n", name[rewards.SideB], opt.PtsB, opt.SpendOnB)
	if opt.BiltCash != nil {
		fmt.Fprintf(out, "Bilt Cash: $%.2f earned, %.0f rent pts", opt.BiltCash.Earned, opt.RentPts)
		var notes []string
		if opt.BiltCash.Shortfall > 0 {
			notes = append(notes, fmt.Sprintf("$%.2f short of full rent", opt.BiltCash.Shortfall))
		}
		if opt.BiltCash.CarryoverExcess > 0 {
			notes = append(notes, fmt.Sprintf("$%.2f over carryover limit", opt.BiltCash.CarryoverExcess))
		}
		if len(notes) > 0 {
			fmt.Fprintf(out, " (%s)", strings.Join(notes, "; "))
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Combined: %.0f pts, $%.0f in fees, $%.0f in credits\n",
		opt.CombinedPts, opt.CombinedAnnualFee, opt.CombinedCredits)
	return nil
}
