package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/naveenspark/nudge/internal/clock"
	"github.com/naveenspark/nudge/internal/survey"
	"github.com/naveenspark/nudge/pkg/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0d9f9f")).
			Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	yesStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")).Bold(true)
	noStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e06060")).Bold(true)
)

// withState opens the configured storage for one command.
func (c *cli) withState(fn func(*survey.State) error) error {
	kv, err := openKV(c.cfg)
	if err != nil {
		return err
	}
	defer kv.Close() //nolint:errcheck
	return fn(survey.NewState(kv, clock.Real(), c.log))
}

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the survey record and whether the prompt can appear today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withState(func(st *survey.State) error {
				printStatus(cmd.OutOrStdout(), st.Read(), st.Today(), st.IsEligibleToday())
				return nil
			})
		},
	}
}

func newResetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the survey record so the prompt can appear again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withState(func(st *survey.State) error {
				if err := st.Reset(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "survey record cleared")
				return nil
			})
		},
	}
}

func newCompleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "complete",
		Short: "Mark the survey as completed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withState(func(st *survey.State) error {
				if err := st.Write(domain.CompletedOn(st.Today())); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "survey marked as completed")
				return nil
			})
		},
	}
}

func printStatus(w io.Writer, s domain.SurveyStatus, today string, eligible bool) {
	yesNo := func(b bool) string {
		if b {
			return yesStyle.Render("yes")
		}
		return noStyle.Render("no")
	}
	last := s.LastShownDate
	if last == "" {
		last = "never"
	}
	rows := []struct{ label, value string }{
		{"prompt shown", yesNo(s.HasShownNotification)},
		{"survey completed", yesNo(s.HasCompletedSurvey)},
		{"last shown", valueStyle.Render(last)},
		{"today", valueStyle.Render(today)},
		{"eligible today", yesNo(eligible)},
	}

	fmt.Fprintf(w, "\n  %s\n\n", titleStyle.Render("N U D G E"))
	for _, r := range rows {
		fmt.Fprintf(w, "    %s  %s\n", labelStyle.Render(fmt.Sprintf("%-18s", r.label)), r.value)
	}
	fmt.Fprintln(w)
}
