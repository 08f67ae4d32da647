package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"loan-schedule/domain"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorAccent  = lipgloss.Color("#F59E0B")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(16)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Align(lipgloss.Right)
)

func renderSummary(terms domain.LoanTerms, result domain.LoanResult) string {
	lines := []string{
		titleStyle.Render("Loan summary"),
		labelStyle.Render("EMI") + strconv.FormatInt(result.EMI, 10),
		labelStyle.Render("Total interest") + strconv.FormatInt(result.TotalInterest, 10),
		labelStyle.Render("Total amount") + strconv.FormatInt(result.TotalAmount, 10),
		labelStyle.Render("Months") + fmt.Sprintf("%d of %d", result.ActualTenure, terms.TenureMonths),
	}
	if !result.Converged {
		lines = append(lines, warningStyle.Render("Loan does not amortize with these terms"))
	}
	return strings.Join(lines, "\n")
}

func renderSchedule(schedule []domain.ScheduleEntry) string {
	rows := make([][]string, 0, len(schedule))
	for _, entry := range schedule {
		rows = append(rows, []string{
			strconv.Itoa(entry.Month),
			strconv.FormatInt(entry.PrincipalPaid, 10),
			strconv.FormatInt(entry.InterestPaid, 10),
			strconv.FormatInt(entry.Balance, 10),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("MONTH", "PRINCIPAL", "INTEREST", "BALANCE").
		Rows(rows...)

	return t.String()
}
