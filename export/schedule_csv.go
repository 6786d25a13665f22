package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"home-affordability/domain"
)

var scheduleHeader = []string{
	"Month",
	"Total Payment",
	"Interest Paid",
	"Principal Paid",
	"Cumulative Interest",
	"Cumulative Principal",
	"Remaining Balance",
}

// WriteScheduleCSV writes the schedule as CSV with a header row and a
// trailing TOTALS row.
func WriteScheduleCSV(w io.Writer, schedule []domain.AmortizationEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(scheduleHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, e := range schedule {
		row := []string{
			strconv.Itoa(e.Month),
			money(e.TotalPayment),
			money(e.InterestPaid),
			money(e.PrincipalPaid),
			money(e.CumulativeInterest),
			money(e.CumulativePrincipal),
			money(e.RemainingBalance),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv: write month %d: %w", e.Month, err)
		}
	}

	payment, interest, principal := domain.ScheduleTotals(schedule)
	if err := cw.Write([]string{
		"TOTALS", money(payment), money(interest), money(principal), "", "", "",
	}); err != nil {
		return fmt.Errorf("csv: write totals: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

func money(d decimal.Decimal) string {
	return FormatCurrency(d.InexactFloat64())
}
