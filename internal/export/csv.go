package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/dfarias/obralog/internal/store"
)

// MeasurementsToCSV writes one row per measurement item, with the
// measurement header columns repeated, plus the computed totals.
func MeasurementsToCSV(measurements []store.Measurement, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	header := []string{
		"Measurement", "Project", "Reference", "Status",
		"Service Code", "Service", "Unit", "Prev Qty", "Curr Qty", "Unit Price", "Total",
		"Subtotal", "Retention %", "Retention", "Net",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, m := range measurements {
		base := []string{
			fmt.Sprintf("%d", m.MeasurementNumber),
			m.ProjectName,
			m.ReferenceDate.Format(time.DateOnly),
			string(m.Status),
		}
		totals := []string{
			formatMoney(m.Subtotal),
			fmt.Sprintf("%.1f", m.RetentionPercentage),
			formatMoney(m.RetentionAmount),
			formatMoney(m.NetValue),
		}

		if len(m.Items) == 0 {
			row := append(append(base, "", "", "", "", "", "", ""), totals...)
			if err := w.Write(row); err != nil {
				return err
			}
			continue
		}

		for _, it := range m.Items {
			row := append(base[:len(base):len(base)],
				it.ServiceCode,
				it.ServiceName,
				it.Unit,
				fmt.Sprintf("%.2f", it.PreviousQuantity),
				fmt.Sprintf("%.2f", it.CurrentQuantity),
				formatMoney(it.UnitPrice),
				formatMoney(it.TotalValue),
			)
			row = append(row, totals...)
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
