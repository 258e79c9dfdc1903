package marketdata

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rxtech-lab/bovespa-fetcher/internal/types"
)

// HeadColumns are the column titles of the printed table.
var HeadColumns = []string{"Date", "Open", "High", "Low", "Close", "Volume", "Dividends", "Stock Splits"}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// RenderHead renders the first n rows of the table.
func RenderHead(priceTable types.PriceTable, n int) string {
	rows := priceTable.Head(n)
	cells := make([][]string, 0, len(rows))

	for _, row := range rows {
		cells = append(cells, []string{
			row.Time.Format("2006-01-02 15:04:05-07:00"),
			formatPrice(row.Open),
			formatPrice(row.High),
			formatPrice(row.Low),
			formatPrice(row.Close),
			strconv.FormatFloat(row.Volume, 'f', 0, 64),
			formatPrice(row.Dividends),
			formatPrice(row.StockSplits),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		}).
		Headers(HeadColumns...).
		Rows(cells...).
		String()
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
