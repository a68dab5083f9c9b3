// Package shopping renders the downloadable shopping list.
package shopping

import (
	"fmt"
	"strings"

	"github.com/ipoderator/foodgram-project-react/internal/database"
)

const header = "Shopping list:"

// Report renders the aggregated cart into the flat text document served as
// the shopping-list attachment. An empty cart yields the header line only.
func Report(items []database.AggregatedIngredient) string {
	var b strings.Builder
	b.WriteString(header)
	for _, item := range items {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s - %d%s.", item.Name, item.TotalAmount, item.MeasurementUnit)
	}
	return b.String()
}
