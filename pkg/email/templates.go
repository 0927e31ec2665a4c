package email

import (
	"fmt"
	"html"
	"strings"

	"github.com/pavankontham/smart-maps/internal/models"
)

// RouteSummary builds the subject, plain-text, and HTML bodies for sharing
// one saved route search.
func RouteSummary(record *models.SearchRecord) (subject, text, htmlBody string) {
	subject = fmt.Sprintf("Your saved route: %s to %s", record.StartingAddress, record.Destination)

	var lines []string
	lines = append(lines,
		fmt.Sprintf("From: %s", record.StartingAddress),
		fmt.Sprintf("To: %s", record.Destination),
	)
	if record.DistanceText != "" {
		lines = append(lines, fmt.Sprintf("Distance: %s", record.DistanceText))
	}
	if record.DurationText != "" {
		lines = append(lines, fmt.Sprintf("Duration: %s", record.DurationText))
	}
	lines = append(lines,
		fmt.Sprintf("Route type: %s", record.RouteType),
		fmt.Sprintf("Vehicle: %s", record.VehicleType),
	)
	if record.CarbonEstimateKg != nil {
		lines = append(lines, fmt.Sprintf("Estimated CO2: %.2f kg", *record.CarbonEstimateKg))
	}
	if record.EcoScore != nil {
		lines = append(lines, fmt.Sprintf("Eco score: %d/100", *record.EcoScore))
	}
	text = strings.Join(lines, "\n")

	var b strings.Builder
	b.WriteString("<h2>Saved route summary</h2><ul>")
	for _, line := range lines {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	htmlBody = b.String()

	return subject, text, htmlBody
}
