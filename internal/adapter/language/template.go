package language

import (
	"context"
	"fmt"
	"strings"

	"marketbrief/internal/domain"
	"marketbrief/internal/symbols"
)

// TemplateWriter produces a deterministic narrative brief without any model
// call. It is the default writer and the fallback when a model-backed writer
// fails.
type TemplateWriter struct{}

func NewTemplateWriter() *TemplateWriter {
	return &TemplateWriter{}
}

func (w *TemplateWriter) Write(_ context.Context, input domain.BriefInput) (string, error) {
	var b strings.Builder

	names := make([]string, 0, len(input.Symbols))
	for _, s := range input.Symbols {
		names = append(names, fmt.Sprintf("%s (%s)", symbols.CompanyName(s), s))
	}

	fmt.Fprintf(&b, "Market brief for %q\n\n", input.Query)
	fmt.Fprintf(&b, "Coverage: %s\n", strings.Join(names, ", "))

	if len(input.Context) > 0 {
		b.WriteString("\nRelevant context:\n")
		for _, c := range input.Context {
			fmt.Fprintf(&b, "- %s\n", c.Text)
		}
	}

	if len(input.Exposure) > 0 {
		b.WriteString("\nPortfolio exposure:\n")
		for _, p := range input.Exposure {
			line := fmt.Sprintf("- %s (%s): %.1f%% ($%.0f)",
				symbols.CompanyName(p.Symbol), p.Symbol, p.Weight*100, p.Value)
			if p.PriceKnown {
				line += fmt.Sprintf(", last close $%.2f", p.Price)
			} else {
				line += ", price unavailable"
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\nEarnings:\n")
	for _, s := range input.Symbols {
		rows := input.Earnings[s]
		if len(rows) == 0 {
			fmt.Fprintf(&b, "- %s: earnings unavailable\n", s)
			continue
		}
		latest := rows[len(rows)-1]
		fmt.Fprintf(&b, "- %s: %s actual %.2f vs estimate %.2f\n",
			s, latest.Quarter, latest.Actual, latest.Estimate)
	}

	return b.String(), nil
}
