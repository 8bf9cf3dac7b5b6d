package insight

import (
	"context"
	"fmt"
	"strings"
)

const noSalesInsight = "No sales yet. Start selling to get insights."

// RuleGenerator produces a fixed-format summary without any external call.
type RuleGenerator struct{}

func (RuleGenerator) Generate(_ context.Context, p Prompt) (string, error) {
	if len(p.Sales) == 0 {
		return noSalesInsight, nil
	}

	top := p.Sales[0]
	for _, s := range p.Sales[1:] {
		if s.Revenue.GreaterThan(top.Revenue) {
			top = s
		}
	}

	low := "None"
	if len(p.LowStock) > 0 {
		low = strings.Join(p.LowStock, ", ")
	}

	return fmt.Sprintf("Top selling product: %s\n\nLow stock products: %s\n\nSuggestion:\n"+
		"Restock high-performing items and reduce focus on low-selling products.", top.Name, low), nil
}
