package cost

import (
	"fmt"
	"strings"
)

// ToolMetrics annotates a tool with the cost and quality of one execution.
//
//	cost.ToolMetrics{
//	    Amount:                  0,
//	    Currency:                "USD",
//	    CostDescription:         "sample data, no upstream call",
//	    Accuracy:                0.9,
//	    AverageDurationInMillis: 1,
//	}
type ToolMetrics struct {
	// Amount is the price of one call in Currency.
	Amount float64 `json:"amount"`

	// Currency defaults to USD when empty.
	Currency string `json:"currency,omitempty"`

	// CostDescription explains what the amount covers ("per lookup").
	CostDescription string `json:"cost_description,omitempty"`

	// Accuracy is the expected share of correct answers, 0.0 to 1.0.
	Accuracy float64 `json:"accuracy,omitempty"`

	// AverageDurationInMillis is the typical latency of a call.
	AverageDurationInMillis int64 `json:"average_duration_ms,omitempty"`
}

// String renders the metrics as "0.000000 USD (per lookup), accuracy 90.0%, ~1ms".
func (m ToolMetrics) String() string {
	currency := m.Currency
	if currency == "" {
		currency = "USD"
	}

	parts := []string{fmt.Sprintf("%.6f %s", m.Amount, currency)}
	if m.CostDescription != "" {
		parts[0] = fmt.Sprintf("%s (%s)", parts[0], m.CostDescription)
	}
	if m.Accuracy > 0 {
		parts = append(parts, fmt.Sprintf("accuracy %.1f%%", m.Accuracy*100))
	}
	if m.AverageDurationInMillis > 0 {
		parts = append(parts, fmt.Sprintf("~%dms", m.AverageDurationInMillis))
	}
	return strings.Join(parts, ", ")
}
