package planinstance

import "playpark/internal/models"

const (
	minPartialShare     = 0.1
	maxPartialShare     = 0.9
	defaultPartialShare = 0.5
)

// TotalCost is the plan price plus priced addons. Addons the plan does not
// offer cost nothing.
func TotalCost(plan *models.Plan, purchased map[string]int) float64 {
	total := plan.Price
	prices := plan.Addons.Data()
	for name, qty := range purchased {
		if price, ok := prices[name]; ok {
			total += price * float64(qty)
		}
	}
	return total
}

// ResolvePaymentAmount settles the first payment. Partial amounts outside
// 10%..90% of total fall back to half.
func ResolvePaymentAmount(paymentType string, requested, total float64) float64 {
	if paymentType != models.PaymentTypePartial {
		return total
	}
	if requested == 0 {
		requested = total
	}
	if requested < total*minPartialShare || requested > total*maxPartialShare {
		return total * defaultPartialShare
	}
	return requested
}

// InitiallyActive reports whether the instance can be used before any
// gateway confirmation.
func InitiallyActive(method, paymentType string) bool {
	if method == models.PaymentMethodCreditCard {
		return false
	}
	return paymentType == models.PaymentTypeFull
}
