package view

import "github.com/flowquote/flowquote/internal/business"

type paymentFilter int

const (
	filterAll paymentFilter = iota
	filterAwaiting
	filterUnpaid
	filterPaid
	filterCount
)

func (f paymentFilter) String() string {
	switch f {
	case filterAwaiting:
		return "Awaiting confirmation"
	case filterUnpaid:
		return "Unpaid"
	case filterPaid:
		return "Paid"
	default:
		return "All"
	}
}

func (f paymentFilter) next() paymentFilter {
	return (f + 1) % filterCount
}

func (f paymentFilter) match(b *business.Business) bool {
	switch f {
	case filterAwaiting:
		return awaitingConfirmation(b)
	case filterUnpaid:
		return !b.Paid()
	case filterPaid:
		return b.Paid()
	default:
		return true
	}
}

// awaitingConfirmation reports a business that says it paid but has not been
// switched to PAID yet.
func awaitingConfirmation(b *business.Business) bool {
	return !b.Paid() && b.PaymentSubmittedAt != nil
}

func filterBusinesses(all []*business.Business, f paymentFilter) []*business.Business {
	out := make([]*business.Business, 0, len(all))

	for _, b := range all {
		if f.match(b) {
			out = append(out, b)
		}
	}

	return out
}
