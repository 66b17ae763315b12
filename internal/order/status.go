package order

import "quickcart/internal/models"

// statusGraph pins the forward-only lifecycle: Confirmed, Processing,
// Shipped, Delivered in sequence, with cancellation possible until the
// order has shipped. Delivered and Cancelled are terminal.
var statusGraph = map[models.OrderStatus][]models.OrderStatus{
	models.StatusConfirmed:  {models.StatusProcessing, models.StatusCancelled},
	models.StatusProcessing: {models.StatusShipped, models.StatusCancelled},
	models.StatusShipped:    {models.StatusDelivered},
}

// canTransition reports whether moving from one status to another is
// allowed. Re-asserting the current status is treated as a no-op update
// and always permitted.
func canTransition(from, to models.OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range statusGraph[from] {
		if next == to {
			return true
		}
	}
	return false
}
