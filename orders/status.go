package orders

import "krishi/models"

// transitions is the closed set of legal status moves. cancelled and
// delivered are terminal.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPending:   {models.OrderShipped, models.OrderCancelled},
	models.OrderShipped:   {models.OrderDelivered},
	models.OrderDelivered: {},
	models.OrderCancelled: {},
}

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s models.OrderStatus) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
