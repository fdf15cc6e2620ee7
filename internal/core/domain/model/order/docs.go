// Package order provides domain entities and business logic for order
// management. It implements the Order aggregate root with lifecycle
// management and the fulfillment status machine.
//
// The package includes:
//   - Order: the aggregate root carrying identity, pricing, line items, and lifecycle
//   - Status: the linear state machine Pending -> InProcess -> Sent -> Delivered
//   - LineItem: the product/quantity/unit-price association of an order
//
// Key business rules:
//   - The stored status always agrees with the stage timestamps
//     (deliveredAt implies Delivered, else sentAt implies Sent, and so on)
//   - Advancing sets the next stage timestamp; reverting clears the one being left
//   - Reverts are only allowed within a time-boxed window after the last mutation
//   - Line items are only editable while the order is pending
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
