// Package restaurant provides the Restaurant aggregate and its product
// catalog. The aggregate backs the single ownership check of the order
// listing flow and the referential validation of order payloads: every
// line item must reference a product of the order's restaurant.
package restaurant
