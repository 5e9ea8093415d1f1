// Package order contains the Order aggregate: the parent of kitchen items,
// carrying delivery geography and the buffer-hold lifecycle.
//
// Once every item of an order leaves the kitchen, the order sits in a
// volume-dependent buffer hold before it becomes eligible for delivery
// grouping. Orders without valid delivery coordinates are never grouped
// automatically; they are surfaced for manual handling.
package order
