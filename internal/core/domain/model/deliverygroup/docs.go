// Package deliverygroup contains the DeliveryGroup aggregate: a batch of
// geographically close orders dispatched as a single delivery run.
//
// A group tracks a running-mean centroid of its members' coordinates and a
// member cap. Once dispatched a group is immutable.
package deliverygroup
