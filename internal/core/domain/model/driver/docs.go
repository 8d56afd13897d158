// Package driver implements the DeliveryPerson aggregate: identity, availability,
// balance and last known position.
//
// Key business rules:
//   - a delivery person is linked 1:1 to a user with the delivery_person role
//   - the balance is decreased by DeliveryFee for every completed delivery and
//     increased by ReferralBonus when a referred client is served by someone else
//   - availability is forced to false whenever the balance is at or below
//     AvailabilityFloor at an evaluation point (delivery completion, availability
//     update, periodic sweep)
//   - cancellation and rejection restore availability without re-evaluating the floor
package driver
