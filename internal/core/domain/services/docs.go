// Package services provides domain services that apply business rules spanning more
// than one aggregate of the logistics domain.
//
// The package includes:
//   - ReferralLedger: settles driver balances when an order is delivered
//   - RandomEmployeeSelector: picks who follows up on a cancellation
package services
