// Package services holds the domain services that operate on parcels without
// owning them.
//
//   - PricingEngine maps (category, zone, weight, insured) to a Pricing using a
//     tariff table. It is pure and safe for concurrent use.
//   - ParcelLifecycle runs a status change on a parcel together with the side
//     effects the change requires: GPS snapshots from the party locator and the
//     one-active-parcel-per-courier check.
//
// Neither service persists anything; the use case handlers load and save parcels
// inside a unit of work.
package services
