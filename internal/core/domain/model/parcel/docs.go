// Package parcel provides the Parcel aggregate root and the value objects that
// describe a parcel travelling through the delivery pipeline.
//
// The package includes:
//   - Parcel: the aggregate root holding identity, parties, pricing, payment and tracking data
//   - Status: the lifecycle state machine (PENDING, PICKED_UP, IN_TRANSIT, DELIVERED, CANCELLED)
//   - Category, Zone, PaymentMethod, PaymentStatus: closed enumerations that round-trip by name
//   - Reference: the externally visible COL-XXXXXXXX identifier and its generator
//   - Pricing: the total price with its courier and platform shares
//   - Event: domain events raised by the aggregate and relayed through the outbox
//
// Key business rules:
//   - A parcel is created PENDING with payment PENDING and a freshly computed price
//   - The price is recomputed whenever category, zone, weight or insurance may change
//   - Status only moves forward; DELIVERED and CANCELLED are terminal
//   - Picking up requires an assigned courier
//   - The GPS snapshot is only written by lifecycle transitions, never by field edits
package parcel
