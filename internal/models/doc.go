// Package models defines the core domain models for SplitIt.
//
// # Models
//
//   - Bill: the aggregate a split is computed from (items, people, tax, tip, mode)
//   - BillItem: one receipt line, assigned to zero or more people
//   - Person: a participant, identified by an opaque ID
//   - Currency: display information for the bill's currency
//   - Transfer: one payment that settles a participant's share with the payer
//
// # Identity
//
// Items and people reference each other by ID strings, never by pointer.
// BillItem.AssignedTo keeps insertion order: the first assignee of an item
// absorbs that item's rounding remainder, so order is part of the data.
//
// Removing a person does not scrub their ID from item assignments. A dangling
// ID simply contributes nothing when an itemized split is computed.
//
// # Money
//
// Every amount is a decimal.Decimal. Models never round; rounding happens only
// in the split calculation.
package models
