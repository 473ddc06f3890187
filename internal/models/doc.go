// Package models defines the core domain models for SplitBill.
//
// # Models
//
//   - Bill: one shared-expense event (participants, items, extras, currency)
//   - Participant: a person splitting the bill, identified per bill by ID
//   - Item: a cost entry shared by a subset of participants
//   - Extra: a tax, service charge, discount or other adjustment with a split mode
//   - BillCalculation: the derived per-participant breakdown of a bill
//   - MemberBalance / Settlement: aggregated balances across saved bills
//
// # Design Principles
//
// 1. **Plain data**: models are JSON-serializable structs; the JSON field names match the
// stored history format (`id`, `hostId`, `participantIds`, ...)
// 2. **Exact money**: all amounts are decimal.Decimal, never float64
// 3. **IDs over pointers**: relationships use ID strings (Item.ParticipantIDs, Bill.HostID)
// 4. **Mutate through methods**: Add*/Remove* keep a bill's invariants intact
package models
