// Package models defines the domain models for the trip settlement engine.
//
// # Model groups
//
//   - Expense / ExpenseParticipant: shared-expense input records. These are
//     owned by the trip application; the engine reads them and never writes
//     them back.
//   - NormalizedExpense, UserBalance, SuggestedSettlement, Summary: derived,
//     ephemeral computation output. Recomputed on every call, never stored.
//   - SettlementRecord: the one persisted entity. Created when a user accepts
//     a suggested settlement, settled exactly once when payment is confirmed.
//
// # Design principles
//
//  1. All money amounts are integers in minor currency units (MinorUnits).
//     Floating point never touches a balance.
//  2. Currency codes travel with every amount; there is no ambient or
//     implicit base currency.
//  3. Relationships use ID strings instead of pointers to avoid circular
//     references across the storage boundary.
package models
