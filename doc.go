// Package plbook reconstructs the trading performance of a brokerage account
// from its raw history.
//
// The core functionalities include:
//   - Position matching: grouping buy and sell fills into lots (one round trip
//     trade per instrument group), tracking quantities and the FIFO cost of the
//     units still held, and the realized profit once a lot is closed.
//   - As-of replay: rebuilding the state any lot had at the end of a past day.
//   - Daily balance: a continuous, day by day ledger of principal, open
//     positions cost, realized revenue, cash balance and total assets.
//
// All computations are pure: they take explicit input collections and return
// new values. Reading broker exports lives in package sbi, rendering in
// package renderer and persistence in package store.
package plbook
