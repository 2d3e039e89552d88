/*
Package commands implements the pairswap command line: key generation,
derivation of escrow addresses, genesis validation and execution of
operation scripts against an in memory ledger.
*/
package commands
