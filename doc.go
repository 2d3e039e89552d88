/*
Package pairswap defines the interfaces shared by all pairswap extensions:
storage, transactions, handlers and the context helpers used to carry
block time and logging.

The state machine implemented on top of it is a two-party conditional
asset exchange. See x/escrow for the escrow record and the deposit
protocol, and x/token for the asset accounts the escrow moves funds
between.
*/
package pairswap
