/*
Package app contains the building blocks of a ledger application: the
router dispatching messages to handlers, the decorator chain, the signed
transaction format and the Ledger host that executes transactions against
a store.
*/
package app
