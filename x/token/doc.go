/*
Package token implements a minimal fungible token ledger.

A token account holds a balance of a single mint and belongs to a single
owner. Only the owner can authorize a transfer out of an account. Accounts
are allocated at an address chosen by the caller; allocating an address
that is already in use fails.

Accounts are stored using a fixed layout: an 8 byte discriminator followed
by the mint, the owner and the balance.
*/
package token
