/*
Package sigs provides basic authentication
middleware to verify the ed25519 signatures on the transaction,
and maintain nonces for replay protection.

A signer is identified by its public key, which is also its address.
*/
package sigs
