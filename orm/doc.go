/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* It has a primary key, which for ledger accounts is the account address.
* It may possess secondary multi value indexes.

Creating a model under an existing key is rejected. This is the account
allocation primitive of the ledger: an address can be allocated only once.
*/
package orm
