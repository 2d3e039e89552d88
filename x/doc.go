/*
Package x contains helpers shared by the extensions in its subpackages.

Extensions never depend on a concrete authentication scheme. Handlers
receive an Authenticator and ask it which addresses signed the current
transaction.
*/
package x
