/*
Package swaptest provides helpers and mock implementations for testing
extensions: keys and addresses, authenticators, transactions, handlers and
decorators.
*/
package swaptest
