/*
Package utils provides decorators that are useful for most applications:
savepoints, panic recovery, logging and metrics.
*/
package utils
