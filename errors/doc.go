/*
Package errors implements the error taxonomy shared by all pairswap
extensions.

Reuse the root errors declared here whenever possible and register a
package specific error only when the client must be able to tell it apart.
Codes are unique process wide; Register panics on reuse.

Create errors at the point of failure with ErrXyz.New("...") or
errors.Wrap(err, "...") so that a stacktrace is attached. Only the most
inner wrap records the stack.

	%s is just the error message
	%+v is the message together with the stack trace
*/
package errors
