// Package errors provides structured, actionable error messages.
//
// Every error carries a code that maps to a registered template:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Error Categories
//
//   - runtime: rendering errors (teleport target missing, use after destroy)
//   - validation: invalid render input (teleport child arity)
//   - config: config file and redirect allow-list problems
//   - cli: command line failures
//
// # Usage
//
// Domain errors such as teleport.ArityError unwrap to a *VangoError, so
// callers can match on codes without knowing the concrete type:
//
//	if errors.Code(err) == errors.CodeTeleportTarget {
//	    ...
//	}
//
//	errors.Fprint(os.Stderr, err)
//	// Output:
//	// ERROR E121: Teleport target not found
//	//
//	//   No element matches "#modals".
//	//
//	//   Hint: Render the target container before the teleport.
//	//
//	//   Learn more: https://vango.dev/docs/errors/E121
package errors
