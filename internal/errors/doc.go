// Package errors provides structured, coded errors for domkit.
//
// Every error carries a short code (e.g. "E001") that maps to a registered
// template with a category, a one-line message, a longer explanation and a
// documentation link. Call sites add the specifics:
//
//	err := errors.New("E003").
//	    WithSubject("ul > li:nth(2)").
//	    WithSuggestion("Use :nth-child(2)").
//	    Wrap(parseErr)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E003: Invalid selector
//	//
//	//   ul > li:nth(2)
//	//
//	//   The selector could not be compiled. ...
//	//
//	//   Hint: Use :nth-child(2)
//
// # Error Categories
//
//   - registry: listener registration and removal
//   - dispatch: failures while running a listener
//   - selector: selector compilation and matching
//   - document: parsing and tree manipulation
//   - source: loading documents from files, URLs or buckets
//   - config: domkit.json problems
//   - cli: command line usage
//
// Errors wrap their cause, so errors.Is and errors.As from the standard
// library see through them.
package errors
