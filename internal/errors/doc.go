// Package errors provides structured, actionable error messages for the
// colloquy CLI.
//
// The errors package implements an error system that:
//   - Shows exact file locations (file, line, column)
//   - Explains what went wrong in plain language
//   - Suggests how to fix issues
//   - Links to documentation for deeper understanding
//
// # Error Categories
//
// Errors are organized into categories:
//   - render: comment list and form rendering errors
//   - content: pages file errors (missing, malformed, bad slugs)
//   - publish: output destination errors
//   - session: session store errors
//   - config: colloquy.json errors
//   - cli: command-level errors
//
// # Error Codes
//
// Each error has a unique code (e.g., "E120") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Usage
//
//	err := errors.New("E120").
//	    WithLocationFromOffset("colloquy.json", data, syntaxErr.Offset).
//	    WithSuggestion("Check that colloquy.json is valid JSON")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E120: Invalid colloquy.json
//	//
//	//   colloquy.json:4:18
//	//
//	//      2 │   "site": {
//	//      3 │     "baseUrl": "https://blog.example.com"
//	//   →  4 │   "comments": {
//	//        │                  ^
//	//      5 │     "liveList": true
//	//
//	//   Hint: Check that colloquy.json is valid JSON
//	//
//	//   Learn more: https://colloquy.dev/docs/errors/E120
package errors
