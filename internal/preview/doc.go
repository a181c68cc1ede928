// Package preview implements the colloquy preview server.
//
// The preview server renders fixture pages through a real engine so comment
// list markup, the comment form, and the login flow can be exercised in a
// browser before the host system is wired up. It watches the fixture files
// and reloads connected browsers when they change.
package preview
