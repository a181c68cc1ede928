// Package identity resolves who is signed in for a request.
//
// The comment form renders differently for signed-in readers, so rendering
// needs a way to ask "who is this?" without caring how the answer is
// produced. Provider is that seam. Two implementations ship with Colloquy:
//
//   - SessionProvider reads a session cookie and resolves the user through
//     a server-side session store (pkg/session).
//   - TokenProvider verifies a signed JWT carried in a cookie or
//     Authorization header, with no server-side state.
//
// Site builds the account URLs (login, logout, profile) that the signed-in
// form decoration links to.
package identity
