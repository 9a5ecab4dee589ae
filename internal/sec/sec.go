// Package sec provides authentication and authorization primitives for the
// REST API.
//
// # Authentication
//
// Authentication uses HTTP Basic Auth. The user's email address is the login
// name, and the password is validated against the bcrypt hash stored in the
// database. The resolved user is carried in the request context using
// connectrpc.com/authn.
//
// IMPORTANT: Basic Auth transmits credentials in base64 encoding (not encrypted).
// TLS must be used in production to protect credentials in transit.
//
// # Components
//
//   - [ParseBasicAuth]: Extracts credentials from an Authorization header value
//   - [Authenticate]: Validates credentials against the user store
//   - [GetAuthenticatedUser], [SetAuthenticatedUser]: Context accessors for user info
//   - [CanModify]: Course ownership check
//   - [HashPassword], [ComparePassword]: bcrypt password hashing utilities
package sec
