// Package pkgauth models caller roles and the capability checks the API
// performs before serving a request.
//
// It is intentionally small: roles are resolved elsewhere (for example from
// an API key header), stored on the request context, and consulted through
// boolean capability methods. There is no user management here.
package pkgauth
