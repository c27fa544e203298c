// Package http implements the REST transport of go-cred-guard.
//
// It exposes the login and password change endpoints, the administrator
// surface (account registration, locked account listing and unlocking,
// security policy management) and the version endpoint. Request tracing,
// access logging, JWT authentication and the admin role gate are handled
// here before requests reach the service layer. Service and store errors are
// translated to status codes in errors_mapper.go.
package http
