// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-cred-guard HTTP handlers and middleware.
//
// All Msg* constants are human-readable message strings written into HTTP
// response bodies when the underlying error must not leak to the caller.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgNoAccountIDProvided is returned when an authenticated route finds
	// no account ID in the request context.
	MsgNoAccountIDProvided = "no account ID provided"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is either
	// expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgAccessDenied is returned when the session role may not use the
	// route.
	MsgAccessDenied = "access denied"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgServiceUnavailable is returned for transient storage failures.
	// Clients may retry the request.
	MsgServiceUnavailable = "service temporarily unavailable, retry later"
)
