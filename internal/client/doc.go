// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the credctl command-line runtime.
//
// It parses a subcommand with its flags, calls the go-cred-guard HTTP API
// through an [adapter.CredentialClient] and prints the outcome.
package client
