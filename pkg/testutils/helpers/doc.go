// ABOUTME: Test helper utilities for tool contexts and event assertions.
// ABOUTME: Keeps tool and server tests free of setup boilerplate.
// Package helpers provides builders for tool contexts and utilities for
// capturing and asserting events in tests.
package helpers
