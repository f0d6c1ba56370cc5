// ABOUTME: QR code generation tool.
// ABOUTME: Returns the PNG inline as a base64 data URI.
// Package qrcode provides the generate_qr_code tool, which renders text or
// a URL as a QR code PNG and returns it as a data URI that clients can
// display or save directly.
package qrcode
