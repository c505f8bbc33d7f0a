// Package ioutils provides the output sinks for the weread-exporter.
//
// This package contains functions for:
//   - File writing
//   - Filename sanitization
//   - Clipboard writing
//   - Cover image processing
package ioutils
