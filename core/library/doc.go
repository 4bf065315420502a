// Package library holds the configuration of the library under inspection:
// the document path, the scanned music directory, the audio extension
// allow-list and the document cache lifetime.
package library
