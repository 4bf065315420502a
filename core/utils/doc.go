// Package utils provides small helpers shared by the feature packages:
// strict count parsing for document attributes, optional attribute access
// and query flag parsing.
package utils
