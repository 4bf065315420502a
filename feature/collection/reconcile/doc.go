// Package reconcile connects decoded library documents to the core reconciliation engine.
//
// DocumentAdapter flattens the collection into engine input. TrackIndex resolves
// playlist references to collection tracks, by TrackID for KeyType "0" and by
// location URI for KeyType "1".
package reconcile
