// Package codec converts DJ_PLAYLISTS XML text to and from the collection model.
//
// # Decoding
//
// Decode captures every attribute as a raw string. The root must be DJ_PLAYLISTS
// with COLLECTION and PLAYLISTS children, PLAYLISTS must hold exactly one folder
// NODE, and each NODE must be a folder (Type "0") holding only NODE children or a
// playlist (Type "1") holding only TRACK references. Only whitespace, comments
// and processing instructions may follow the root element. Violations return a
// *FormatError and no document.
//
// # Encoding
//
// Encode writes a literal XML declaration, then the fixed element order
// DJ_PLAYLISTS > PRODUCT > COLLECTION > TRACK* > PLAYLISTS > NODE tree with a
// two-space indent. Attribute order follows the wire schema. Entries on
// COLLECTION, Count, KeyType and Entries on nodes, End and colours on position
// marks, and node child lists are written only when present in the model.
//
// Only whitespace is a codec decision: Decode(Encode(d)) reproduces d field for
// field, but the source indentation is not preserved.
package codec
