// Package thin stores fat handles in a single machine word.
//
// A type F is erasable when some E implements Erasable[F]: Erase reduces an
// F to one pointer and Unerase rebuilds the same F from that pointer alone.
// Ptr[F, E] holds the erased word and converts back on demand, so a
// two-word handle can live in an atomic slot, a tagged pointer or an
// interface-free field.
package thin
