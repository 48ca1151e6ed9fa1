// Package validate holds the stateless shape rules applied to every event
// before it reaches account state.
//
// The rules are re-checked here even though the input collaborator performs
// its own lexical decoding, because the collaborator may pass through raw or
// untrusted fields. Record-level concerns (unknown columns, wrong field
// counts) are the reader's responsibility; this package checks the typed
// event itself. Every violation is an InvalidInput condition and is fatal to
// the whole run.
package validate
