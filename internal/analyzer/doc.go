// Package analyzer composes the worker bridge and the session store.
//
// It owns the steps between "operator submitted comments" and "session on
// disk": scoring via the bridge, mapping worker labels onto the stored
// vocabulary, timestamping records, and saving the batch as a session.
package analyzer
