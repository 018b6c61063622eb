// Package session holds the state of the running modeling session: its
// identifier and the parameter file it was loaded from.
//
// A Session is created once at startup and handed to the startup controller,
// which is the only caller of MarkLoaded. A Watcher can follow the loaded
// file on disk for the rest of the process lifetime.
package session
