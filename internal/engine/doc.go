// Package engine wraps the Docker Engine SDK client for talking to the
// local container engine API, which podman exposes compatibly through
// its service socket.
//
// podkit's run path never needs a daemon: composed options are handed
// to the launcher binary directly. The engine client exists for the
// doctor command, which reports whether the engine socket is present
// and answering.
package engine
