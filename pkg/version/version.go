package version

// Version holds the current version of fleetctl. It is set at build time via
// -ldflags.
var Version = "0.0.1"
