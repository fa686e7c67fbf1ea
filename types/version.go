package types

// Version is the module version, surfaced by the CLI.
const Version = "0.4.0"
