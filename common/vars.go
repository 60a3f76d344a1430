package common

// Version is set at build time via -ldflags.
var Version = "dev"

// PackageName namespaces metrics and tags logs.
const PackageName = "biosdk"
