package conf

// Executable is the program name, used for config file discovery,
// environment variable prefixes, and help output.
const Executable = "crier"

// GitVersion is stamped at build time via -ldflags.
var GitVersion = "development"
