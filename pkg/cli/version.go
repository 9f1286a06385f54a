package cli

// Version is the build version of the binary, shown by --version.
type Version string
