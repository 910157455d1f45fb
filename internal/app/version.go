package app

// version is set at build time via -ldflags "-X ...app.version=v1.2.3".
var version = "dev"

// BuildVersion returns the version string baked into the binary.
func BuildVersion() string { return version }
