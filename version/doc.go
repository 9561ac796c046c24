// Package version reports build version information for the promptserve
// binaries (--version flag, /info endpoint, outbound User-Agent).
//
// Values are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/promptserve/version.Version=1.0.0"
package version
