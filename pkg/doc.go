// Package pkg provides shared ambient utilities for the usbode CD-ROM
// emulator: structured logging and sentinel errors used across the
// transport, dispatcher, and command handler packages.
//
// The package has zero external dependencies, relying only on the Go
// standard library.
//
// # Logging
//
// The logging subsystem wraps [log/slog] with emulator-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentDispatcher, "command dispatched", "opcode", 0x28)
//
// # Errors
//
// Common transport and capability errors are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrStall) {
//	    // Handle endpoint stall
//	}
package pkg
