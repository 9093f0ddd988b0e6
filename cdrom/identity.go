package cdrom

import "fmt"

// FallbackSerial is used when no hardware identifier is available.
const FallbackSerial = "USBODE-00000001"

// GenerateSerial derives the unit serial number INQUIRY VPD page 0x80
// reports from a hardware identifier, falling
// back to a fixed placeholder when none is available. Grounded on the
// constructor's snprintf/fallback pair in usbcdgadget.cpp.
func GenerateSerial(hardwareID uint32, ok bool) string {
	if !ok {
		return FallbackSerial
	}
	return fmt.Sprintf("USBODE-%08X", hardwareID)
}
