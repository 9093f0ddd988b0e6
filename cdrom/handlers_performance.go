package cdrom

import "encoding/binary"

// handleWin2kSpecific implements opcode 0xA4: fixed 8-byte reply the
// Windows 2000 class driver probes for during enumeration.
func handleWin2kSpecific(cbw *Cbw, d *Dispatcher) {
	d.FinishOK(cbw, make([]byte, 8))
}

// handleGetPerformance implements opcode 0xAC: an 8-byte header followed by
// one Type-0 performance descriptor spanning the full LBA range, truncated
// to dCBWDataTransferLength per the resolved allocation length ambiguity
// (§9 open questions).
func handleGetPerformance(cbw *Cbw, d *Dispatcher) {
	buf := make([]byte, 20)
	binary.BigEndian.PutUint32(buf[0:4], 0x0000000C)   // performance data length
	binary.BigEndian.PutUint32(buf[8:12], 0)           // start LBA
	binary.BigEndian.PutUint32(buf[12:16], 0xFFFFFFFF) // end LBA
	binary.BigEndian.PutUint32(buf[16:20], 176)        // read speed, KB/s

	alloc := int(cbw.DataTransferLength)
	if alloc > 0 && alloc < len(buf) {
		buf = buf[:alloc]
	}
	d.FinishOK(cbw, buf)
}

// handleReadDiscStructure implements opcode 0xAD: format 0x00 (physical
// format, DVD-only) and 0x01 (copyright, a token descriptor) both reply
// with a fixed near-empty structure since this emulator serves CD media.
func handleReadDiscStructure(cbw *Cbw, d *Dispatcher) {
	format := cbw.CB[7]
	alloc := int(cbw.CB[8])<<8 | int(cbw.CB[9])

	switch format {
	case 0x00, 0x01:
		buf := make([]byte, 6)
		binary.BigEndian.PutUint16(buf[0:2], 4)
		if alloc > 0 && alloc < len(buf) {
			buf = buf[:alloc]
		}
		d.FinishOK(cbw, buf)
	default:
		d.FinishFail(cbw, SenseIllegalRequest, AscInvalidFieldInCDB, 0x00, nil)
	}
}
