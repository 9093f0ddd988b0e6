package cdrom

import "encoding/binary"

// handleReadCapacity10 implements opcode 0x25: last LBA (leadout-1) and the
// 2048-byte logical block size.
func handleReadCapacity10(cbw *Cbw, d *Dispatcher) {
	if !d.Ready() {
		d.FinishFail(cbw, SenseNotReady, AscLogicalUnitNotReady, 0x00, nil)
		return
	}
	lastLBA := d.Disc().LeadoutLBA() - 1
	buf := make([]byte, 8)
	binary.BigEndian.PutUint32(buf[0:4], lastLBA)
	binary.BigEndian.PutUint32(buf[4:8], TransferBlockSize)
	d.FinishOK(cbw, buf)
}
