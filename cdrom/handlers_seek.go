package cdrom

import "encoding/binary"

// handleSeek10 implements opcode 0x2B: repositions playback without
// starting a data transfer.
func handleSeek10(cbw *Cbw, d *Dispatcher) {
	if !d.Ready() {
		d.FinishFail(cbw, SenseNotReady, AscLogicalUnitNotReady, 0x00, nil)
		return
	}
	lba := binary.BigEndian.Uint32(cbw.CB[2:6])
	if a := d.Audio(); a != nil {
		if err := a.Seek(lba); err != nil {
			d.FinishFail(cbw, SenseMediumError, AscMediumReadError, 0x00, nil)
			return
		}
	}
	d.FinishOK(cbw, nil)
}
