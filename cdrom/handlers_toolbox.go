package cdrom

const toolboxEntrySize = 40

func toolboxEntry(index int, name string, size uint64) []byte {
	buf := make([]byte, toolboxEntrySize)
	buf[0] = uint8(index)
	buf[1] = 0 // type: image
	copy(buf[2:35], fixedASCIIZero(name, 33))
	// 40-bit big-endian size
	buf[35] = byte(size >> 32)
	buf[36] = byte(size >> 24)
	buf[37] = byte(size >> 16)
	buf[38] = byte(size >> 8)
	buf[39] = byte(size)
	return buf
}

func fixedASCIIZero(s string, n int) []byte {
	buf := make([]byte, n)
	copy(buf, s)
	return buf
}

// handleTbListItems implements opcodes 0xD0/0xD7: catalog enumeration, up to
// MaxToolboxEntries entries, one 40-byte record per item.
func handleTbListItems(cbw *Cbw, d *Dispatcher) {
	c := d.Catalog()
	if c == nil {
		d.FinishOK(cbw, nil)
		return
	}
	n := c.Count()
	if n > MaxToolboxEntries {
		n = MaxToolboxEntries
	}
	buf := make([]byte, 0, n*toolboxEntrySize)
	for i := 0; i < n; i++ {
		buf = append(buf, toolboxEntry(i, c.Name(i), c.Size(i))...)
	}
	alloc := int(cbw.CB[7])<<8 | int(cbw.CB[8])
	if alloc > 0 && alloc < len(buf) {
		buf = buf[:alloc]
	}
	d.FinishOK(cbw, buf)
}

// handleTbGetCount implements opcodes 0xD2/0xDA: a single-byte item count,
// capped at MaxToolboxEntries.
func handleTbGetCount(cbw *Cbw, d *Dispatcher) {
	count := 0
	if c := d.Catalog(); c != nil {
		count = c.Count()
	}
	if count > MaxToolboxEntries {
		count = MaxToolboxEntries
	}
	d.FinishOK(cbw, []byte{uint8(count)})
}

// handleTbSetNextCd implements opcode 0xD8: requests a media switch to the
// catalog entry at CDB[1]. The switch itself (unmounting current media,
// re-attaching the new one) is performed by whatever owns the Catalog and
// calls Dispatcher.AttachMedia; this handler only forwards the request.
func handleTbSetNextCd(cbw *Cbw, d *Dispatcher) {
	c := d.Catalog()
	if c == nil {
		d.FinishFail(cbw, SenseIllegalRequest, AscInvalidCommand, 0x00, nil)
		return
	}
	if err := c.SetNext(int(cbw.CB[1])); err != nil {
		d.FinishFail(cbw, SenseIllegalRequest, AscInvalidFieldInCDB, 0x00, nil)
		return
	}
	d.FinishOK(cbw, nil)
}

// handleTbListDevices implements opcode 0xD9: a fixed single-device reply
// describing this emulator instance, since it exposes exactly one logical
// unit.
func handleTbListDevices(cbw *Cbw, d *Dispatcher) {
	buf := toolboxEntry(0, d.Product(), 0)
	d.FinishOK(cbw, buf)
}
