package cdrom

// modeSelect10Handler implements opcode 0x55 (§4.8): an OUT-phase command
// whose parameter list is inspected once fully received.
type modeSelect10Handler struct{}

// Begin reads the parameter list length and, if non-zero, requests the OUT
// data phase; a zero length completes immediately with CSW OK, and a length
// larger than the OUT staging buffer fails with Illegal Request / Parameter
// List Length Error before any data phase.
func (h *modeSelect10Handler) Begin(cbw *Cbw, d *Dispatcher) {
	length := int(cbw.CB[7])<<8 | int(cbw.CB[8])
	if length == 0 {
		d.FinishOK(cbw, nil)
		return
	}
	buf := d.OutBuffer()
	if length > len(buf) {
		d.FinishFail(cbw, SenseIllegalRequest, AscParamListLengthError, 0x00, nil)
		return
	}
	d.StageOut(cbw, buf[:length])
}

// OnDataOut parses the Mode Parameter Header(10) and its first page,
// applying the CD Audio Control volume quirk described in §4.8.
func (h *modeSelect10Handler) OnDataOut(length int, d *Dispatcher) {
	// finish reports DataTransferLength minus the IN payload as residue; with
	// no IN payload, carrying only the part of the declared length that was
	// not received makes the CSW residue account for the parameter bytes.
	var residue uint32
	if declared := d.transport.cbw.DataTransferLength; declared > uint32(length) {
		residue = declared - uint32(length)
	}
	cbw := &Cbw{Tag: d.pending.tag, DataTransferLength: residue}
	buf := d.OutBuffer()[:length]
	if len(buf) < 8 {
		d.FinishFail(cbw, SenseIllegalRequest, AscParamListLengthError, 0x00, nil)
		return
	}
	blockDescLen := int(buf[6])<<8 | int(buf[7])
	pageOff := 8 + blockDescLen
	if pageOff+2 > len(buf) {
		d.FinishOK(cbw, nil)
		return
	}
	pageCode := buf[pageOff] & 0x3F
	if pageCode == ModePageCDAudioControl && pageOff+12 <= len(buf) && d.Audio() != nil {
		vol0 := buf[pageOff+9]
		vol1 := buf[pageOff+11]
		v := vol0
		if vol1 < v {
			v = vol1
		}
		d.Audio().SetVolume(v)
	}
	d.FinishOK(cbw, nil)
}
