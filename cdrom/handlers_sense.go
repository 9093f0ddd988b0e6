package cdrom

// senseReplySize is the fixed-format sense reply length used throughout
// (§4.3); hosts request 18 but the handler always fills the full buffer and
// lets truncation happen at the allocation-length boundary.
const senseReplySize = 18

// handleRequestSense implements opcode 0x03 (§4.3): report the current
// sense triplet in SPC fixed format, then advance it per RequestSense's
// promotion rule.
func handleRequestSense(cbw *Cbw, d *Dispatcher) {
	key, asc, ascq := d.Sense().RequestSense()

	buf := d.InBuffer()[:senseReplySize]
	for i := range buf {
		buf[i] = 0
	}
	buf[0] = 0x70 // current errors, fixed format
	buf[2] = key
	buf[7] = senseReplySize - 8 // additional sense length
	buf[12] = asc
	buf[13] = ascq

	alloc := int(cbw.CB[4])
	if alloc > 0 && alloc < senseReplySize {
		buf = buf[:alloc]
	}
	d.StageReqSenseReply(cbw, buf, CswStatusGood)
}
