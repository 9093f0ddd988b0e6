package cdrom

func tocEntry(number int, mode TrackMode, lba uint32, msf bool) []byte {
	buf := make([]byte, 8)
	buf[1] = mode.ADRControl()
	buf[2] = uint8(number)
	addr := Address(lba, msf, false)
	copy(buf[4:8], addr[:])
	return buf
}

// handleReadTOC implements opcode 0x43, formats 0x00 (TOC) and 0x01
// (session info); §4.6.
func handleReadTOC(cbw *Cbw, d *Dispatcher) {
	if !d.Ready() {
		d.FinishFail(cbw, SenseNotReady, AscLogicalUnitNotReady, 0x00, nil)
		return
	}
	msf := cbw.CB[1]&0x02 != 0
	format := cbw.CB[2] & 0x0F
	startingTrack := cbw.CB[6]
	alloc := int(cbw.CB[7])<<8 | int(cbw.CB[8])
	disc := d.Disc()

	var reply []byte
	switch format {
	case 0x00:
		reply = buildTOC(disc, startingTrack, msf)
	case 0x01:
		reply = buildSessionInfo(disc, msf)
	default:
		d.FinishFail(cbw, SenseIllegalRequest, AscInvalidFieldInCDB, 0x00, nil)
		return
	}
	if alloc > 0 && alloc < len(reply) {
		reply = reply[:alloc]
	}
	d.FinishOK(cbw, reply)
}

func buildTOC(disc *DiscModel, startingTrack uint8, msf bool) []byte {
	tracks := disc.Tracks()
	var entries [][]byte
	if startingTrack != 0xAA {
		for _, t := range tracks {
			if uint8(t.Number) >= startingTrack {
				entries = append(entries, tocEntry(t.Number, t.Mode, t.StartLBA, msf))
			}
		}
	}
	entries = append(entries, tocEntry(0xAA, TrackModeMode1_2048, disc.LeadoutLBA(), msf))

	dataLen := 2
	for _, e := range entries {
		dataLen += len(e)
	}
	buf := make([]byte, 4+dataLen-2)
	buf[0] = uint8(dataLen >> 8)
	buf[1] = uint8(dataLen)
	buf[2] = 1
	buf[3] = uint8(disc.LastTrack())
	off := 4
	for _, e := range entries {
		copy(buf[off:], e)
		off += len(e)
	}
	return buf
}

func buildSessionInfo(disc *DiscModel, msf bool) []byte {
	first := Track{Number: 1}
	if len(disc.Tracks()) > 0 {
		first = disc.Tracks()[0]
	}
	entry := tocEntry(first.Number, first.Mode, first.StartLBA, msf)
	dataLen := 2 + len(entry)
	buf := make([]byte, 4+len(entry))
	buf[0] = uint8(dataLen >> 8)
	buf[1] = uint8(dataLen)
	buf[2] = 1
	buf[3] = 1
	copy(buf[4:], entry)
	return buf
}

// handleReadDiscInformation implements opcode 0x51: a finalized, single
// session disc.
func handleReadDiscInformation(cbw *Cbw, d *Dispatcher) {
	if !d.Ready() {
		d.FinishFail(cbw, SenseNotReady, AscLogicalUnitNotReady, 0x00, nil)
		return
	}
	disc := d.Disc()
	alloc := int(cbw.CB[7])<<8 | int(cbw.CB[8])

	buf := make([]byte, 34)
	buf[1] = 32 // data length
	buf[2] = 0x0E // disc status: erasable=0, state=complete session, finalized
	buf[3] = 1    // first track number
	buf[4] = 1    // number of sessions (low)
	buf[5] = uint8(disc.LastTrack())
	buf[6] = uint8(disc.LastTrack()) // last track in last session (low)
	buf[7] = 0x20                    // unrestricted use, no copy protection

	if alloc > 0 && alloc < len(buf) {
		buf = buf[:alloc]
	}
	d.FinishOK(cbw, buf)
}

// handleReadTrackInformation implements opcode 0x52: track lookup by LBA or
// track number, selected by CDB[1] bit0.
func handleReadTrackInformation(cbw *Cbw, d *Dispatcher) {
	if !d.Ready() {
		d.FinishFail(cbw, SenseNotReady, AscLogicalUnitNotReady, 0x00, nil)
		return
	}
	disc := d.Disc()
	byTrackNumber := cbw.CB[1]&0x01 != 0
	addr := uint32(cbw.CB[2])<<24 | uint32(cbw.CB[3])<<16 | uint32(cbw.CB[4])<<8 | uint32(cbw.CB[5])
	alloc := int(cbw.CB[7])<<8 | int(cbw.CB[8])

	var trk Track
	var ok bool
	if byTrackNumber {
		trk, ok = disc.TrackByNumber(int(addr))
	} else {
		trk, ok = disc.TrackForLBA(addr)
	}
	if !ok {
		d.FinishFail(cbw, SenseIllegalRequest, AscLBAOutOfRange, 0x00, nil)
		return
	}

	nextStart := disc.LeadoutLBA()
	for _, t := range disc.Tracks() {
		if t.Number == trk.Number+1 {
			nextStart = t.StartLBA
		}
	}

	buf := make([]byte, 36)
	buf[1] = 34
	buf[2] = uint8(trk.Number)
	buf[3] = 1 // session number
	buf[5] = trk.Mode.ADRControl()
	buf[6] = 0 // track mode raw
	buf[7] = 1
	be32(buf[8:12], trk.StartLBA)
	be32(buf[24:28], nextStart-trk.StartLBA)

	if alloc > 0 && alloc < len(buf) {
		buf = buf[:alloc]
	}
	d.FinishOK(cbw, buf)
}

func be32(buf []byte, v uint32) {
	buf[0] = byte(v >> 24)
	buf[1] = byte(v >> 16)
	buf[2] = byte(v >> 8)
	buf[3] = byte(v)
}
