package cdrom

// audioStatusByte maps the AudioPlayer's state to the SCSI sub-channel
// audio status code.
func audioStatusByte(s AudioState) uint8 {
	switch s {
	case AudioStatePlaying:
		return 0x11
	case AudioStatePaused:
		return 0x12
	case AudioStateStoppedOk:
		return 0x13
	case AudioStateStoppedError:
		return 0x14
	default:
		return 0x15
	}
}

// handleReadSubChannel implements opcode 0x42. Only current-position replies
// are supported; a requested parameter list code of 0x00 is substituted
// with format 0x01, per the resolved ambiguity in the source's handling of
// that combination.
func handleReadSubChannel(cbw *Cbw, d *Dispatcher) {
	msf := cbw.CB[1]&0x02 != 0
	subQ := cbw.CB[2]&0x40 != 0
	format := cbw.CB[3]
	if format == 0x00 {
		format = 0x01
	}
	alloc := int(cbw.CB[7])<<8 | int(cbw.CB[8])

	if format != 0x01 {
		d.FinishFail(cbw, SenseIllegalRequest, AscInvalidFieldInCDB, 0x00, nil)
		return
	}
	if !d.Ready() {
		d.FinishFail(cbw, SenseNotReady, AscLogicalUnitNotReady, 0x00, nil)
		return
	}

	var lba uint32
	var state AudioState = AudioStateNoStatus
	if a := d.Audio(); a != nil {
		lba = a.CurrentLBA()
		state = a.State()
	}

	buf := make([]byte, 16)
	buf[1] = audioStatusByte(state)
	buf[3] = 12 // sub-channel data length

	if !subQ {
		d.FinishOK(cbw, buf[:4])
		return
	}

	buf[4] = 0x01 // sub-channel data format
	trk, _ := d.Disc().TrackForLBA(lba)
	buf[5] = trk.Mode.ADRControl()
	buf[6] = uint8(trk.Number)
	buf[7] = 1 // index

	abs := Address(lba, msf, false)
	rel := Address(lba-trk.StartLBA, msf, true)
	copy(buf[8:12], abs[:])
	copy(buf[12:16], rel[:])

	if alloc > 0 && alloc < len(buf) {
		buf = buf[:alloc]
	}
	d.FinishOK(cbw, buf)
}
