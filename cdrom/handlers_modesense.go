package cdrom

// modePage builds one mode page's bytes (page code, length byte, payload),
// reading AudioPlayer state where relevant. Grounded on §6's per-page byte
// layouts.
func modePage(code uint8, d *Dispatcher) []byte {
	switch code {
	case ModePageErrorRecovery:
		buf := make([]byte, 12)
		buf[0] = ModePageErrorRecovery
		buf[1] = 10
		buf[2] = 0x01 // AWRE
		buf[3] = 1    // retry count
		return buf
	case ModePageCDAudioControl:
		buf := make([]byte, 16)
		buf[0] = ModePageCDAudioControl
		buf[1] = 14
		buf[2] = 0x04 // SOTC
		buf[8] = 0x01 // output port 0 selection -> channel 0
		buf[10] = 0x02
		if a := d.Audio(); a != nil {
			v := a.Volume()
			buf[9] = v
			buf[11] = v
		}
		return buf
	case ModePagePowerCondition:
		buf := make([]byte, 12)
		buf[0] = ModePagePowerCondition
		buf[1] = 10
		return buf
	case ModePageMMCapabilities:
		buf := make([]byte, 22)
		buf[0] = ModePageMMCapabilities
		buf[1] = 20
		buf[2] = 0x01 // CD-R read
		buf[3] = 0x01 // audio play, no write
		buf[4] = 0x01 // CD-DA accurate stream, no digital port
		buf[5] = 0x29 // tray-loading, eject
		buf[8] = 0x0B // max speed 2824 KB/s hi byte
		buf[9] = 0x08
		buf[10] = 0x00
		buf[11] = 0xFF // 255 volume levels
		buf[12] = 0x0B
		buf[13] = 0x08 // current speed = max
		return buf
	default:
		return nil
	}
}

var allModePages = []uint8{ModePageErrorRecovery, ModePageCDAudioControl, ModePagePowerCondition, ModePageMMCapabilities}

func buildModeSenseReply(pageCode uint8, headerLen int, d *Dispatcher) []byte {
	var pages [][]byte
	if pageCode == ModePageAllPages {
		for _, c := range allModePages {
			pages = append(pages, modePage(c, d))
		}
	} else if p := modePage(pageCode, d); p != nil {
		pages = append(pages, p)
	}

	total := headerLen
	for _, p := range pages {
		total += len(p)
	}
	buf := make([]byte, total)
	if headerLen == 4 {
		buf[1] = DiscMediumTypeOf(d)
	} else {
		buf[2] = DiscMediumTypeOf(d)
	}
	off := headerLen
	for _, p := range pages {
		copy(buf[off:], p)
		off += len(p)
	}
	if headerLen == 4 {
		buf[0] = uint8(total - 1)
	} else {
		buf[1] = uint8(total - 2)
	}
	return buf
}

// DiscMediumTypeOf returns the mode-parameter-header medium-type byte for
// the currently attached disc, or 0 with no media.
func DiscMediumTypeOf(d *Dispatcher) uint8 {
	if disc := d.Disc(); disc != nil {
		return disc.MediumType()
	}
	return 0
}

// handleModeSense6 implements opcode 0x1A.
func handleModeSense6(cbw *Cbw, d *Dispatcher) {
	pageCode := cbw.CB[2] & 0x3F
	alloc := int(cbw.CB[4])
	reply := buildModeSenseReply(pageCode, 4, d)
	if alloc > 0 && alloc < len(reply) {
		reply = reply[:alloc]
	}
	d.FinishOK(cbw, reply)
}

// handleModeSense10 implements opcode 0x5A, using the same page set as
// ModeSense(6) but a 8-byte header.
func handleModeSense10(cbw *Cbw, d *Dispatcher) {
	pageCode := cbw.CB[2] & 0x3F
	alloc := int(cbw.CB[7])<<8 | int(cbw.CB[8])
	reply := buildModeSenseReply(pageCode, 8, d)
	if alloc > 0 && alloc < len(reply) {
		reply = reply[:alloc]
	}
	d.FinishOK(cbw, reply)
}
