package cdrom

import "encoding/binary"

// readCDHandler implements opcode 0xBE (§4.5): a streaming raw-sector read
// with selectable expected sector type and Main-Channel Selection.
type readCDHandler struct{}

func sectorSizesForType(expectedType uint8, track Track) (phys, transfer, skip int) {
	switch expectedType {
	case SectorTypeCDDA:
		return RawSectorSize, RawSectorSize, 0
	case SectorTypeMode1, SectorTypeMode2Form1:
		return track.Mode.PhysicalBlockSize(), TransferBlockSize, track.Mode.SkipBytes()
	case SectorTypeMode2Formless:
		return RawSectorSize, 2336, 16
	case SectorTypeMode2Form2:
		return RawSectorSize, TransferBlockSize, 24
	default: // Any: use track mode
		if track.Mode == TrackModeAudio {
			return RawSectorSize, RawSectorSize, 0
		}
		return track.Mode.PhysicalBlockSize(), TransferBlockSize, track.Mode.SkipBytes()
	}
}

func mcsEntrySize(mcs uint8) int {
	size := 0
	if mcs&MCSSync != 0 {
		size += MCSSyncLen
	}
	if mcs&MCSHeader != 0 {
		size += MCSHeaderLen
	}
	if mcs&MCSUserData != 0 {
		size += MCSUserDataLen
	}
	if mcs&MCSEdcEcc != 0 {
		size += MCSEdcEccLen
	}
	return size
}

// Begin parses the starting LBA, 24-bit transfer length, expected sector
// type, and Main-Channel Selection mask, then populates the ReadContext.
func (h *readCDHandler) Begin(cbw *Cbw, d *Dispatcher) {
	if !d.Ready() {
		d.FinishFail(cbw, SenseNotReady, AscLogicalUnitNotReady, 0x00, nil)
		return
	}
	lba := binary.BigEndian.Uint32(cbw.CB[2:6])
	blockCount := uint32(cbw.CB[6])<<16 | uint32(cbw.CB[7])<<8 | uint32(cbw.CB[8])
	expectedType := (cbw.CB[1] >> 2) & 0x07
	mcs := (cbw.CB[9] >> 3) & 0x1F

	if blockCount == 0 {
		d.FinishOK(cbw, nil)
		return
	}
	track, ok := d.Disc().TrackForLBA(lba)
	if !ok {
		d.FinishFail(cbw, SenseIllegalRequest, AscLBAOutOfRange, 0x00, nil)
		return
	}

	phys, transfer, skip := sectorSizesForType(expectedType, track)
	outSize := transfer
	if mcs != 0 && mcs != MCSUserData {
		outSize = mcsEntrySize(mcs)
	}

	*d.ReadContext() = ReadContext{
		CBWTag:              cbw.Tag,
		LBA:                 lba,
		RemainingBlocks:     blockCount,
		PhysicalBlockSize:   phys,
		TransferBlockSize:   transfer,
		SkipBytes:           skip,
		MCS:                 mcs,
		ExpectedSectorType:  expectedType,
		TotalTransferLength: blockCount * uint32(outSize),
		Track:               track,
	}
	h.Continue(d)
}

// Continue produces the next chunk. When the host asked only for USER DATA
// (or left MCS unset), this is byte-identical to Read(10)'s windowed copy;
// otherwise each sector is assembled field-by-field, synthesizing SYNC,
// HEADER, and EDC/ECC when the backing track has no raw sector to read them
// from.
func (h *readCDHandler) Continue(d *Dispatcher) {
	rc := d.ReadContext()
	if rc.MCS == 0 || rc.MCS == MCSUserData {
		streamReadChunk(d)
		return
	}
	streamReadCDChunk(d)
}

func streamReadCDChunk(d *Dispatcher) {
	rc := d.ReadContext()
	chunkBlocks := rc.RemainingBlocks
	if chunkBlocks > MaxBlocksPerChunk {
		chunkBlocks = MaxBlocksPerChunk
	}
	media := d.Media()
	buf := d.InBuffer()
	rawSource := rc.PhysicalBlockSize >= RawSectorSize

	var physBuf [RawSectorSize]byte
	outOff := 0
	for i := uint32(0); i < chunkBlocks; i++ {
		lba := rc.LBA + i
		byteOffset := rc.Track.FileOffset + uint64(lba-rc.Track.StartLBA)*uint64(rc.PhysicalBlockSize)
		if _, err := media.Seek(byteOffset); err != nil {
			abortStreamingRead(d)
			return
		}
		n, err := media.Read(physBuf[:rc.PhysicalBlockSize])
		if err != nil || n < rc.PhysicalBlockSize {
			abortStreamingRead(d)
			return
		}

		if rc.MCS&MCSSync != 0 {
			if rawSource {
				copy(buf[outOff:outOff+MCSSyncLen], physBuf[0:MCSSyncLen])
			} else {
				buf[outOff] = 0x00
				for k := 1; k <= 10; k++ {
					buf[outOff+k] = 0xFF
				}
				buf[outOff+11] = 0x00
			}
			outOff += MCSSyncLen
		}
		if rc.MCS&MCSHeader != 0 {
			if rawSource {
				copy(buf[outOff:outOff+MCSHeaderLen], physBuf[12:16])
			} else {
				m, s, f := LbaToMsf(lba, false)
				mode := uint8(1)
				if rc.Track.Mode == TrackModeMode2_2352 {
					mode = 2
				}
				buf[outOff], buf[outOff+1], buf[outOff+2], buf[outOff+3] = m, s, f, mode
			}
			outOff += MCSHeaderLen
		}
		if rc.MCS&MCSUserData != 0 {
			copy(buf[outOff:outOff+MCSUserDataLen], physBuf[rc.SkipBytes:rc.SkipBytes+MCSUserDataLen])
			outOff += MCSUserDataLen
		}
		if rc.MCS&MCSEdcEcc != 0 {
			if rawSource {
				copy(buf[outOff:outOff+MCSEdcEccLen], physBuf[rc.PhysicalBlockSize-MCSEdcEccLen:rc.PhysicalBlockSize])
			} else {
				for k := 0; k < MCSEdcEccLen; k++ {
					buf[outOff+k] = 0
				}
			}
			outOff += MCSEdcEccLen
		}
	}

	rc.LBA += chunkBlocks
	rc.RemainingBlocks -= chunkBlocks
	rc.TransferredBytes += uint32(outOff)
	residue := rc.TotalTransferLength - rc.TransferredBytes
	d.SetPendingRaw(rc.CBWTag, residue, CswStatusGood)
	d.StageDataIn(buf[:outOff])
}
