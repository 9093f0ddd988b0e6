package cdrom

import "encoding/binary"

// read10Handler implements opcode 0x28 (§4.4): a streaming block read.
type read10Handler struct{}

// Begin parses the starting LBA and block count, resolves the source
// track, and populates the shared ReadContext before producing the first
// chunk.
func (h *read10Handler) Begin(cbw *Cbw, d *Dispatcher) {
	if !d.Ready() {
		d.FinishFail(cbw, SenseNotReady, AscLogicalUnitNotReady, 0x00, nil)
		return
	}
	lba := binary.BigEndian.Uint32(cbw.CB[2:6])
	blockCount := uint32(cbw.CB[7])<<8 | uint32(cbw.CB[8])
	if blockCount == 0 && cbw.DataTransferLength > 0 {
		blockCount = (cbw.DataTransferLength + TransferBlockSize - 1) / TransferBlockSize
	}
	if blockCount == 0 {
		d.FinishOK(cbw, nil)
		return
	}

	track, ok := d.Disc().TrackForLBA(lba)
	if !ok {
		d.FinishFail(cbw, SenseIllegalRequest, AscLBAOutOfRange, 0x00, nil)
		return
	}

	*d.ReadContext() = ReadContext{
		CBWTag:              cbw.Tag,
		LBA:                 lba,
		RemainingBlocks:     blockCount,
		PhysicalBlockSize:   track.Mode.PhysicalBlockSize(),
		TransferBlockSize:   TransferBlockSize,
		SkipBytes:           track.Mode.SkipBytes(),
		TotalTransferLength: blockCount * TransferBlockSize,
		Track:               track,
	}
	h.Continue(d)
}

// Continue reads up to MaxBlocksPerChunk physical blocks, compacts each
// into its 2048-byte transfer payload in place, and submits the chunk.
func (h *read10Handler) Continue(d *Dispatcher) {
	streamReadChunk(d)
}

// streamReadChunk implements the shared Read(10)/Read CD continuation:
// seek, read a chunk of physical blocks, compact user data into the front
// of the same buffer, and submit. Shared because Read CD without a MCS
// mask (or with only USER DATA selected) is byte-identical to Read(10) for
// the same LBA range.
func streamReadChunk(d *Dispatcher) {
	rc := d.ReadContext()
	chunkBlocks := rc.RemainingBlocks
	if chunkBlocks > MaxBlocksPerChunk {
		chunkBlocks = MaxBlocksPerChunk
	}

	media := d.Media()
	byteOffset := rc.Track.FileOffset + uint64(rc.LBA-rc.Track.StartLBA)*uint64(rc.PhysicalBlockSize)
	if _, err := media.Seek(byteOffset); err != nil {
		abortStreamingRead(d)
		return
	}

	buf := d.InBuffer()
	physTotal := int(chunkBlocks) * rc.PhysicalBlockSize
	n, err := media.Read(buf[:physTotal])
	if err != nil || n < physTotal {
		abortStreamingRead(d)
		return
	}

	for i := uint32(0); i < chunkBlocks; i++ {
		src := int(i)*rc.PhysicalBlockSize + rc.SkipBytes
		dst := int(i) * rc.TransferBlockSize
		copy(buf[dst:dst+rc.TransferBlockSize], buf[src:src+rc.TransferBlockSize])
	}
	outLen := int(chunkBlocks) * rc.TransferBlockSize

	rc.LBA += chunkBlocks
	rc.RemainingBlocks -= chunkBlocks
	rc.TransferredBytes += uint32(outLen)

	residue := rc.TotalTransferLength - rc.TransferredBytes
	d.SetPendingRaw(rc.CBWTag, residue, CswStatusGood)
	d.StageDataIn(buf[:outLen])
}

// abortStreamingRead reports a medium error and terminates the transfer
// immediately, per §4.4's short-read/seek-failure rule.
func abortStreamingRead(d *Dispatcher) {
	rc := d.ReadContext()
	d.Sense().SetError(SenseMediumError, AscMediumReadError, 0x00)
	residue := rc.TotalTransferLength - rc.TransferredBytes
	d.SendNow(rc.CBWTag, residue, CswStatusFailed)
}
