package cdrom

import "encoding/binary"

func playAudio(cbw *Cbw, d *Dispatcher, startLBA, blockCount uint32) {
	if !d.Ready() {
		d.FinishFail(cbw, SenseNotReady, AscLogicalUnitNotReady, 0x00, nil)
		return
	}
	a := d.Audio()
	if a == nil {
		d.FinishFail(cbw, SenseIllegalRequest, AscInvalidCommand, 0x00, nil)
		return
	}
	if blockCount == 0 {
		d.FinishOK(cbw, nil)
		return
	}
	if err := a.Play(startLBA, blockCount); err != nil {
		d.FinishFail(cbw, SenseIllegalRequest, AscIllegalModeForTrack, 0x00, nil)
		return
	}
	d.FinishOK(cbw, nil)
}

// handlePlayAudio10 implements opcode 0x45: LBA and 16-bit block count.
func handlePlayAudio10(cbw *Cbw, d *Dispatcher) {
	lba := binary.BigEndian.Uint32(cbw.CB[2:6])
	count := uint32(cbw.CB[7])<<8 | uint32(cbw.CB[8])
	playAudio(cbw, d, lba, count)
}

// handlePlayAudioMSF implements opcode 0x47: start/end MSF, converted to a
// block count.
func handlePlayAudioMSF(cbw *Cbw, d *Dispatcher) {
	startLBA := MsfToLba(cbw.CB[3], cbw.CB[4], cbw.CB[5])
	endLBA := MsfToLba(cbw.CB[6], cbw.CB[7], cbw.CB[8])
	var count uint32
	if endLBA > startLBA {
		count = endLBA - startLBA
	}
	playAudio(cbw, d, startLBA, count)
}

// handlePlayAudio12 implements opcode 0xA5: LBA and 32-bit block count.
func handlePlayAudio12(cbw *Cbw, d *Dispatcher) {
	lba := binary.BigEndian.Uint32(cbw.CB[2:6])
	count := binary.BigEndian.Uint32(cbw.CB[6:10])
	playAudio(cbw, d, lba, count)
}

// handlePauseResume implements opcode 0x4B, selected by CDB[8] bit 0.
func handlePauseResume(cbw *Cbw, d *Dispatcher) {
	a := d.Audio()
	if a == nil {
		d.FinishFail(cbw, SenseIllegalRequest, AscInvalidCommand, 0x00, nil)
		return
	}
	var err error
	if cbw.CB[8]&0x01 != 0 {
		err = a.Resume()
	} else {
		err = a.Pause()
	}
	if err != nil {
		d.FinishFail(cbw, SenseIllegalRequest, AscIllegalModeForTrack, 0x00, nil)
		return
	}
	d.FinishOK(cbw, nil)
}

// handleStopPlayScan implements opcode 0x4E: delegates to a pause.
func handleStopPlayScan(cbw *Cbw, d *Dispatcher) {
	if a := d.Audio(); a != nil {
		_ = a.Pause()
	}
	d.FinishOK(cbw, nil)
}
