package cdrom

// handleTestUnitReady implements opcode 0x00: OK if media is ready, else
// NotReady/0x04/0x00.
func handleTestUnitReady(cbw *Cbw, d *Dispatcher) {
	if !d.Ready() {
		d.FinishFail(cbw, SenseNotReady, AscLogicalUnitNotReady, 0x00, nil)
		return
	}
	d.FinishOK(cbw, nil)
}

// handleStartStopUnit implements opcode 0x1B: acknowledged, no physical
// action.
func handleStartStopUnit(cbw *Cbw, d *Dispatcher) {
	d.FinishOK(cbw, nil)
}

// handlePreventAllowRemoval implements opcode 0x1E: acknowledged.
func handlePreventAllowRemoval(cbw *Cbw, d *Dispatcher) {
	d.FinishOK(cbw, nil)
}

// handleVerify implements opcode 0x2F: acknowledged OK.
func handleVerify(cbw *Cbw, d *Dispatcher) {
	d.FinishOK(cbw, nil)
}

// handleSetCdSpeed implements opcode 0xBB: acknowledged.
func handleSetCdSpeed(cbw *Cbw, d *Dispatcher) {
	d.FinishOK(cbw, nil)
}
