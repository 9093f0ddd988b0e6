package cdrom

import "github.com/usbode/usbode/pkg"

// TransportState is the Bulk-Only Mass Storage framing state (§4.1).
type TransportState int

// Transport states.
const (
	StateInit TransportState = iota
	StateReceiveCbw
	StateDataIn
	StateDataInStreaming
	StateDataOut
	StateSendReqSenseReply
	StateSentCsw
)

// Transport implements the Bulk-Only Mass Storage state machine: it frames
// CBWs, drives the data phase, and emits CSWs. It owns the fixed staging
// buffers and defers command interpretation entirely to the Dispatcher.
// Grounded on CUSBCDGadget::OnTransferComplete/SendCSW/StartDataInTransfer.
type Transport struct {
	ep         Endpoint
	dispatcher *Dispatcher

	state  TransportState
	cbwBuf [CbwSize]byte
	inBuf  [MaxInMessageSize]byte
	outBuf [MaxOutBufferSize]byte

	cbw Cbw
}

// NewTransport builds a Transport bound to ep and driving dispatcher.
func NewTransport(ep Endpoint, dispatcher *Dispatcher) *Transport {
	t := &Transport{ep: ep, dispatcher: dispatcher, state: StateInit}
	dispatcher.transport = t
	return t
}

// Activate transitions the transport out of Init and posts the first CBW
// receive, matching CUSBCDGadget::OnActivate.
func (t *Transport) Activate() {
	t.state = StateReceiveCbw
	_ = t.ep.SubmitOut(t.cbwBuf[:])
}

// Reset implements a host-initiated Bulk-Only Mass Storage reset: it forces
// the state back to ReceiveCbw and discards any in-flight ReadContext.
func (t *Transport) Reset() {
	t.dispatcher.abortCurrent()
	t.state = StateReceiveCbw
	_ = t.ep.SubmitOut(t.cbwBuf[:])
}

// InBuffer returns the shared IN staging buffer for handlers to fill before
// calling stageDataIn.
func (t *Transport) InBuffer() []byte { return t.inBuf[:] }

// OutBuffer returns the shared OUT staging buffer for Mode Select's
// parameter list phase.
func (t *Transport) OutBuffer() []byte { return t.outBuf[:] }

// stageDataIn submits data on the IN endpoint and transitions to DataIn.
func (t *Transport) stageDataIn(data []byte) {
	t.state = StateDataIn
	if err := t.ep.SubmitIn(data); err != nil {
		pkg.LogError(pkg.ComponentTransport, "submit IN failed", "err", err)
	}
}

// stageDataOut requests an OUT transfer of up to len(buf) bytes and
// transitions to DataOut.
func (t *Transport) stageDataOut(buf []byte) {
	t.state = StateDataOut
	if err := t.ep.SubmitOut(buf); err != nil {
		pkg.LogError(pkg.ComponentTransport, "submit OUT failed", "err", err)
	}
}

// stageReqSenseReply submits the Request Sense reply and transitions to
// SendReqSenseReply, so the following IN completion sends the CSW.
func (t *Transport) stageReqSenseReply(data []byte) {
	t.state = StateSendReqSenseReply
	if err := t.ep.SubmitIn(data); err != nil {
		pkg.LogError(pkg.ComponentTransport, "submit IN failed", "err", err)
	}
}

// sendCsw marshals csw into the IN buffer, submits it, and transitions to
// SentCsw.
func (t *Transport) sendCsw(csw *Csw) {
	n := csw.MarshalTo(t.inBuf[:CswSize])
	t.state = StateSentCsw
	if err := t.ep.SubmitIn(t.inBuf[:n]); err != nil {
		pkg.LogError(pkg.ComponentTransport, "submit CSW failed", "err", err)
	}
}

// OnTransferComplete is the single entry point driven by the Endpoint after
// every submitted transfer finishes. It never blocks and never runs
// concurrently with itself; see §5.
func (t *Transport) OnTransferComplete(dir Direction, length int, err error) {
	if err != nil {
		pkg.LogWarn(pkg.ComponentTransport, "transfer error", "dir", dir, "err", err)
	}
	if dir == DirectionIn {
		t.onInComplete()
	} else {
		t.onOutComplete(length)
	}
}

func (t *Transport) onInComplete() {
	switch t.state {
	case StateSentCsw:
		t.state = StateReceiveCbw
		_ = t.ep.SubmitOut(t.cbwBuf[:])
	case StateDataIn:
		t.dispatcher.onDataInComplete()
	case StateSendReqSenseReply:
		t.dispatcher.sendPendingCsw()
	default:
		pkg.LogError(pkg.ComponentTransport, "unexpected IN completion", "state", t.state)
	}
}

func (t *Transport) onOutComplete(length int) {
	switch t.state {
	case StateReceiveCbw:
		if length != CbwSize || !ParseCbw(t.cbwBuf[:length], &t.cbw) {
			pkg.LogWarn(pkg.ComponentTransport, "malformed CBW", "length", length)
			t.ep.Stall(DirectionIn)
			t.ep.Stall(DirectionOut)
			return
		}
		if !t.cbw.Valid() {
			pkg.LogWarn(pkg.ComponentTransport, "invalid CBW fields", "lun", t.cbw.LUN, "cblen", t.cbw.CBLength)
			t.ep.Stall(DirectionIn)
			t.ep.Stall(DirectionOut)
			return
		}
		t.dispatcher.dispatch(&t.cbw)
	case StateDataOut:
		t.dispatcher.onDataOutComplete(length)
	default:
		pkg.LogError(pkg.ComponentTransport, "unexpected OUT completion", "state", t.state)
	}
}
