package cdrom

import "github.com/usbode/usbode/pkg"

// Handler implements one SCSI opcode's command cycle.
type Handler interface {
	Begin(cbw *Cbw, d *Dispatcher)
}

// StreamingHandler additionally supports multi-chunk IN data phases, driven
// by the Transport once per completed chunk while blocks remain.
type StreamingHandler interface {
	Handler
	Continue(d *Dispatcher)
}

// DataOutHandler additionally supports a host-to-device data phase.
type DataOutHandler interface {
	Handler
	OnDataOut(length int, d *Dispatcher)
}

// HandlerFunc adapts a plain function to a stateless, non-streaming Handler.
type HandlerFunc func(cbw *Cbw, d *Dispatcher)

// Begin implements Handler.
func (f HandlerFunc) Begin(cbw *Cbw, d *Dispatcher) { f(cbw, d) }

// pendingCsw is the CSW a handler has queued to be sent once its data phase
// (if any) finishes.
type pendingCsw struct {
	tag     uint32
	residue uint32
	status  uint8
}

// ReadyFlag reports whether the emulated drive currently has usable media.
type ReadyFlag struct {
	ready bool
}

// Ready reports the current readiness.
func (r *ReadyFlag) Ready() bool { return r.ready }

// SetReady updates readiness, toggled by media load/eject.
func (r *ReadyFlag) SetReady(v bool) { r.ready = v }

// Dispatcher routes each CBW opcode to its Handler and owns the state shared
// across commands: sense, the ready flag, the disc model, the currently
// active handler for streaming/OUT-phase continuation, and the external
// capabilities (MediaProvider, AudioPlayer, Catalog). Grounded on
// CUSBCDGadget's handler map and shared fields in usbcdgadget.cpp.
type Dispatcher struct {
	transport *Transport
	handlers  map[byte]Handler

	sense   SenseState
	ready   ReadyFlag
	disc    *DiscModel
	changed bool

	media   MediaProvider
	audio   AudioPlayer
	catalog Catalog

	readCtx ReadContext
	current Handler
	pending pendingCsw

	vendor, product, revision, serial string
}

// NewDispatcher builds a Dispatcher identifying itself with the given
// INQUIRY strings and unit serial number, and registers all opcode handlers.
func NewDispatcher(vendor, product, revision, serial string) *Dispatcher {
	d := &Dispatcher{vendor: vendor, product: product, revision: revision, serial: serial}
	d.registerHandlers()
	return d
}

// AttachMedia installs a new MediaProvider and DiscModel, signaling a media
// change: sense is set to Medium Not Present and the disc-changed latch is
// raised so Get Event Status and the next Request Sense observe it.
// Grounded on CUSBCDGadget::SetDevice.
func (d *Dispatcher) AttachMedia(media MediaProvider, disc *DiscModel) {
	d.media = media
	d.disc = disc
	d.ready.SetReady(media != nil && disc != nil)
	d.sense.SetError(SenseNotReady, AscMediumNotPresent, 0x00)
	d.changed = true
	pkg.LogInfo(pkg.ComponentMedia, "media attached", "ready", d.ready.Ready())
}

// AttachAudio installs the AudioPlayer capability.
func (d *Dispatcher) AttachAudio(audio AudioPlayer) { d.audio = audio }

// AttachCatalog installs the Catalog capability.
func (d *Dispatcher) AttachCatalog(catalog Catalog) { d.catalog = catalog }

// Sense returns the shared sense state for handlers to read or mutate.
func (d *Dispatcher) Sense() *SenseState { return &d.sense }

// Ready reports whether media is currently attached and usable.
func (d *Dispatcher) Ready() bool { return d.ready.Ready() }

// Disc returns the current DiscModel, or nil if no media is attached.
func (d *Dispatcher) Disc() *DiscModel { return d.disc }

// Media returns the attached MediaProvider, or nil.
func (d *Dispatcher) Media() MediaProvider { return d.media }

// Audio returns the attached AudioPlayer, or nil.
func (d *Dispatcher) Audio() AudioPlayer { return d.audio }

// Catalog returns the attached Catalog, or nil.
func (d *Dispatcher) Catalog() Catalog { return d.catalog }

// Vendor, Product, Revision, Serial return the INQUIRY identity strings.
func (d *Dispatcher) Vendor() string   { return d.vendor }
func (d *Dispatcher) Product() string  { return d.product }
func (d *Dispatcher) Revision() string { return d.revision }
func (d *Dispatcher) Serial() string   { return d.serial }

// DiscChanged reports the latched media-change flag.
func (d *Dispatcher) DiscChanged() bool { return d.changed }

// ClearDiscChanged clears the latch; called by Get Event Status once the
// event has been reported within the host's allocation length.
func (d *Dispatcher) ClearDiscChanged() { d.changed = false }

// ReadContext returns the shared streaming read state for Read(10)/Read CD.
func (d *Dispatcher) ReadContext() *ReadContext { return &d.readCtx }

// InBuffer returns the shared IN staging buffer.
func (d *Dispatcher) InBuffer() []byte { return d.transport.InBuffer() }

// OutBuffer returns the shared OUT staging buffer.
func (d *Dispatcher) OutBuffer() []byte { return d.transport.OutBuffer() }

// FinishOK stages data (which may be empty) as the command's IN payload and
// queues an OK CSW to follow once it completes.
func (d *Dispatcher) FinishOK(cbw *Cbw, data []byte) {
	d.finish(cbw, data, CswStatusGood)
}

// FinishFail records the given sense triplet, stages any partial data
// already produced, and queues a FAIL CSW.
func (d *Dispatcher) FinishFail(cbw *Cbw, key, asc, ascq uint8, data []byte) {
	d.sense.SetError(key, asc, ascq)
	d.finish(cbw, data, CswStatusFailed)
}

func (d *Dispatcher) finish(cbw *Cbw, data []byte, status uint8) {
	transferred := uint32(len(data))
	residue := uint32(0)
	if cbw.DataTransferLength > transferred {
		residue = cbw.DataTransferLength - transferred
	}
	d.pending = pendingCsw{tag: cbw.Tag, residue: residue, status: status}
	if len(data) > 0 {
		d.transport.stageDataIn(data)
	} else {
		d.sendPendingCsw()
	}
}

// StageOut requests the host-to-device data phase for a Handler that also
// implements DataOutHandler, e.g. Mode Select(10).
func (d *Dispatcher) StageOut(cbw *Cbw, buf []byte) {
	d.pending.tag = cbw.Tag
	d.transport.stageDataOut(buf)
}

// StageReqSenseReply stages the Request Sense reply and arranges for the
// CSW to follow once it completes, per the SendReqSenseReply transport
// state.
func (d *Dispatcher) StageReqSenseReply(cbw *Cbw, data []byte, status uint8) {
	transferred := uint32(len(data))
	residue := uint32(0)
	if cbw.DataTransferLength > transferred {
		residue = cbw.DataTransferLength - transferred
	}
	d.pending = pendingCsw{tag: cbw.Tag, residue: residue, status: status}
	d.transport.stageReqSenseReply(data)
}

// StageDataIn submits a streaming chunk without finalizing the CSW; used by
// StreamingHandler.Continue between chunks.
func (d *Dispatcher) StageDataIn(data []byte) {
	d.transport.stageDataIn(data)
}

// SetPending records the CSW to send once the current data phase completes,
// without submitting a transfer. Used by streaming handlers to update
// residue after each chunk.
func (d *Dispatcher) SetPending(cbw *Cbw, transferred uint32, status uint8) {
	residue := uint32(0)
	if cbw.DataTransferLength > transferred {
		residue = cbw.DataTransferLength - transferred
	}
	d.pending = pendingCsw{tag: cbw.Tag, residue: residue, status: status}
}

// SetPendingRaw records the CSW to send once the current data phase
// completes, given already-computed tag/residue/status. Used by streaming
// handlers between chunks, where residue is cheaper to track directly than
// to re-derive from a Cbw.
func (d *Dispatcher) SetPendingRaw(tag, residue uint32, status uint8) {
	d.pending = pendingCsw{tag: tag, residue: residue, status: status}
}

// SendNow immediately sends a CSW, bypassing the data-phase-then-CSW
// sequencing; used when a streaming read aborts mid-chunk.
func (d *Dispatcher) SendNow(tag, residue uint32, status uint8) {
	d.current = nil
	d.readCtx = ReadContext{}
	d.transport.sendCsw(NewCsw(tag, residue, status))
}

func (d *Dispatcher) sendPendingCsw() {
	d.transport.sendCsw(NewCsw(d.pending.tag, d.pending.residue, d.pending.status))
	d.current = nil
}

func (d *Dispatcher) dispatch(cbw *Cbw) {
	h, ok := d.handlers[cbw.Opcode()]
	if !ok {
		pkg.LogWarn(pkg.ComponentDispatcher, "unknown opcode", "opcode", cbw.Opcode())
		d.sense.SetError(SenseIllegalRequest, AscInvalidCommand, 0x00)
		d.current = nil
		d.transport.sendCsw(NewCsw(cbw.Tag, cbw.DataTransferLength, CswStatusFailed))
		return
	}
	pkg.LogDebug(pkg.ComponentDispatcher, "dispatch", "opcode", cbw.Opcode())
	d.current = h
	h.Begin(cbw, d)
}

func (d *Dispatcher) onDataInComplete() {
	if sh, ok := d.current.(StreamingHandler); ok && d.readCtx.active() {
		sh.Continue(d)
		return
	}
	d.sendPendingCsw()
}

func (d *Dispatcher) onDataOutComplete(length int) {
	if doh, ok := d.current.(DataOutHandler); ok {
		doh.OnDataOut(length, d)
		return
	}
	pkg.LogWarn(pkg.ComponentDispatcher, "OUT completion with no active handler")
	d.sendPendingCsw()
}

// abortCurrent discards any in-flight handler state; called on a Bulk-Only
// Reset.
func (d *Dispatcher) abortCurrent() {
	d.current = nil
	d.readCtx = ReadContext{}
}

func (d *Dispatcher) registerHandlers() {
	d.handlers = map[byte]Handler{
		OpTestUnitReady:        HandlerFunc(handleTestUnitReady),
		OpRequestSense:         HandlerFunc(handleRequestSense),
		OpInquiry:              HandlerFunc(handleInquiry),
		OpModeSense6:           HandlerFunc(handleModeSense6),
		OpStartStopUnit:        HandlerFunc(handleStartStopUnit),
		OpPreventAllowRemoval:  HandlerFunc(handlePreventAllowRemoval),
		OpReadCapacity10:       HandlerFunc(handleReadCapacity10),
		OpRead10:               &read10Handler{},
		OpSeek10:               HandlerFunc(handleSeek10),
		OpVerify:               HandlerFunc(handleVerify),
		OpReadSubChannel:       HandlerFunc(handleReadSubChannel),
		OpReadTOC:              HandlerFunc(handleReadTOC),
		OpPlayAudio10:          HandlerFunc(handlePlayAudio10),
		OpGetConfiguration:     HandlerFunc(handleGetConfiguration),
		OpPlayAudioMSF:         HandlerFunc(handlePlayAudioMSF),
		OpGetEventStatus:       HandlerFunc(handleGetEventStatus),
		OpPauseResume:          HandlerFunc(handlePauseResume),
		OpStopPlayScan:         HandlerFunc(handleStopPlayScan),
		OpReadDiscInformation:  HandlerFunc(handleReadDiscInformation),
		OpReadTrackInformation: HandlerFunc(handleReadTrackInformation),
		OpModeSelect10:         &modeSelect10Handler{},
		OpModeSense10:          HandlerFunc(handleModeSense10),
		OpWin2kSpecific:        HandlerFunc(handleWin2kSpecific),
		OpPlayAudio12:          HandlerFunc(handlePlayAudio12),
		OpGetPerformance:       HandlerFunc(handleGetPerformance),
		OpReadDiscStructure:    HandlerFunc(handleReadDiscStructure),
		OpSetCdSpeed:           HandlerFunc(handleSetCdSpeed),
		OpReadCD:               &readCDHandler{},
		OpTbListItemsD0:        HandlerFunc(handleTbListItems),
		OpTbListItemsD7:        HandlerFunc(handleTbListItems),
		OpTbGetCountD2:         HandlerFunc(handleTbGetCount),
		OpTbGetCountDA:         HandlerFunc(handleTbGetCount),
		OpTbSetNextCd:          HandlerFunc(handleTbSetNextCd),
		OpTbListDevices:        HandlerFunc(handleTbListDevices),
	}
}
