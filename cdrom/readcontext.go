package cdrom

// ReadContext holds the mutable state of an in-flight Read(10)/Read CD
// streaming command. Only valid while the Transport is in DataIn or
// DataInStreaming; created by a streaming handler's Begin and consumed by
// its Continue.
type ReadContext struct {
	CBWTag              uint32
	LBA                 uint32
	RemainingBlocks      uint32
	PhysicalBlockSize   int
	TransferBlockSize   int
	SkipBytes           int
	MCS                 uint8 // Read CD Main-Channel Selection mask; 0 elsewhere
	ExpectedSectorType  uint8 // Read CD only
	TotalTransferLength uint32
	TransferredBytes    uint32
	Track               Track
}

// active reports whether the context describes a command still in flight.
func (rc *ReadContext) active() bool {
	return rc.RemainingBlocks > 0
}
