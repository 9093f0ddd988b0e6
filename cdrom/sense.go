package cdrom

// SenseState tracks the SCSI sense key/ASC/ASCQ triplet produced by the most
// recent error condition, and a default CSW status that SetError sets to
// FAIL and Request Sense resets. Handlers complete with the status of their
// own outcome: the Dispatcher does not substitute DefaultStatus into a
// following command's CSW. Mutated only from the single goroutine driving
// Transport.OnTransferComplete; see §5.
type SenseState struct {
	key, asc, ascq uint8
	defaultStatus  uint8
}

// SetError records a new sense triplet and sets the default CSW status to
// FAIL until Request Sense observes it.
func (s *SenseState) SetError(key, asc, ascq uint8) {
	s.key, s.asc, s.ascq = key, asc, ascq
	s.defaultStatus = CswStatusFailed
}

// Current returns the triplet without mutating it.
func (s *SenseState) Current() (key, asc, ascq uint8) {
	return s.key, s.asc, s.ascq
}

// DefaultStatus returns the recorded default CSW status. It is reported
// here only; no handler reads it when building its CSW.
func (s *SenseState) DefaultStatus() uint8 {
	return s.defaultStatus
}

// RequestSense implements §4.3: it returns the current triplet, then either
// promotes NotReady to UnitAttention (keeping the default status FAIL) or
// clears to (0,0,0) and resets the default status to OK.
func (s *SenseState) RequestSense() (key, asc, ascq uint8) {
	key, asc, ascq = s.key, s.asc, s.ascq
	if key == SenseNotReady {
		s.key, s.asc, s.ascq = SenseUnitAttention, AscNotReadyToReadyChange, 0x00
		s.defaultStatus = CswStatusFailed
	} else {
		s.key, s.asc, s.ascq = SenseNoSense, AscNoAdditionalInfo, 0x00
		s.defaultStatus = CswStatusGood
	}
	return key, asc, ascq
}
