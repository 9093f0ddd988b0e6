package cdrom

// TrackMode identifies the sector encoding of a track, as parsed from a CUE
// sheet by the (out-of-scope) MediaProvider owner.
type TrackMode int

// Track modes recognized by the emulator.
const (
	TrackModeAudio TrackMode = iota
	TrackModeMode1_2048
	TrackModeMode1_2352
	TrackModeMode2_2352
)

// PhysicalBlockSize returns the on-disk sector size for the track mode.
func (m TrackMode) PhysicalBlockSize() int {
	switch m {
	case TrackModeMode1_2048:
		return 2048
	case TrackModeMode1_2352, TrackModeMode2_2352, TrackModeAudio:
		return 2352
	default:
		return 0
	}
}

// SkipBytes returns the number of leading bytes to discard from a physical
// sector to reach the 2048-byte user-data payload.
func (m TrackMode) SkipBytes() int {
	switch m {
	case TrackModeMode1_2352:
		return 16
	case TrackModeMode2_2352:
		return 24
	default:
		return 0
	}
}

// ADRControl returns the TOC entry's ADR/Control nibble pair for this mode.
func (m TrackMode) ADRControl() uint8 {
	if m == TrackModeAudio {
		return 0x10
	}
	return 0x14
}

// Track describes one track of a DiscModel.
type Track struct {
	Number     int
	StartLBA   uint32
	Mode       TrackMode
	FileOffset uint64
}

// DiscModel is the track table and derived properties of the currently
// attached media. Replaced wholesale on media change.
type DiscModel struct {
	tracks     []Track
	leadoutLBA uint32
}

// NewDiscModel builds a DiscModel from an ordered (by LBA) track table and
// the disc's lead-out LBA.
func NewDiscModel(tracks []Track, leadoutLBA uint32) *DiscModel {
	return &DiscModel{tracks: tracks, leadoutLBA: leadoutLBA}
}

// Tracks returns the track table in ascending LBA order.
func (d *DiscModel) Tracks() []Track {
	if d == nil {
		return nil
	}
	return d.tracks
}

// LeadoutLBA returns the LBA immediately following the last user block.
func (d *DiscModel) LeadoutLBA() uint32 {
	if d == nil {
		return 150
	}
	return d.leadoutLBA
}

// TrackByNumber finds a track by its 1-based track number.
func (d *DiscModel) TrackByNumber(number int) (Track, bool) {
	if d == nil {
		return Track{}, false
	}
	for _, t := range d.tracks {
		if t.Number == number {
			return t, true
		}
	}
	return Track{}, false
}

// TrackForLBA finds the track containing lba: the last track whose StartLBA
// is <= lba. An lba before the first track's start resolves to the first
// track, and an lba past the lead-out resolves to the last track; the result
// is false only when the track table is empty.
func (d *DiscModel) TrackForLBA(lba uint32) (Track, bool) {
	if d == nil || len(d.tracks) == 0 {
		return Track{}, false
	}
	best := d.tracks[0]
	found := false
	for _, t := range d.tracks {
		if lba >= t.StartLBA {
			best = t
			found = true
		}
	}
	if !found {
		return d.tracks[0], true
	}
	return best, true
}

// LastTrack returns the highest track number, flooring to 1 even when the
// track table is empty: several MMC replies (TOC, Read Track Information)
// are only defined for a disc with at least one track.
func (d *DiscModel) LastTrack() int {
	last := 0
	if d != nil {
		for _, t := range d.tracks {
			if t.Number > last {
				last = t.Number
			}
		}
	}
	if last == 0 {
		return 1
	}
	return last
}

// MediumType derives the Mode Sense medium-type byte from the track
// mix: mixed (0x03) when both audio and data tracks are present, CD-DA
// (0x02) when audio-only, data (0x01) otherwise.
func (d *DiscModel) MediumType() uint8 {
	hasAudio, hasData := false, false
	if d != nil {
		for _, t := range d.tracks {
			if t.Mode == TrackModeAudio {
				hasAudio = true
			} else {
				hasData = true
			}
		}
	}
	switch {
	case hasAudio && hasData:
		return 0x03
	case hasAudio:
		return 0x02
	default:
		return 0x01
	}
}

// MsfToLba converts a Minutes/Seconds/Frames address to a zero-based LBA,
// undoing the 150-frame (2 second) lead-in offset.
func MsfToLba(m, s, f uint8) uint32 {
	lba := uint32(m)*60*75 + uint32(s)*75 + uint32(f)
	if lba < 150 {
		return 0
	}
	return lba - 150
}

// LbaToMsf converts lba to Minutes/Seconds/Frames. When relative is false the
// 150-frame lead-in offset is added first (absolute disc address); when true
// the LBA is treated as already relative to a track start.
func LbaToMsf(lba uint32, relative bool) (m, s, f uint8) {
	if !relative {
		lba += 150
	}
	m = uint8(lba / (75 * 60))
	s = uint8((lba / 75) % 60)
	f = uint8(lba % 75)
	return m, s, f
}

// Address encodes lba as either a big-endian 4-byte LBA or a packed MSF
// address (0, M, S, F), matching CDB MSF bit semantics.
func Address(lba uint32, msf, relative bool) [4]byte {
	if msf {
		m, s, f := LbaToMsf(lba, relative)
		return [4]byte{0, m, s, f}
	}
	return [4]byte{byte(lba >> 24), byte(lba >> 16), byte(lba >> 8), byte(lba)}
}
