// Package testmedia builds synthetic disc images and MediaProvider/Catalog
// implementations for exercising the cdrom package without a real CUE sheet
// or disc image on disk.
package testmedia

import (
	"fmt"
	"os"

	"github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/disk"
	"github.com/diskfs/go-diskfs/filesystem"
	"github.com/diskfs/go-diskfs/filesystem/iso9660"
	"github.com/google/uuid"

	"github.com/usbode/usbode/cdrom"
)

const sectorSize = 2048

// BuildISO9660Image writes files into a fresh ISO9660 filesystem and returns
// its raw bytes, padded to a whole number of 2048-byte sectors so it can
// back a Mode 1 data track directly.
func BuildISO9660Image(volumeLabel string, files map[string][]byte) ([]byte, error) {
	tmp, err := os.CreateTemp("", "usbode-testmedia-*.iso")
	if err != nil {
		return nil, fmt.Errorf("testmedia: create temp image: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	// diskfs.Create refuses an existing file; keep only the unique name.
	os.Remove(path)
	defer os.Remove(path)

	size := int64(sectorSize) * 128 // headroom for the volume descriptor and path tables
	for _, data := range files {
		size += int64(len(data))
	}

	dsk, err := diskfs.Create(path, size, diskfs.SectorSizeDefault)
	if err != nil {
		return nil, fmt.Errorf("testmedia: create disk image: %w", err)
	}

	fs, err := dsk.CreateFilesystem(disk.FilesystemSpec{
		Partition:   0,
		FSType:      filesystem.TypeISO9660,
		VolumeLabel: volumeLabel,
	})
	if err != nil {
		return nil, fmt.Errorf("testmedia: create iso9660 filesystem: %w", err)
	}

	for name, data := range files {
		f, err := fs.OpenFile("/"+name, os.O_CREATE|os.O_RDWR)
		if err != nil {
			return nil, fmt.Errorf("testmedia: create %s: %w", name, err)
		}
		if _, err := f.Write(data); err != nil {
			return nil, fmt.Errorf("testmedia: write %s: %w", name, err)
		}
	}

	if iso, ok := fs.(*iso9660.FileSystem); ok {
		if err := iso.Finalize(iso9660.FinalizeOptions{}); err != nil {
			return nil, fmt.Errorf("testmedia: finalize iso9660: %w", err)
		}
	}

	image, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testmedia: read back image: %w", err)
	}
	if rem := len(image) % sectorSize; rem != 0 {
		image = append(image, make([]byte, sectorSize-rem)...)
	}
	return image, nil
}

// Provider is a cdrom.MediaProvider backed by an in-memory disc image.
type Provider struct {
	data []byte
	pos  int
}

// NewProvider wraps a disc image, ready to be sought and read as a
// MediaProvider.
func NewProvider(data []byte) *Provider {
	return &Provider{data: data}
}

// Seek implements cdrom.MediaProvider.
func (p *Provider) Seek(byteOffset uint64) (uint64, error) {
	if byteOffset > uint64(len(p.data)) {
		return 0, fmt.Errorf("testmedia: seek %d past end of %d-byte image", byteOffset, len(p.data))
	}
	p.pos = int(byteOffset)
	return byteOffset, nil
}

// Read implements cdrom.MediaProvider.
func (p *Provider) Read(buf []byte) (int, error) {
	n := copy(buf, p.data[p.pos:])
	p.pos += n
	if n < len(buf) {
		return n, fmt.Errorf("testmedia: short read at offset %d, wanted %d got %d", p.pos, len(buf), n)
	}
	return n, nil
}

// DiscModel builds the single-track Mode 1 disc model matching a Provider's
// image: one data track starting at LBA 0, sized to the image's whole
// sectors.
func DiscModel(image []byte) *cdrom.DiscModel {
	blocks := uint32(len(image) / sectorSize)
	return cdrom.NewDiscModel([]cdrom.Track{
		{Number: 1, StartLBA: 0, Mode: cdrom.TrackModeMode1_2048},
	}, blocks)
}

// audioFrameSize is the byte size of one CD-DA sector: 2 channels of 16-bit
// PCM at the 2352-byte raw frame size, matching TrackModeAudio.
const audioFrameSize = 2352

// MixedDiscModel builds a two-track disc backed by a data image (track 1,
// Mode 1) followed by a synthesized silent CD-DA track (track 2), exercising
// DiscModel.MediumType's mixed (0x03) branch. The audio track's bytes are
// zero-filled; it exists to be seen in the TOC and played, not heard.
func MixedDiscModel(dataImage []byte, audioSeconds int) (*cdrom.DiscModel, []byte) {
	dataBlocks := uint32(len(dataImage) / sectorSize)
	audioBlocks := uint32(audioSeconds * 75) // 75 frames/sec, per Address's F component
	audioBytes := make([]byte, int(audioBlocks)*audioFrameSize)

	combined := append(append([]byte(nil), dataImage...), audioBytes...)
	disc := cdrom.NewDiscModel([]cdrom.Track{
		{Number: 1, StartLBA: 0, Mode: cdrom.TrackModeMode1_2048},
		{Number: 2, StartLBA: dataBlocks, Mode: cdrom.TrackModeAudio, FileOffset: uint64(len(dataImage))},
	}, dataBlocks+audioBlocks)
	return disc, combined
}

// AudioPlayer is a cdrom.AudioPlayer that tracks play state and volume
// in-memory, without producing sound. It stands in for a real analog audio
// output path in tests and the example command.
type AudioPlayer struct {
	volume  uint8
	state   cdrom.AudioState
	current uint32
}

// NewAudioPlayer returns an AudioPlayer at rest, volume at maximum.
func NewAudioPlayer() *AudioPlayer {
	return &AudioPlayer{volume: 0xFF, state: cdrom.AudioStateStoppedOk}
}

// Play implements cdrom.AudioPlayer.
func (a *AudioPlayer) Play(startLBA, blockCount uint32) error {
	a.state = cdrom.AudioStatePlaying
	a.current = startLBA
	return nil
}

// Pause implements cdrom.AudioPlayer.
func (a *AudioPlayer) Pause() error {
	a.state = cdrom.AudioStatePaused
	return nil
}

// Resume implements cdrom.AudioPlayer.
func (a *AudioPlayer) Resume() error {
	a.state = cdrom.AudioStatePlaying
	return nil
}

// Seek implements cdrom.AudioPlayer.
func (a *AudioPlayer) Seek(lba uint32) error {
	a.current = lba
	return nil
}

// SetVolume implements cdrom.AudioPlayer.
func (a *AudioPlayer) SetVolume(v uint8) { a.volume = v }

// Volume implements cdrom.AudioPlayer.
func (a *AudioPlayer) Volume() uint8 { return a.volume }

// State implements cdrom.AudioPlayer.
func (a *AudioPlayer) State() cdrom.AudioState { return a.state }

// CurrentLBA implements cdrom.AudioPlayer.
func (a *AudioPlayer) CurrentLBA() uint32 { return a.current }

// Entry is one selectable image in a Catalog. ID is a stable identity
// independent of the entry's position in the list, which can shift as images
// are added or removed; the cdrom.Catalog methods, and so the toolbox
// commands, address entries by index and never see it.
type Entry struct {
	ID    uuid.UUID
	Name  string
	Image []byte
}

// NewEntry builds a catalog Entry, assigning it a fresh identity.
func NewEntry(name string, image []byte) Entry {
	return Entry{ID: uuid.New(), Name: name, Image: image}
}

// Catalog is a cdrom.Catalog over a fixed list of Entry values.
type Catalog struct {
	entries []Entry
	current int
}

// NewCatalog builds a Catalog from entries, in enumeration order.
func NewCatalog(entries ...Entry) *Catalog {
	return &Catalog{entries: entries}
}

// Count implements cdrom.Catalog.
func (c *Catalog) Count() int { return len(c.entries) }

// Name implements cdrom.Catalog.
func (c *Catalog) Name(i int) string { return c.entries[i].Name }

// Size implements cdrom.Catalog.
func (c *Catalog) Size(i int) uint64 { return uint64(len(c.entries[i].Image)) }

// SetNext implements cdrom.Catalog: it records the selection for the caller
// to act on (unmounting the current media and calling Dispatcher.AttachMedia
// with the newly selected entry's image).
func (c *Catalog) SetNext(i int) error {
	if i < 0 || i >= len(c.entries) {
		return fmt.Errorf("testmedia: index %d out of range [0,%d)", i, len(c.entries))
	}
	c.current = i
	return nil
}

// Current returns the entry most recently selected by SetNext, or the first
// entry if SetNext has never been called.
func (c *Catalog) Current() Entry {
	return c.entries[c.current]
}
