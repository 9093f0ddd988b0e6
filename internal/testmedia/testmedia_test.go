package testmedia

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/usbode/usbode/cdrom"
)

func TestBuildISO9660Image_ProducesWholeSectorImage(t *testing.T) {
	image, err := BuildISO9660Image("TESTVOL", map[string][]byte{
		"HELLO.TXT": []byte("hello, world\n"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, image)
	require.Zero(t, len(image)%sectorSize)
}

func TestProvider_SeekAndRead(t *testing.T) {
	data := make([]byte, sectorSize*2)
	for i := range data {
		data[i] = byte(i)
	}
	p := NewProvider(data)

	off, err := p.Seek(sectorSize)
	require.NoError(t, err)
	require.Equal(t, uint64(sectorSize), off)

	buf := make([]byte, sectorSize)
	n, err := p.Read(buf)
	require.NoError(t, err)
	require.Equal(t, sectorSize, n)
	require.Equal(t, data[sectorSize:], buf)
}

func TestProvider_SeekPastEndFails(t *testing.T) {
	p := NewProvider(make([]byte, sectorSize))
	_, err := p.Seek(sectorSize + 1)
	require.Error(t, err)
}

func TestDiscModel_MatchesImageBlockCount(t *testing.T) {
	image := make([]byte, sectorSize*10)
	disc := DiscModel(image)
	require.Equal(t, uint32(10), disc.LeadoutLBA())
	require.Len(t, disc.Tracks(), 1)
	require.Equal(t, cdrom.TrackModeMode1_2048, disc.Tracks()[0].Mode)
}

func TestMixedDiscModel_ReportsMixedMediumType(t *testing.T) {
	image := make([]byte, sectorSize*10)
	disc, combined := MixedDiscModel(image, 2)
	require.Equal(t, uint8(0x03), disc.MediumType())
	require.Len(t, disc.Tracks(), 2)
	require.Equal(t, uint32(10), disc.Tracks()[1].StartLBA)
	require.Equal(t, uint32(10+2*75), disc.LeadoutLBA())
	require.Len(t, combined, len(image)+2*75*audioFrameSize)
}

func TestCatalog_ListAndSelect(t *testing.T) {
	a := NewEntry("a.iso", make([]byte, 100))
	b := NewEntry("b.iso", make([]byte, 200))
	require.NotEqual(t, a.ID, b.ID)

	cat := NewCatalog(a, b)
	require.Equal(t, 2, cat.Count())
	require.Equal(t, "a.iso", cat.Name(0))
	require.Equal(t, uint64(200), cat.Size(1))
	require.Equal(t, a, cat.Current())

	require.NoError(t, cat.SetNext(1))
	require.Equal(t, b, cat.Current())

	require.Error(t, cat.SetNext(5))
}

func TestAudioPlayer_TracksPlayState(t *testing.T) {
	a := NewAudioPlayer()
	require.Equal(t, cdrom.AudioStateStoppedOk, a.State())

	require.NoError(t, a.Play(1000, 75))
	require.Equal(t, cdrom.AudioStatePlaying, a.State())
	require.Equal(t, uint32(1000), a.CurrentLBA())

	require.NoError(t, a.Pause())
	require.Equal(t, cdrom.AudioStatePaused, a.State())

	require.NoError(t, a.Resume())
	require.Equal(t, cdrom.AudioStatePlaying, a.State())

	a.SetVolume(0x40)
	require.Equal(t, uint8(0x40), a.Volume())
}
