package cdrom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeCatalog is a Catalog backed by parallel slices, used to exercise the
// vendor toolbox opcodes.
type fakeCatalog struct {
	names      []string
	sizes      []uint64
	nextErr    error
	nextCalled int
}

func (c *fakeCatalog) Count() int          { return len(c.names) }
func (c *fakeCatalog) Name(i int) string   { return c.names[i] }
func (c *fakeCatalog) Size(i int) uint64   { return c.sizes[i] }
func (c *fakeCatalog) SetNext(i int) error { c.nextCalled = i; return c.nextErr }

func TestScenario_GetEventStatus_MediaChangeLatch(t *testing.T) {
	h := newHarness()
	h.d.AttachMedia(&fakeMedia{}, sampleDisc())
	require.True(t, h.d.DiscChanged())

	cb := [16]byte{OpGetEventStatus, 0, 0, 0, 0, 0, 0, 0x00, 0x08}
	h.sendCBW(cb[:], 0x10, 8, true)

	data := h.lastIn()
	require.Len(t, data, 8)
	require.Equal(t, uint8(0x02), data[4]) // new media event
	require.Equal(t, uint8(0x02), data[5]) // media present
	require.False(t, h.d.DiscChanged())    // latch cleared

	h.completeIn() // sends CSW
	h.completeIn() // returns transport to ReceiveCbw
	// A second poll after the latch clears reports no change.
	h.sendCBW(cb[:], 0x11, 8, true)
	data2 := h.lastIn()
	require.Equal(t, uint8(0x00), data2[4])
}

func TestScenario_ReadCD_UserDataOnlyMatchesRead10(t *testing.T) {
	payload := make([]byte, 2048)
	for i := range payload {
		payload[i] = byte(i * 3)
	}
	track := Track{Number: 1, StartLBA: 0, Mode: TrackModeMode1_2048}

	h1 := newHarness()
	h1.d.AttachMedia(&fakeMedia{data: payload}, NewDiscModel([]Track{track}, 100))
	cbRead10 := [16]byte{OpRead10, 0, 0, 0, 0, 0, 0, 0x00, 0x01}
	h1.sendCBW(cbRead10[:], 0x20, 2048, true)
	read10Data := append([]byte(nil), h1.lastIn()...)

	h2 := newHarness()
	h2.d.AttachMedia(&fakeMedia{data: payload}, NewDiscModel([]Track{track}, 100))
	cbReadCD := [16]byte{OpReadCD, 0, 0, 0, 0, 0, 0, 0, 0x01, 0x00}
	h2.sendCBW(cbReadCD[:], 0x21, 2048, true)
	readCDData := append([]byte(nil), h2.lastIn()...)

	require.Equal(t, read10Data, readCDData)
}

// A Main-Channel Selection of Header+User Data (bits 3 and 2, CB[9]=0x60)
// must synthesize a 4-byte header followed by the full 2048-byte payload;
// regression test for the MCS field being taken from CB[9] bits 7-3
// ((CB[9]>>3)&0x1F), so that 0x60 selects HEADER and USER DATA.
func TestScenario_ReadCD_HeaderPlusUserData(t *testing.T) {
	payload := make([]byte, 2048)
	for i := range payload {
		payload[i] = byte(i * 7)
	}
	track := Track{Number: 1, StartLBA: 0, Mode: TrackModeMode1_2048}

	h := newHarness()
	h.d.AttachMedia(&fakeMedia{data: payload}, NewDiscModel([]Track{track}, 100))
	cb := [16]byte{OpReadCD, 0, 0, 0, 0, 0, 0, 0, 0x01, 0x60}
	h.sendCBW(cb[:], 0x23, 2052, true)

	data := h.lastIn()
	require.Len(t, data, 4+2048)
	// LBA 0 -> MSF 00:02:00 once the 150-frame lead-in offset is applied.
	require.Equal(t, uint8(0), data[0])
	require.Equal(t, uint8(2), data[1])
	require.Equal(t, uint8(0), data[2])
	require.Equal(t, uint8(1), data[3]) // mode 1
	require.Equal(t, payload, data[4:])
}

func TestScenario_ReadCD_UnknownTrackFails(t *testing.T) {
	h := newHarness()
	h.d.AttachMedia(&fakeMedia{}, NewDiscModel(nil, 100))

	cb := [16]byte{OpReadCD, 0, 0, 0, 0, 0, 0, 0, 0x01, 0x00}
	h.sendCBW(cb[:], 0x22, 2048, true)

	csw := parseCsw(t, h.lastIn())
	require.Equal(t, CswStatusFailed, csw.Status)
	key, asc, _ := h.d.Sense().Current()
	require.Equal(t, SenseIllegalRequest, key)
	require.Equal(t, AscLBAOutOfRange, asc)
}

func TestScenario_ToolboxListAndCount(t *testing.T) {
	h := newHarness()
	cat := &fakeCatalog{names: []string{"one.iso", "two.iso"}, sizes: []uint64{111, 222}}
	h.d.AttachCatalog(cat)

	cb := [16]byte{OpTbGetCountD2, 0, 0, 0, 0, 0, 0, 0x00, 0x01}
	h.sendCBW(cb[:], 0x30, 1, true)
	require.Equal(t, []byte{2}, h.lastIn())
	h.completeIn() // sends CSW
	h.completeIn() // returns transport to ReceiveCbw

	cbList := [16]byte{OpTbListItemsD0, 0, 0, 0, 0, 0, 0, 0x00, 0xFF}
	h.sendCBW(cbList[:], 0x31, 255, true)
	data := h.lastIn()
	require.Len(t, data, 2*toolboxEntrySize)
	require.Equal(t, uint8(0), data[0])
	require.Equal(t, "one.iso", string(data[2:9]))
	require.Equal(t, uint8(1), data[toolboxEntrySize])
	require.Equal(t, "two.iso", string(data[toolboxEntrySize+2:toolboxEntrySize+9]))
}

func TestScenario_ToolboxSetNextCd(t *testing.T) {
	h := newHarness()
	cat := &fakeCatalog{names: []string{"a"}, sizes: []uint64{1}}
	h.d.AttachCatalog(cat)

	cb := [16]byte{OpTbSetNextCd, 3}
	h.sendCBW(cb[:], 0x32, 0, false)

	require.Equal(t, 3, cat.nextCalled)
	csw := parseCsw(t, h.lastIn())
	require.Equal(t, CswStatusGood, csw.Status)
}

func TestScenario_ToolboxSetNextCdNoCatalog(t *testing.T) {
	h := newHarness()
	cb := [16]byte{OpTbSetNextCd, 0}
	h.sendCBW(cb[:], 0x33, 0, false)

	csw := parseCsw(t, h.lastIn())
	require.Equal(t, CswStatusFailed, csw.Status)
}
