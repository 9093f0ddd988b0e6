package cdrom

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// Get Performance's reply is a fixed 20 bytes per §6: an 8-byte header plus
// one 12-byte Type-0 descriptor; regression test for a truncated 16-byte
// reply, which would drop the read-speed field.
func TestScenario_GetPerformance_FullReply(t *testing.T) {
	h := newHarness()
	cb := [16]byte{OpGetPerformance, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01}
	h.sendCBW(cb[:], 0x42, 20, true)

	data := h.lastIn()
	require.Len(t, data, 20)
	require.Equal(t, uint32(0x0000000C), binary.BigEndian.Uint32(data[0:4]))
	require.Equal(t, uint32(0), binary.BigEndian.Uint32(data[8:12]))
	require.Equal(t, uint32(0xFFFFFFFF), binary.BigEndian.Uint32(data[12:16]))
	require.Equal(t, uint32(176), binary.BigEndian.Uint32(data[16:20]))
}
