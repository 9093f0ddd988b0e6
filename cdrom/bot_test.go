package cdrom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCbw_RoundTrip(t *testing.T) {
	raw := make([]byte, CbwSize)
	raw[0], raw[1], raw[2], raw[3] = 0x55, 0x53, 0x42, 0x43
	raw[4] = 0x2A // tag
	raw[8] = 0x00
	raw[9] = 0x08 // dCBWDataTransferLength = 0x0800
	raw[12] = CbwFlagDataIn
	raw[13] = 0x00 // LUN
	raw[14] = 10   // CBLength
	raw[15] = OpInquiry

	var cbw Cbw
	require.True(t, ParseCbw(raw, &cbw))
	require.Equal(t, uint32(CbwSignature), cbw.Signature)
	require.Equal(t, uint32(0x2A), cbw.Tag)
	require.Equal(t, uint32(0x0800), cbw.DataTransferLength)
	require.True(t, cbw.IsDataIn())
	require.False(t, cbw.IsDataOut())
	require.True(t, cbw.Valid())
	require.Equal(t, byte(OpInquiry), cbw.Opcode())
}

func TestParseCbw_RejectsBadSignature(t *testing.T) {
	raw := make([]byte, CbwSize)
	raw[0] = 0xFF
	var cbw Cbw
	require.False(t, ParseCbw(raw, &cbw))
}

func TestParseCbw_RejectsShortBuffer(t *testing.T) {
	var cbw Cbw
	require.False(t, ParseCbw(make([]byte, CbwSize-1), &cbw))
}

func TestCbw_ValidRejectsBadFraming(t *testing.T) {
	tests := []struct {
		name string
		lun  uint8
		cbl  uint8
		want bool
	}{
		{"lun 0, len 1", 0, 1, true},
		{"lun 0, len 16", 0, 16, true},
		{"lun 0, len 0", 0, 0, false},
		{"lun 0, len 17", 0, 17, false},
		{"lun nonzero", 1, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cbw := Cbw{LUN: tt.lun, CBLength: tt.cbl}
			require.Equal(t, tt.want, cbw.Valid())
		})
	}
}

func TestCsw_MarshalTo(t *testing.T) {
	csw := NewCsw(0x2A, 4, CswStatusFailed)
	buf := make([]byte, CswSize)
	n := csw.MarshalTo(buf)
	require.Equal(t, CswSize, n)

	var parsed Csw
	parsed.Signature = uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
	parsed.Tag = uint32(buf[4]) | uint32(buf[5])<<8 | uint32(buf[6])<<16 | uint32(buf[7])<<24
	parsed.DataResidue = uint32(buf[8]) | uint32(buf[9])<<8 | uint32(buf[10])<<16 | uint32(buf[11])<<24
	parsed.Status = buf[12]

	require.Equal(t, uint32(CswSignature), parsed.Signature)
	require.Equal(t, uint32(0x2A), parsed.Tag)
	require.Equal(t, uint32(4), parsed.DataResidue)
	require.Equal(t, CswStatusFailed, parsed.Status)
}

func TestCsw_MarshalToTooSmall(t *testing.T) {
	csw := NewCsw(1, 0, CswStatusGood)
	require.Equal(t, 0, csw.MarshalTo(make([]byte, CswSize-1)))
}
