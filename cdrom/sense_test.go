package cdrom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSenseState_DefaultsToNoSenseGood(t *testing.T) {
	var s SenseState
	key, asc, ascq := s.Current()
	require.Equal(t, uint8(0), key)
	require.Equal(t, uint8(0), asc)
	require.Equal(t, uint8(0), ascq)
	require.Equal(t, CswStatusGood, s.DefaultStatus())
}

func TestSenseState_SetErrorForcesFailDefault(t *testing.T) {
	var s SenseState
	s.SetError(SenseIllegalRequest, AscInvalidCommand, 0x00)
	require.Equal(t, CswStatusFailed, s.DefaultStatus())
	key, asc, ascq := s.Current()
	require.Equal(t, SenseIllegalRequest, key)
	require.Equal(t, AscInvalidCommand, asc)
	require.Equal(t, uint8(0x00), ascq)
}

func TestSenseState_RequestSensePromotesNotReady(t *testing.T) {
	var s SenseState
	s.SetError(SenseNotReady, AscMediumNotPresent, 0x00)

	key, asc, ascq := s.RequestSense()
	require.Equal(t, SenseNotReady, key)
	require.Equal(t, AscMediumNotPresent, asc)
	require.Equal(t, uint8(0x00), ascq)

	// After delivery, sense promotes to UnitAttention and stays FAIL until
	// the host observes it too.
	next, nextAsc, nextAscq := s.Current()
	require.Equal(t, SenseUnitAttention, next)
	require.Equal(t, AscNotReadyToReadyChange, nextAsc)
	require.Equal(t, uint8(0x00), nextAscq)
	require.Equal(t, CswStatusFailed, s.DefaultStatus())
}

func TestSenseState_RequestSenseClearsNonNotReady(t *testing.T) {
	var s SenseState
	s.SetError(SenseIllegalRequest, AscInvalidCommand, 0x00)
	s.RequestSense()

	key, asc, ascq := s.Current()
	require.Equal(t, SenseNoSense, key)
	require.Equal(t, AscNoAdditionalInfo, asc)
	require.Equal(t, uint8(0x00), ascq)
	require.Equal(t, CswStatusGood, s.DefaultStatus())
}

func TestSenseState_RequestSenseTwiceFromNotReadyOnlyClearsSecondTime(t *testing.T) {
	var s SenseState
	s.SetError(SenseNotReady, AscMediumNotPresent, 0x00)
	s.RequestSense() // promotes to UnitAttention
	s.RequestSense() // now clears
	key, _, _ := s.Current()
	require.Equal(t, SenseNoSense, key)
	require.Equal(t, CswStatusGood, s.DefaultStatus())
}
