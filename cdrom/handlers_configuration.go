package cdrom

import "encoding/binary"

type feature struct {
	code    uint16
	current bool
	payload []byte
}

func buildFeatures() []feature {
	return []feature{
		{FeatureProfileList, true, []byte{0x00, ProfileCDROM, 0x01, 0x00}},
		{FeatureCore, true, []byte{0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00}},
		{FeatureMorphing, true, []byte{0x00, 0x00, 0x00, 0x00}},
		{FeatureRemovableMedium, true, []byte{0x29, 0x00, 0x00, 0x00}},
		{FeatureMultiRead, true, nil},
		{FeatureCDRead, true, []byte{0x00, 0x00, 0x00, 0x00}},
		{FeaturePowerManagement, true, nil},
		{FeatureCDAudioAnalogPlay, true, []byte{0x01, 0xFF, 0x01, 0x00, 0x00, 0x02, 0x00, 0x00}},
	}
}

func marshalFeature(f feature) []byte {
	buf := make([]byte, 4+len(f.payload))
	binary.BigEndian.PutUint16(buf[0:2], f.code)
	if f.current {
		buf[2] = 0x03 // persistent + current
	}
	buf[3] = uint8(len(f.payload))
	copy(buf[4:], f.payload)
	return buf
}

// handleGetConfiguration implements opcode 0x46 (§4.7).
func handleGetConfiguration(cbw *Cbw, d *Dispatcher) {
	rt := cbw.CB[1] & 0x03
	starting := binary.BigEndian.Uint16(cbw.CB[2:4])
	alloc := int(cbw.CB[7])<<8 | int(cbw.CB[8])

	if rt == 0x03 {
		d.FinishFail(cbw, SenseIllegalRequest, AscInvalidFieldInCDB, 0x00, nil)
		return
	}

	all := buildFeatures()
	var selected []feature
	switch rt {
	case 0x01:
		for _, f := range all {
			if f.code == starting {
				selected = append(selected, f)
				break
			}
		}
	default:
		for _, f := range all {
			if f.code >= starting {
				selected = append(selected, f)
			}
		}
	}

	body := make([]byte, 0, 64)
	for _, f := range selected {
		body = append(body, marshalFeature(f)...)
	}

	buf := make([]byte, 8+len(body))
	binary.BigEndian.PutUint32(buf[0:4], uint32(4+len(body)))
	binary.BigEndian.PutUint16(buf[6:8], ProfileCDROM)
	copy(buf[8:], body)

	if alloc > 0 && alloc < len(buf) {
		buf = buf[:alloc]
	}
	d.FinishOK(cbw, buf)
}
