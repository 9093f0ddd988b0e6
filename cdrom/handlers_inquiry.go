package cdrom

// Default INQUIRY identity strings (§6), used in place of any identity
// string the Dispatcher was built with empty; padded/truncated to fixed
// widths.
const (
	inquiryVendorID  = "USBODE  "
	inquiryProductID = "Virtual CDROM   "
	inquiryRevision  = "1.00"
)

func fixedASCII(s string, n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = ' '
	}
	copy(buf, s)
	return buf
}

// handleInquiry implements opcode 0x12: standard reply, or VPD pages
// 0x00/0x80/0x83 when EVPD is set.
func handleInquiry(cbw *Cbw, d *Dispatcher) {
	evpd := cbw.CB[1]&0x01 != 0
	pageCode := cbw.CB[2]
	alloc := int(cbw.CB[4])

	var reply []byte
	if !evpd {
		reply = buildStandardInquiry(d)
	} else {
		switch pageCode {
		case 0x00:
			reply = buildInquirySupportedPages()
		case 0x80:
			reply = buildInquirySerialPage(d)
		case 0x83:
			reply = buildInquiryDeviceIDPage()
		default:
			d.FinishFail(cbw, SenseIllegalRequest, AscInvalidFieldInCDB, 0x00, nil)
			return
		}
	}
	if alloc > 0 && alloc < len(reply) {
		reply = reply[:alloc]
	}
	d.FinishOK(cbw, reply)
}

func buildStandardInquiry(d *Dispatcher) []byte {
	buf := make([]byte, InquiryStandardSize)
	buf[0] = DeviceTypeCDROM
	buf[1] = InquiryRMB
	buf[2] = 0x00
	buf[3] = InquiryResponseFormat
	buf[4] = InquiryStandardSize - 4 - 1
	vendor, product, revision := d.Vendor(), d.Product(), d.Revision()
	if vendor == "" {
		vendor = inquiryVendorID
	}
	if product == "" {
		product = inquiryProductID
	}
	if revision == "" {
		revision = inquiryRevision
	}
	copy(buf[8:16], fixedASCII(vendor, 8))
	copy(buf[16:32], fixedASCII(product, 16))
	copy(buf[32:36], fixedASCII(revision, 4))
	return buf
}

func buildInquirySupportedPages() []byte {
	return []byte{DeviceTypeCDROM, 0x00, 0x00, 0x03, 0x00, 0x80, 0x83}
}

func buildInquirySerialPage(d *Dispatcher) []byte {
	serial := d.Serial()
	buf := make([]byte, 4+len(serial))
	buf[0] = DeviceTypeCDROM
	buf[1] = 0x80
	buf[3] = uint8(len(serial))
	copy(buf[4:], serial)
	return buf
}

// buildInquiryDeviceIDPage builds VPD page 0x83's single T10 Vendor ID
// descriptor using the SPC-4 byte layout, per the resolved open question:
// byte0 = codeset(ASCII)=0x02, byte1 = PIV/Assoc/Type = 0x01, byte2
// reserved, byte3 length=8, then 8 ASCII bytes.
func buildInquiryDeviceIDPage() []byte {
	buf := make([]byte, 4+4+8)
	buf[0] = DeviceTypeCDROM
	buf[1] = 0x83
	buf[3] = 4 + 8
	desc := buf[4:]
	desc[0] = 0x02
	desc[1] = 0x01
	desc[2] = 0x00
	desc[3] = 0x08
	copy(desc[4:12], fixedASCII("USBODE  ", 8))
	return buf
}
