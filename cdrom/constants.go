package cdrom

// Command Block Wrapper (CBW) / Command Status Wrapper (CSW) constants for
// Bulk-Only Mass Storage transport.
const (
	CbwSignature = 0x43425355 // "USBC"
	CbwSize      = 31
	CswSignature = 0x53425355 // "USBS"
	CswSize      = 13

	CbwFlagDataOut = 0x00
	CbwFlagDataIn  = 0x80
)

// CSW status codes.
const (
	CswStatusGood       uint8 = 0x00
	CswStatusFailed     uint8 = 0x01
	CswStatusPhaseError uint8 = 0x02
)

// Bulk-Only class-specific request codes.
const (
	RequestGetMaxLUN                = 0xFE
	RequestBulkOnlyMassStorageReset = 0xFF
)

// MMC/SCSI operation codes handled by the dispatch table.
const (
	OpTestUnitReady        = 0x00
	OpRequestSense         = 0x03
	OpInquiry              = 0x12
	OpModeSense6           = 0x1A
	OpStartStopUnit        = 0x1B
	OpPreventAllowRemoval  = 0x1E
	OpReadCapacity10       = 0x25
	OpRead10               = 0x28
	OpSeek10               = 0x2B
	OpVerify               = 0x2F
	OpReadSubChannel       = 0x42
	OpReadTOC              = 0x43
	OpPlayAudio10          = 0x45
	OpGetConfiguration     = 0x46
	OpPlayAudioMSF         = 0x47
	OpGetEventStatus       = 0x4A
	OpPauseResume          = 0x4B
	OpStopPlayScan         = 0x4E
	OpReadDiscInformation  = 0x51
	OpReadTrackInformation = 0x52
	OpModeSelect10         = 0x55
	OpModeSense10          = 0x5A
	OpWin2kSpecific        = 0xA4
	OpPlayAudio12          = 0xA5
	OpGetPerformance       = 0xAC
	OpReadDiscStructure    = 0xAD
	OpSetCdSpeed           = 0xBB
	OpReadCD               = 0xBE
	OpTbListItemsD0        = 0xD0
	OpTbGetCountD2         = 0xD2
	OpTbListItemsD7        = 0xD7
	OpTbSetNextCd          = 0xD8
	OpTbListDevices        = 0xD9
	OpTbGetCountDA         = 0xDA
)

// SCSI sense keys.
const (
	SenseNoSense        uint8 = 0x00
	SenseRecoveredError uint8 = 0x01
	SenseNotReady       uint8 = 0x02
	SenseMediumError    uint8 = 0x03
	SenseHardwareError  uint8 = 0x04
	SenseIllegalRequest uint8 = 0x05
	SenseUnitAttention  uint8 = 0x06
)

// Additional Sense Codes / Qualifiers used by this emulator.
const (
	AscNoAdditionalInfo      uint8 = 0x00
	AscLogicalUnitNotReady   uint8 = 0x04
	AscInvalidCommand        uint8 = 0x20
	AscLBAOutOfRange         uint8 = 0x21
	AscInvalidFieldInCDB     uint8 = 0x24
	AscMediumReadError       uint8 = 0x11
	AscNotReadyToReadyChange uint8 = 0x28
	AscSavingParamsNotSupp   uint8 = 0x39
	AscMediumNotPresent      uint8 = 0x3A
	AscIllegalModeForTrack   uint8 = 0x64
	AscParamListLengthError  uint8 = 0x1A
)

// SCSI peripheral device type.
const DeviceTypeCDROM uint8 = 0x05

// INQUIRY constants.
const (
	InquiryStandardSize   = 36
	InquiryResponseFormat = 0x02
	InquiryRMB            = 0x80
)

// Mode page codes.
const (
	ModePageErrorRecovery = 0x01
	ModePageCDAudioControl = 0x0E
	ModePagePowerCondition = 0x1A
	ModePageMMCapabilities = 0x2A
	ModePageAllPages       = 0x3F
)

// Feature numbers for Get Configuration (0x46).
const (
	FeatureProfileList         = 0x0000
	FeatureCore                = 0x0001
	FeatureMorphing            = 0x0002
	FeatureRemovableMedium     = 0x0003
	FeatureMultiRead           = 0x001D
	FeatureCDRead              = 0x001E
	FeaturePowerManagement     = 0x0100
	FeatureCDAudioAnalogPlay   = 0x0103
	ProfileCDROM               = 0x0008
)

// Block sizes.
const (
	TransferBlockSize = 2048 // logical block size reported to the host
	RawSectorSize     = 2352 // full CD-DA/raw sector size
)

// Streaming and buffer sizing.
const (
	MaxBlocksPerChunk  = 32              // physical blocks read per streaming chunk
	MaxInMessageSize   = MaxBlocksPerChunk * RawSectorSize
	MaxOutBufferSize   = 512
	MaxToolboxEntries  = 100
)

// Main-Channel Selection bit masks for Read CD (CDB[9] bits 7-3).
const (
	MCSSync     = 0x10
	MCSHeader   = 0x08
	MCSUserData = 0x04
	MCSEdcEcc   = 0x02
)

const (
	MCSSyncLen     = 12
	MCSHeaderLen   = 4
	MCSUserDataLen = 2048
	MCSEdcEccLen   = 288
)

// Expected sector type (CDB[1] bits 4-2) for Read CD.
const (
	SectorTypeAny            = 0x00
	SectorTypeCDDA           = 0x01
	SectorTypeMode1          = 0x02
	SectorTypeMode2Formless  = 0x03
	SectorTypeMode2Form1     = 0x04
	SectorTypeMode2Form2     = 0x05
)
