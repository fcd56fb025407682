package datum

import "fmt"

// EntryType says what a datum is for.
type EntryType uint16

const (
	EntryProperty     EntryType = 0x0000
	EntryVMK          EntryType = 0x0002
	EntryFVEK         EntryType = 0x0003
	EntryValidation   EntryType = 0x0004
	EntryStartupKey   EntryType = 0x0006
	EntryDescription  EntryType = 0x0007
	EntryFVEKBackup   EntryType = 0x000b
	EntryVolumeHeader EntryType = 0x000f
)

var entryTypeNames = map[EntryType]string{
	EntryProperty:     "property",
	EntryVMK:          "VMK",
	EntryFVEK:         "FVEK",
	EntryValidation:   "validation",
	EntryStartupKey:   "startup key",
	EntryDescription:  "description",
	EntryFVEKBackup:   "FVEK backup",
	EntryVolumeHeader: "volume header block",
}

func (t EntryType) String() string {
	if name, ok := entryTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown entry type (%#x)", uint16(t))
}

// ValueType says how a datum payload is encoded.
type ValueType uint16

const (
	ValueErased        ValueType = 0x0000
	ValueKey           ValueType = 0x0001
	ValueUnicode       ValueType = 0x0002
	ValueStretchKey    ValueType = 0x0003
	ValueUseKey        ValueType = 0x0004
	ValueAESCCM        ValueType = 0x0005
	ValueTPMEncoded    ValueType = 0x0006
	ValueValidation    ValueType = 0x0007
	ValueVMK           ValueType = 0x0008
	ValueExternalKey   ValueType = 0x0009
	ValueUpdate        ValueType = 0x000a
	ValueError         ValueType = 0x000b
	ValueAsymEnc       ValueType = 0x000c
	ValueExportedKey   ValueType = 0x000d
	ValuePublicKey     ValueType = 0x000e
	ValueOffsetAndSize ValueType = 0x000f
)

var valueTypeNames = map[ValueType]string{
	ValueErased:        "ERASED",
	ValueKey:           "KEY",
	ValueUnicode:       "UNICODE",
	ValueStretchKey:    "STRETCH KEY",
	ValueUseKey:        "USE KEY",
	ValueAESCCM:        "AES-CCM",
	ValueTPMEncoded:    "TPM ENCODED",
	ValueValidation:    "VALIDATION",
	ValueVMK:           "VMK",
	ValueExternalKey:   "EXTERNAL KEY",
	ValueUpdate:        "UPDATE",
	ValueError:         "ERROR",
	ValueAsymEnc:       "ASYMMETRIC ENCRYPTION",
	ValueExportedKey:   "EXPORTED KEY",
	ValuePublicKey:     "PUBLIC KEY",
	ValueOffsetAndSize: "OFFSET AND SIZE",
}

func (t ValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown value type (%#x)", uint16(t))
}
