package dataset

import "fmt"

// Algorithm identifies the cipher used for the volume or a key.
type Algorithm uint16

const (
	AlgStretchKey       Algorithm = 0x1000
	AlgAESCCM256_0      Algorithm = 0x2000
	AlgAESCCM256_1      Algorithm = 0x2001
	AlgExternKey        Algorithm = 0x2002
	AlgVMK              Algorithm = 0x2003
	AlgAESCCM256_2      Algorithm = 0x2004
	AlgHash256          Algorithm = 0x2005
	AlgAES128Diffuser   Algorithm = 0x8000
	AlgAES256Diffuser   Algorithm = 0x8001
	AlgAES128NoDiffuser Algorithm = 0x8002
	AlgAES256NoDiffuser Algorithm = 0x8003
	AlgAESXTS128        Algorithm = 0x8004
	AlgAESXTS256        Algorithm = 0x8005
)

var algorithmNames = map[Algorithm]string{
	AlgStretchKey:       "STRETCH KEY",
	AlgAESCCM256_0:      "AES-CCM-256",
	AlgAESCCM256_1:      "AES-CCM-256",
	AlgExternKey:        "EXTERN KEY",
	AlgVMK:              "VMK",
	AlgAESCCM256_2:      "AES-CCM-256",
	AlgHash256:          "HASH-256",
	AlgAES128Diffuser:   "AES-128-CBC with Elephant diffuser",
	AlgAES256Diffuser:   "AES-256-CBC with Elephant diffuser",
	AlgAES128NoDiffuser: "AES-128-CBC",
	AlgAES256NoDiffuser: "AES-256-CBC",
	AlgAESXTS128:        "AES-XTS-128",
	AlgAESXTS256:        "AES-XTS-256",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("unknown algorithm (%#x)", uint16(a))
}

// Known reports whether the algorithm has a name.
func (a Algorithm) Known() bool {
	_, ok := algorithmNames[a]
	return ok
}
