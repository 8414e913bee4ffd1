package platform

import (
	"fmt"
	"net/url"

	"github.com/linux-china/wukong/pkg/errors"
)

// Params are the platform-dependent query parameters of a Disco directuris request.
type Params struct {
	Architecture    string
	OperatingSystem string
	LibcType        string
	ArchiveType     string
}

// Query renders the parameters with their Disco API names.
func (p Params) Query() url.Values {
	return url.Values{
		"architecture":     {p.Architecture},
		"operating_system": {p.OperatingSystem},
		"libc_type":        {p.LibcType},
		"archive_type":     {p.ArchiveType},
	}
}

var discoTable = map[Platform]Params{
	{OSLinux, ArchAMD64}:   {"x64", "linux", "glibc", "tar.gz"},
	{OSLinux, ArchARM64}:   {"aarch64", "linux", "glibc", "tar.gz"},
	{OSDarwin, ArchAMD64}:  {"x64", "mac", "libc", "tar.gz"},
	{OSDarwin, ArchARM64}:  {"aarch64", "mac", "libc", "tar.gz"},
	{OSWindows, ArchAMD64}: {"x64", "windows", "c_std_lib", "zip"},
	{OSWindows, ArchARM64}: {"aarch64", "windows", "c_std_lib", "zip"},
}

var brokerTable = map[Platform]string{
	{OSLinux, ArchAMD64}:   "linuxx64",
	{OSLinux, ArchARM64}:   "linuxarm64",
	{OSDarwin, ArchAMD64}:  "darwinx64",
	{OSDarwin, ArchARM64}:  "darwinarm64",
	{OSWindows, ArchAMD64}: "windowsx64",
	{OSWindows, ArchARM64}: "windowsarm64",
}

// DiscoParams returns the Disco query parameters for p.
func DiscoParams(p Platform) (Params, error) {
	params, ok := discoTable[p]
	if !ok {
		return Params{}, unsupported(p)
	}
	return params, nil
}

// BrokerToken returns the SDKMAN broker platform token for p, e.g. "linuxx64".
func BrokerToken(p Platform) (string, error) {
	token, ok := brokerTable[p]
	if !ok {
		return "", unsupported(p)
	}
	return token, nil
}

// Supported reports whether both vendor tables know p.
func Supported(p Platform) bool {
	_, ok := discoTable[p]
	return ok
}

func unsupported(p Platform) error {
	return fmt.Errorf("%s: %w", p, errors.ErrUnsupportedPlatform)
}
