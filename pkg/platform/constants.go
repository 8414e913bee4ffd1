package platform

// Operating systems and architectures, spelled the way runtime.GOOS and
// runtime.GOARCH spell them.
const (
	OSWindows = "windows"
	OSLinux   = "linux"
	OSDarwin  = "darwin"

	ArchAMD64 = "amd64"
	ArchARM64 = "arm64"
)

// ValidOS returns the operating systems SDK vendors publish builds for.
func ValidOS() []string {
	return []string{OSLinux, OSDarwin, OSWindows}
}

// ValidArch returns the architectures SDK vendors publish builds for.
func ValidArch() []string {
	return []string{ArchAMD64, ArchARM64}
}
