// Package version exposes build metadata for the ocrpdf binary.
//
// Values are set at build time via -ldflags:
//
//	go build -ldflags "-X github.com/jackzampolin/ocrpdf/version.GitRelease=v1.0.0"
//
// When not set, values are filled from the module build info where possible.
package version

import "runtime/debug"

var (
	// GitRelease is the release tag the binary was built from.
	GitRelease = ""

	// GitCommit is the commit hash the binary was built from.
	GitCommit = ""

	// GitCommitDate is the commit timestamp.
	GitCommitDate = ""

	// GoInfo is the Go toolchain version used for the build.
	GoInfo = ""
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if ok {
		if GoInfo == "" {
			GoInfo = info.GoVersion
		}
		if GitRelease == "" {
			GitRelease = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if GitCommit == "" {
					GitCommit = s.Value
				}
			case "vcs.time":
				if GitCommitDate == "" {
					GitCommitDate = s.Value
				}
			}
		}
	}
	for _, v := range []*string{&GitRelease, &GitCommit, &GitCommitDate, &GoInfo} {
		if *v == "" {
			*v = "unknown"
		}
	}
}
