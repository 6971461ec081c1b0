package lib

import (
	"runtime/debug"
)

// Version will contain layerpack build number on build (-ldflags "-X github.com/natrim/layerpack/lib.Version=...")
var Version = "dev"

// ToolVersion returns Version, or the module version when installed with go install
func ToolVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
