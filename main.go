package main

import (
	"os"
	"runtime/debug"

	"github.com/siyuan-infoblox/php-use-group/pkg/cmd"
)

func main() {
	var moduleVersion string
	if info, ok := debug.ReadBuildInfo(); ok {
		moduleVersion = info.Main.Version
	}
	// errors are already reported on stderr by the command
	if err := cmd.Execute(moduleVersion); err != nil {
		os.Exit(1)
	}
}
