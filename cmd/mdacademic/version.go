package main

import (
	"fmt"
	"runtime"
)

// printVersion prints the CLI version and, when it loads, the engine's.
func printVersion(env *Environment) {
	fmt.Fprintf(env.Stdout, "mdacademic %s (%s/%s)\n", Version, runtime.GOOS, runtime.GOARCH)

	info, err := env.Engine.Info()
	if err != nil {
		fmt.Fprintln(env.Stdout, "engine: not loaded (run 'mdacademic doctor')")
		return
	}
	pdf := "without PDF"
	if info.PDF {
		pdf = "with PDF"
	}
	fmt.Fprintf(env.Stdout, "engine: %s %s (%s)\n", info.Version, pdf, info.Path)
}
