package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Printf("osready %s\n", Version)
			fmt.Println("OS upgrade readiness checker")
			return
		case "check":
			code, err := runCheck(os.Args[2:])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(code)
		}
	}

	// Default: show help
	fmt.Println("osready - OS upgrade readiness checker")
	fmt.Println()
	fmt.Println("Decides whether this machine's processor and firmware posture")
	fmt.Println("qualify it for an OS upgrade, using the vendor-published tables")
	fmt.Println("of supported processor models.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  osready --version          Show version information")
	fmt.Println("  osready check [options]    Run the readiness check")
	fmt.Println()
	fmt.Println("Run 'osready check --help' for check options.")
}
