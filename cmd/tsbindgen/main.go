// Command tsbindgen turns a .NET assembly closure into a TypeScript
// declaration tree.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		runGenerate(os.Args[2:])
	case "inspect":
		runInspect(os.Args[2:])
	case "--version", "version":
		printVersion()
	case "--help", "-h", "help":
		printHelp()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("tsbindgen %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("Commit: %s\n", Commit)
	}
	if BuildTime != "unknown" {
		fmt.Printf("Built:  %s\n", BuildTime)
	}
}

func printHelp() {
	fmt.Println(bold("tsbindgen - .NET assembly to TypeScript declaration generator"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  tsbindgen <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <seed.dll>...   Build a TypeScript tree from seed assemblies\n", cyan("generate"))
	fmt.Printf("  %s                 Browse a previous run's diagnostics\n", cyan("inspect"))
	fmt.Printf("  %s                  Print version information\n", cyan("version"))
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s\n", cyan("tsbindgen generate --reflect-cmd ./reflector --out ./out app.dll"))
	fmt.Printf("  %s\n", cyan("tsbindgen inspect --dir ./out"))
}
