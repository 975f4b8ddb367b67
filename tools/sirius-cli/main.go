// Command sirius-cli creates accounts, converts addresses and signs and announces transfers on a Sirius network.
package main

import (
	"fmt"
	"os"
	"sort"

	flag "github.com/spf13/pflag"
)

// command is a sub command of the CLI. run is invoked through the dependency injection container, so its parameters
// are resolved from the providers in container.go.
type command struct {
	name        string
	description string
	flags       *flag.FlagSet
	run         interface{}
}

var commands = map[string]*command{}

func registerCommand(name, description string, flags *flag.FlagSet, run interface{}) {
	commands[name] = &command{name: name, description: description, flags: flags, run: run}
}

func main() {
	fmt.Println("Sirius CLI 0.1")

	if len(os.Args) < 2 {
		printUsage(nil)
	}

	cmd, exists := commands[os.Args[1]]
	if !exists {
		if os.Args[1] != "help" {
			printUsage(nil, "unknown [COMMAND]: "+os.Args[1])
		}
		printUsage(nil)
	}

	cmd.flags.AddFlagSet(flag.CommandLine)
	helpPtr := cmd.flags.BoolP("help", "h", false, "show this help screen")
	if err := cmd.flags.Parse(os.Args[2:]); err != nil {
		printUsage(cmd, err.Error())
	}
	if *helpPtr {
		printUsage(cmd)
	}

	if err := buildContainer().Invoke(cmd.run); err != nil {
		fmt.Fprintf(os.Stderr, "\nERROR: %s\n", err)
		os.Exit(1)
	}
}

func printUsage(cmd *command, optionalErrorMessage ...string) {
	if len(optionalErrorMessage) >= 1 {
		_, _ = fmt.Fprintf(os.Stderr, "\n")
		_, _ = fmt.Fprintf(os.Stderr, "ERROR:\n  "+optionalErrorMessage[0]+"\n")
	}

	if cmd == nil {
		fmt.Println()
		fmt.Println("USAGE:")
		fmt.Println("  sirius-cli [COMMAND] [OPTIONS]")
		fmt.Println()
		fmt.Println("COMMANDS:")

		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-10s %s\n", name, commands[name].description)
		}
		fmt.Printf("  %-10s %s\n", "help", "display this help screen")
	} else {
		fmt.Println()
		fmt.Println("USAGE:")
		fmt.Printf("  sirius-cli %s [OPTIONS]\n", cmd.name)
		fmt.Println()
		fmt.Println("OPTIONS:")
		cmd.flags.PrintDefaults()
	}

	if len(optionalErrorMessage) >= 1 {
		os.Exit(1)
	}

	os.Exit(0)
}
