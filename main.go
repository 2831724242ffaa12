package main

import (
	"fmt"
	"os"
	"strings"

	"inkwell/service"

	log "github.com/sirupsen/logrus"
)

// CliVersion is the version reported by the version command
const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain is the actual entry point, split out so tests can call it
func RealMain() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("inkwell version %s\n", CliVersion)
	default:
		exit(service.HandleCommand(os.Args[1:]))
	}
}

func printHelp() {
	helpText := `Usage: inkwell <command> [options]
Commands:
  help              Display this help message.
  version           Show version information.
  serve             Run the blog API server.
  init              Initialize a new empty database.
  clean             Remove the database.
  backup            Create a backup of the database.
  restore [file]    Restore database from backup.
`
	fmt.Println(helpText)
}
