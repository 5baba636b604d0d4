package main

import (
	"fmt"
	"os"

	"github.com/AnyUserName/iconpad/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[iconpad] error: %v\n", err)
		os.Exit(cmd.ExitCode(err))
	}
}
