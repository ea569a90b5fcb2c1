package main

import (
	"os"

	"github.com/chandlerok/claudway/cmd"
	"github.com/chandlerok/claudway/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
