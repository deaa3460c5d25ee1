package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	appErrors "phorg/internal/errors"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		exitWithError(err)
	}
}

func exitWithError(err error) {
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
	}
	os.Exit(1)
}
