package main

import (
	"fmt"
	"os"

	"github.com/kraigochieng/4th-year-project/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
