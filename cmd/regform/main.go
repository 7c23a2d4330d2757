// Command regform serves the registration form over HTTP or runs it in the
// terminal.
package main

import (
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}
