// Command healthctl manages reminders, checks symptoms and searches doctors
// against a running healthAI server.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
