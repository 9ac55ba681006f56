// cmd/hinteval/main.go
package main

import (
	"github.com/hinteval/hinteval/internal/commands"
)

// main starts the hinteval CLI application by delegating to the
// cobra root command defined in the commands package. It does not
// take any arguments and does not return a value.
func main() {
	commands.Execute()
}
