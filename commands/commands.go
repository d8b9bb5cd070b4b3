package commands

import (
	"log"
	"strings"
)

type cmd func()
type Commands struct {
	log      *log.Logger
	commands map[string]cmd
}

func NewCommands(log *log.Logger) *Commands {
	return &Commands{log: log, commands: make(map[string]cmd)}
}

// Exec runs the named command and reports whether one was found. A name
// that is not registered runs the longest command it is a prefix of.
func (c *Commands) Exec(command string) bool {
	if cmd := c.find(command); cmd != nil {
		cmd()
		return true
	}
	c.log.Printf("Command %s not found\n", command)
	return false
}

func (c *Commands) find(command string) cmd {
	if cmd, ok := c.commands[command]; ok {
		return cmd
	}
	if command == "" {
		return nil
	}
	longest := ""
	var longestCmd cmd
	for name, cmd := range c.commands {
		if !strings.HasPrefix(name, command) {
			continue
		}
		if len(name) > len(longest) || (len(name) == len(longest) && name < longest) {
			longest, longestCmd = name, cmd
		}
	}
	return longestCmd
}

func (c *Commands) Register(name string, command cmd) {
	c.commands[name] = command
}
