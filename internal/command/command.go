package command

// Handler runs a command for an invocation.
type Handler func(ctx *Context) error

// Check gates a command. A non-nil error stops the invocation and is reported
// like any error returned by the handler.
type Check func(ctx *Context) error

// Command is a prefix command provided by a module.
type Command struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	// Module is the name of the module that registered the command. It is set
	// by the bot when the module is loaded.
	Module string
	Hidden bool
	Checks []Check
	Run    Handler
}

// Names returns the command name followed by its aliases.
func (c *Command) Names() []string {
	names := make([]string, 0, len(c.Aliases)+1)
	names = append(names, c.Name)
	return append(names, c.Aliases...)
}

// Signature returns the command name with its usage, e.g. "help [command]".
func (c *Command) Signature() string {
	if c.Usage == "" {
		return c.Name
	}
	return c.Name + " " + c.Usage
}
