package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error

	Docs(ctx context.Context) error
	AddDoc(ctx context.Context) error
	GetDoc(ctx context.Context) error
	DelDoc(ctx context.Context) error
	Events(ctx context.Context) error
	AddEvent(ctx context.Context) error

	Users(ctx context.Context) error
	AddUser(ctx context.Context) error
	SetRole(ctx context.Context) error
	DelUser(ctx context.Context) error
	Roles(ctx context.Context) error
	AddRole(ctx context.Context) error
	EditRole(ctx context.Context) error
	DelRole(ctx context.Context) error
	History(ctx context.Context) error
	ClearHistory(ctx context.Context) error
}

type access int

const (
	accessAnyone access = iota
	accessUser
	accessAdmin
)

type command struct {
	access access
	run    func(execIface, context.Context) error
}

var commands = map[string]command{
	"register": {accessAnyone, execIface.Register},
	"login":    {accessAnyone, execIface.Login},
	"logout":   {accessUser, execIface.Logout},
	"whoami":   {accessUser, execIface.Whoami},

	"docs":     {accessUser, execIface.Docs},
	"adddoc":   {accessUser, execIface.AddDoc},
	"getdoc":   {accessUser, execIface.GetDoc},
	"deldoc":   {accessUser, execIface.DelDoc},
	"events":   {accessUser, execIface.Events},
	"addevent": {accessUser, execIface.AddEvent},

	"users":        {accessAdmin, execIface.Users},
	"adduser":      {accessAdmin, execIface.AddUser},
	"setrole":      {accessAdmin, execIface.SetRole},
	"deluser":      {accessAdmin, execIface.DelUser},
	"roles":        {accessAdmin, execIface.Roles},
	"addrole":      {accessAdmin, execIface.AddRole},
	"editrole":     {accessAdmin, execIface.EditRole},
	"delrole":      {accessAdmin, execIface.DelRole},
	"history":      {accessAdmin, execIface.History},
	"clearhistory": {accessAdmin, execIface.ClearHistory},
}

const (
	helpGuest = "Available commands: register, login, exit"
	helpUser  = "Available commands: docs, adddoc, getdoc, deldoc, events, addevent, whoami, logout, exit"
	helpAdmin = "Administration: users, adduser, setrole, deluser, roles, addrole, editrole, delrole, history, clearhistory"
)

// runREPL starts a simple read–eval–print loop for the docflow CLI.
//
// It reads a line from reader, takes the first token as the command and
// dispatches to methods on 'a'. Commands that need a session or the admin
// role are refused with a message instead of being run. Errors returned by
// handlers are printed and the loop continues. The loop exits on EOF or
// when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("docflow %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "help":
			printHelp(a)
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		c, ok := commands[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}

		switch {
		case c.access >= accessUser && !a.isLoggedIn():
			printlnFn("Please log in first")
			continue
		case c.access == accessAdmin && !a.isAdmin():
			printlnFn("Administrator rights required")
			continue
		}

		if err := c.run(a, ctx); err != nil {
			printlnFn(describeError(err))
		}
	}
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn(helpGuest)
		return
	}
	printlnFn(helpUser)
	if a.isAdmin() {
		printlnFn(helpAdmin)
	}
}
