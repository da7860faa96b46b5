// Package cli provides the interactive docflow terminal client.
//
// App holds the signed session token between commands and talks to the
// services through small interfaces. The REPL is started with App.Run,
// which blocks until the user types exit or input ends.
//
// Commands:
//   - help, register, login, logout, whoami, exit
//   - docs, adddoc, getdoc, deldoc, events, addevent (logged in)
//   - users, adduser, setrole, deluser, roles, addrole, editrole, delrole,
//     history, clearhistory (administrators)
package cli
