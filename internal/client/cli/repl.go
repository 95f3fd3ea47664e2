package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App implements it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Pending(ctx context.Context, args []string) error
	Accept(ctx context.Context, args []string) error
	Decline(ctx context.Context, args []string) error
	UploadImage(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
}

// runREPL reads commands from reader until EOF or "exit"/"quit". Commands
// that prompt read from the same reader, so the loop must not buffer ahead.
//
//	Not logged in:
//	  register [role]   create an account
//	  login [role]      authenticate
//
//	Logged in:
//	  whoami            show the identity behind the session
//	  pending           list contributors awaiting approval (admin)
//	  accept <id>       approve a contributor (admin)
//	  decline <id>      decline a contributor (admin)
//	  upload-image <f>  upload an event image (admin, contributor)
//	  logout            forget the session
//
// Command errors are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("evento %s> ", statusFn()))
		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, pending, accept <id>, decline <id>, upload-image <path>, register [role], logout, exit")
			} else {
				printlnFn("Available commands: register [role], login [role], exit")
			}

		case "register":
			err = a.Register(ctx, args)

		case "login":
			err = a.Login(ctx, args)

		case "whoami":
			err = a.WhoAmI(ctx, args)

		case "pending":
			err = a.Pending(ctx, args)

		case "accept":
			err = a.Accept(ctx, args)

		case "decline":
			err = a.Decline(ctx, args)

		case "upload-image":
			err = a.UploadImage(ctx, args)

		case "logout":
			err = a.Logout(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
