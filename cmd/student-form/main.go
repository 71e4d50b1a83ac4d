// student-form is a terminal version of the student registration form.
// It talks to a running students-api:
//
//	go run ./cmd/student-form --server=http://localhost:5000
//
// Type "help" at the prompt for the list of commands.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/student-registration/internal/client"
	"github.com/aanand-mishra/student-registration/internal/form"
	"github.com/aanand-mishra/student-registration/internal/logger"
)

func main() {
	defaultServer := os.Getenv("STUDENTS_API_URL")
	if defaultServer == "" {
		defaultServer = "http://localhost:5000"
	}

	server := flag.String("server", defaultServer, "Base URL of the students API")
	env := flag.String("env", "dev", "Log format: dev, staging or prod")
	flag.Parse()

	// Logs go to stderr so they do not interleave with the rendered form.
	log := logger.New(*env, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(*server)
	defer api.Close()

	c := form.NewController(api, log)
	if err := form.Run(ctx, c, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
