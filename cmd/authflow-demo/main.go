// Command authflow-demo drives the authentication journeys from a terminal.
// It stands in for the rendering layer: routes print instead of navigate,
// and every line of input counts as activity for the idle monitor.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-authflow/authflow"
	"github.com/jrsteele09/go-authflow/backend"
	"github.com/jrsteele09/go-authflow/flowstate"
	"github.com/jrsteele09/go-authflow/idle"
	"github.com/jrsteele09/go-authflow/internal/config"
	"github.com/jrsteele09/go-authflow/session"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running demo: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Demo stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()
	c := config.New()
	displayAppname(c.GetAppName())

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	controller, sessions, err := buildController(c, logger)
	if err != nil {
		return err
	}

	demo := &demo{
		controller: controller,
		sessions:   sessions,
		in:         bufio.NewScanner(os.Stdin),
	}

	monitor, err := idle.New(c.GetIdleTimeout(), func() {
		redirect := controller.LockForInactivity(authflow.RouteDashboard)
		if !redirect.IsZero() {
			fmt.Printf("\n[idle] locked, continue at %s\n> ", redirect.Route)
		}
	}, idle.WithLogger(logger))
	if err != nil {
		return err
	}
	demo.monitor = monitor

	demo.loop()
	monitor.Stop()
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

func buildController(c config.Config, logger zerolog.Logger) (*authflow.Controller, session.Store, error) {
	api := backend.New(c.GetAPIBaseURL(), backend.WithTimeout(c.GetAPITimeout()))
	sessions := session.NewInMemoryStore()

	var repo flowstate.Repo = flowstate.NewInMemoryRepo()
	if addr := c.GetRedisAddr(); addr != "" {
		repo = flowstate.NewRedisRepo(redis.NewClient(&redis.Options{Addr: addr}))
		logger.Info().Str("addr", addr).Msg("flow state in redis")
	}

	controller, err := authflow.New(authflow.Deps{
		API:      api,
		Flow:     flowstate.NewStore(repo),
		Sessions: sessions,
	},
		authflow.WithLogger(logger),
		authflow.WithOTPDigits(c.GetOTPDigits()),
	)
	if err != nil {
		return nil, nil, err
	}
	return controller, sessions, nil
}

type demo struct {
	controller *authflow.Controller
	sessions   session.Store
	monitor    *idle.Monitor
	in         *bufio.Scanner
}

func (d *demo) loop() {
	fmt.Println("commands: signup, login, logout, pin, forgot, pinreset, whoami, quit")
	for {
		cmd := d.prompt("> ")
		ctx := context.Background()

		var err error
		switch cmd {
		case "signup":
			err = d.signup(ctx)
		case "login":
			err = d.login(ctx)
		case "logout":
			d.show(d.controller.Logout(), nil)
			d.monitor.Stop()
		case "pin":
			d.show(d.controller.VerifyPIN(ctx, d.prompt("pin: ")))
		case "forgot":
			err = d.forgotPassword(ctx)
		case "pinreset":
			err = d.pinReset(ctx)
		case "whoami":
			d.whoami()
		case "quit", "":
			return
		default:
			fmt.Println("unknown command")
		}
		if err != nil {
			fmt.Printf("error: %s\n", err)
		}
	}
}

func (d *demo) signup(ctx context.Context) error {
	details := authflow.SignupDetails{
		Name:     d.prompt("name: "),
		Email:    d.prompt("email: "),
		Password: d.prompt("password: "),
	}
	if redirect, err := d.controller.StartSignup(ctx, details); err != nil {
		return err
	} else {
		d.show(redirect, nil)
	}

	if redirect, err := d.controller.VerifySignupOTP(ctx, d.prompt("otp: ")); err != nil {
		return err
	} else {
		d.show(redirect, nil)
	}

	redirect, err := d.controller.CompleteSignup(ctx, d.prompt("pin: "), d.prompt("confirm pin: "))
	d.show(redirect, err)
	return err
}

func (d *demo) login(ctx context.Context) error {
	redirect, err := d.controller.Login(ctx, d.prompt("email: "), d.prompt("password: "))
	if err != nil {
		return err
	}
	d.show(redirect, nil)
	d.monitor.Start()
	return nil
}

func (d *demo) forgotPassword(ctx context.Context) error {
	if redirect, err := d.controller.StartPasswordReset(ctx, d.prompt("email: ")); err != nil {
		return err
	} else {
		d.show(redirect, nil)
	}
	if redirect, err := d.controller.VerifyPasswordResetOTP(ctx, d.prompt("otp: ")); err != nil {
		return err
	} else {
		d.show(redirect, nil)
	}
	redirect, err := d.controller.CompletePasswordReset(ctx, d.prompt("new password: "))
	d.show(redirect, err)
	return err
}

func (d *demo) pinReset(ctx context.Context) error {
	if redirect, err := d.controller.StartPINReset(ctx, d.prompt("email: ")); err != nil {
		return err
	} else {
		d.show(redirect, nil)
	}
	if redirect, err := d.controller.VerifyPINResetOTP(ctx, d.prompt("otp: ")); err != nil {
		return err
	} else {
		d.show(redirect, nil)
	}
	redirect, err := d.controller.CompletePINReset(ctx, d.prompt("new pin: "), d.prompt("confirm pin: "))
	d.show(redirect, err)
	return err
}

func (d *demo) whoami() {
	current, err := d.sessions.Get()
	if err != nil {
		fmt.Println("not signed in")
		return
	}
	fmt.Printf("%s <%s> since %s\n", current.User.Name, current.User.Email, current.CreatedAt.Format(time.RFC3339))
}

// prompt reads one line; every line of input counts as user activity.
func (d *demo) prompt(label string) string {
	fmt.Print(label)
	if !d.in.Scan() {
		return ""
	}
	if d.monitor != nil {
		d.monitor.Poke()
	}
	return strings.TrimSpace(d.in.Text())
}

func (d *demo) show(redirect authflow.Redirect, err error) {
	if err != nil {
		fmt.Printf("error: %s\n", err)
		return
	}
	if redirect.IsZero() {
		return
	}
	if redirect.Notice != "" {
		fmt.Printf("-> %s (%s)\n", redirect.Route, redirect.Notice)
		return
	}
	fmt.Printf("-> %s\n", redirect.Route)
}