package client

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/go-cred-guard/internal/adapter"
	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/models"
)

const usage = `usage: credctl <command> [flags]

commands:
  login            -identifier NAME -password SECRET
  change-password  -current SECRET -new SECRET
  register         -identifier NAME -password SECRET [-role admin|operator|viewer]
  list-locked
  unlock           IDENTIFIER
  policy get
  policy set       -file POLICY.json
  version
`

// App is the credctl runtime.
type App struct {
	client    adapter.CredentialClient
	buildInfo models.AppBuildInfo
	out       io.Writer
	logger    *logger.Logger
}

// NewApp constructs an [App] writing its output to out.
func NewApp(client adapter.CredentialClient, buildInfo models.AppBuildInfo, out io.Writer, logger *logger.Logger) (*App, error) {
	if client == nil {
		return nil, ErrNoAdapterProvided
	}

	return &App{
		client:    client,
		buildInfo: buildInfo,
		out:       out,
		logger:    logger,
	}, nil
}

// Run executes one command. args excludes the program name.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrNoCommand
	}

	command, rest := args[0], args[1:]
	a.logger.Debug().Str("command", command).Msg("running command")

	switch command {
	case "login":
		return a.login(ctx, rest)
	case "change-password":
		return a.changePassword(ctx, rest)
	case "register":
		return a.register(ctx, rest)
	case "list-locked":
		return a.listLocked(ctx)
	case "unlock":
		return a.unlock(ctx, rest)
	case "policy":
		return a.policy(ctx, rest)
	case "version":
		return a.version(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.newFlagSet("login")
	identifier := fs.String("identifier", "", "account identifier")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *identifier == "" || *password == "" {
		return fmt.Errorf("%w: -identifier and -password are required", ErrMissingArgument)
	}

	resp, err := a.client.Login(ctx, models.LoginRequest{Identifier: *identifier, Password: *password})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "token: %s\n", a.client.Token())
	if !resp.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "expires at: %s\n", resp.ExpiresAt.Format(time.RFC3339))
	}
	if resp.PasswordExpired {
		fmt.Fprintln(a.out, "password expired: run credctl change-password")
	}

	return nil
}

func (a *App) changePassword(ctx context.Context, args []string) error {
	fs := a.newFlagSet("change-password")
	current := fs.String("current", "", "current password")
	next := fs.String("new", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *current == "" || *next == "" {
		return fmt.Errorf("%w: -current and -new are required", ErrMissingArgument)
	}

	if err := a.client.ChangePassword(ctx, models.ChangePasswordRequest{CurrentPassword: *current, NewPassword: *next}); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "password changed")
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.newFlagSet("register")
	identifier := fs.String("identifier", "", "account identifier")
	password := fs.String("password", "", "initial password")
	role := fs.String("role", string(models.RoleViewer), "account role")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *identifier == "" || *password == "" {
		return fmt.Errorf("%w: -identifier and -password are required", ErrMissingArgument)
	}

	account, err := a.client.RegisterAccount(ctx, models.RegisterRequest{
		Identifier: *identifier,
		Password:   *password,
		Role:       models.Role(*role),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "account %s created with role %s\n", account.Identifier, account.Role)
	return nil
}

func (a *App) listLocked(ctx context.Context) error {
	locked, err := a.client.ListLocked(ctx)
	if err != nil {
		return err
	}
	if len(locked) == 0 {
		fmt.Fprintln(a.out, "no locked accounts")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "IDENTIFIER\tFAILED ATTEMPTS\tLOCKED UNTIL")
	for _, account := range locked {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", account.Identifier, account.FailedAttempts, account.LockoutUntil.Format(time.RFC3339))
	}
	return tw.Flush()
}

func (a *App) unlock(ctx context.Context, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return fmt.Errorf("%w: unlock takes exactly one identifier", ErrMissingArgument)
	}

	if err := a.client.Unlock(ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "account %s unlocked\n", args[0])
	return nil
}

func (a *App) policy(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: policy get|set", ErrMissingArgument)
	}

	switch args[0] {
	case "get":
		doc, err := a.client.GetSecurityPolicy(ctx)
		if err != nil {
			return err
		}
		return a.printJSON(doc)
	case "set":
		fs := a.newFlagSet("policy set")
		file := fs.String("file", "", "path to a JSON security policy document")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *file == "" {
			return fmt.Errorf("%w: -file is required", ErrMissingArgument)
		}

		current, err := a.client.GetSecurityPolicy(ctx)
		if err != nil {
			return err
		}
		doc, err := readPolicyDocument(*file, current)
		if err != nil {
			return err
		}
		stored, err := a.client.PutSecurityPolicy(ctx, doc)
		if err != nil {
			return err
		}
		return a.printJSON(stored)
	default:
		return fmt.Errorf("%w: policy %s", ErrUnknownCommand, args[0])
	}
}

func (a *App) version(ctx context.Context) error {
	fmt.Fprintf(a.out, "credctl %s (%s, %s)\n", a.buildInfo.BuildVersion(), a.buildInfo.BuildDate(), a.buildInfo.BuildCommit())

	serverVersion, err := a.client.Version(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "server %s\n", serverVersion)
	return nil
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readPolicyDocument decodes the file at path over base, so options missing
// from the file keep their current value. Unknown fields are rejected.
func readPolicyDocument(path string, base models.SecurityPolicyDocument) (models.SecurityPolicyDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.SecurityPolicyDocument{}, fmt.Errorf("error opening policy file: %w", err)
	}
	defer f.Close()

	doc := base
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err = dec.Decode(&doc); err != nil {
		return models.SecurityPolicyDocument{}, fmt.Errorf("error decoding policy file: %w", err)
	}

	return doc, nil
}
