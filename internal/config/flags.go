package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// commandLineArgs returns the process arguments without the program name.
func commandLineArgs() []string {
	if len(os.Args) < 2 {
		return nil
	}
	return os.Args[1:]
}

// ParseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-driver database driver (pgx or sqlite3)
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-log-level    minimum log level
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-expiry-scan-interval password expiry scan interval (e.g., "1h")
//	-pbkdf2-iterations PBKDF2 iteration count for new hashes
//	-password-history-count number of retired passwords checked for reuse
//	-max-login-attempts failed logins before lockout
//	-lockout-duration-minutes lockout window
//	-password-min-length minimum password length
//	-password-expiry-days password aging window
//	-session-timeout-minutes session token lifetime
//
// Security flags are applied only when present on the command line so that
// an explicit 0 can be told apart from "not set".
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-cred-guard", flag.ContinueOnError)

	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN, databaseDriver string
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer, logLevel string
	var requestTimeout, expiryScanInterval time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "driver", "", "Database driver (pgx, sqlite3)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&expiryScanInterval, "expiry-scan-interval", 0, "Password expiry scan interval (e.g., 1h)")

	security := map[string]*int{
		"pbkdf2-iterations":        new(int),
		"password-history-count":   new(int),
		"max-login-attempts":       new(int),
		"lockout-duration-minutes": new(int),
		"password-min-length":      new(int),
		"password-expiry-days":     new(int),
		"session-timeout-minutes":  new(int),
	}
	for name, p := range security {
		fs.IntVar(p, name, 0, "Security policy: "+strings.ReplaceAll(name, "-", " "))
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	pick := func(name string) *int {
		if !set[name] {
			return nil
		}
		return security[name]
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
			LogLevel:     logLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Security: Security{
			PBKDF2Iterations:       pick("pbkdf2-iterations"),
			PasswordHistoryCount:   pick("password-history-count"),
			MaxLoginAttempts:       pick("max-login-attempts"),
			LockoutDurationMinutes: pick("lockout-duration-minutes"),
			PasswordMinLength:      pick("password-min-length"),
			PasswordExpiryDays:     pick("password-expiry-days"),
			SessionTimeoutMinutes:  pick("session-timeout-minutes"),
		},
		Workers:      Workers{ExpiryScanInterval: expiryScanInterval},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}
	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
