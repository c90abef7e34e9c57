// Command hash-generator prints a CouchDB user document with a bcrypt
// password hash, ready to be stored in the webapp database. It is the way to
// bootstrap the first admin account.
//
// Usage:
//
//	hash-generator -username admin -email admin@example.com -role admin < password.txt
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/phrazzld/webapp/internal/domain"
	"github.com/phrazzld/webapp/internal/ident"
	"github.com/phrazzld/webapp/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("hash-generator", flag.ContinueOnError)
	username := fs.String("username", "", "username of the new user")
	email := fs.String("email", "", "email address of the new user")
	role := fs.String("role", string(domain.RoleUser), "role: admin or user")
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	minLength := fs.Int("min-length", 6, "minimum password length")
	if err := fs.Parse(args); err != nil {
		return err
	}

	name, err := ident.ParseName(*username)
	if err != nil {
		return err
	}

	password, err := readPassword(stdin)
	if err != nil {
		return err
	}
	if len(password) < *minLength {
		return fmt.Errorf("password shorter than %d characters", *minLength)
	}

	hash, err := auth.HashPassword(password, *cost)
	if err != nil {
		return err
	}

	now := domain.FormatTime(time.Now())
	user := domain.User{
		IUID:           ident.NewIUID(),
		DocType:        domain.DocTypeUser,
		Username:       name,
		Email:          *email,
		Role:           domain.Role(*role),
		Status:         domain.StatusEnabled,
		HashedPassword: hash,
		Created:        now,
		Modified:       now,
	}
	if err := user.Validate(); err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(user)
}

// readPassword reads the first line of r.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
