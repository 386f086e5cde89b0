// issue-token mints a bearer token for the statement API.
//
// Usage (from backend directory):
//
//	API_SECRET=... DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//	  go run ./cmd/issue-token -company Acme -user-id 1 -role accountant
//
// The company must exist; pass -skip-check to mint without a database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mmdatafocus/statement_backend/config"
	"github.com/mmdatafocus/statement_backend/models"
	"github.com/mmdatafocus/statement_backend/utils"
)

func main() {
	company := flag.String("company", "", "Company the token is scoped to (required)")
	userID := flag.Int("user-id", 0, "User id stored in the token")
	role := flag.String("role", "accountant", "Role stored in the token")
	skipCheck := flag.Bool("skip-check", false, "Do not verify the company exists")
	flag.Parse()

	name := strings.TrimSpace(*company)
	if name == "" {
		fmt.Fprintln(os.Stderr, "-company is required")
		os.Exit(2)
	}

	if !*skipCheck {
		config.ConnectDatabaseWithRetry()
		if config.GetDB() == nil {
			fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
			os.Exit(1)
		}
		if _, err := models.GetCompany(context.Background(), name); err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				fmt.Fprintf(os.Stderr, "company %q not found\n", name)
				os.Exit(2)
			}
			fmt.Fprintf(os.Stderr, "failed to lookup company: %v\n", err)
			os.Exit(1)
		}
	}

	token, err := utils.JwtGenerate(*userID, *role, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
