package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/alperakbas/emailscope/internal/models"
	"github.com/alperakbas/emailscope/internal/services"
	"github.com/alperakbas/emailscope/pkg/config"
)

func main() {
	user := flag.String("user", "", "GitHub username to look up")
	id := flag.Int64("id", 0, "numeric GitHub user ID to look up (alternative to -user)")
	token := flag.String("token", "", "GitHub token (defaults to GITHUB_TOKEN)")
	repo := flag.String("repo", "", "repository to mine for commit identities (owner/name or bare name)")
	asJSON := flag.Bool("json", false, "print the result as JSON")
	output := flag.String("o", "", "write the result to an .xlsx report at this path")
	flag.Parse()

	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	req, err := buildRequest(*user, *id, *token, *repo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	resolverService := services.NewResolverService(
		config.AppConfig.GitHub.APIBaseURL,
		config.AppConfig.NPM.RegistryURL,
	)

	result, err := resolverService.Resolve(context.Background(), req)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			fmt.Fprintf(os.Stderr, "no GitHub account with ID %d\n", *id)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "lookup failed: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		if err := services.NewExportService().ExportToExcel(result, *output); err != nil {
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("report written to %s\n", *output)
		return
	}

	if *asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		encoder.Encode(result)
		return
	}

	printResult(result)
}

func buildRequest(user string, id int64, token, repo string) (*models.LookupRequest, error) {
	if (user == "") == (id == 0) {
		return nil, errors.New("exactly one of -user and -id is required")
	}

	var req *models.LookupRequest
	if user != "" {
		req = models.NewUsernameLookup(user)
	} else {
		req = models.NewIDLookup(id)
	}

	req.Repository = repo
	req.Token = token
	if req.Token == "" {
		req.Token = config.AppConfig.GitHub.Token
	}
	return req, nil
}

func printResult(result *models.EmailResult) {
	fmt.Printf("User: %s\n", result.Username)
	fmt.Printf("GitHub profile: %s\n", valueOrDash(result.GitHub))
	fmt.Printf("npm registry:   %s\n", valueOrDash(result.NPM))

	fmt.Printf("Recent activity (%d):\n", len(result.RecentActivity))
	for _, email := range result.RecentActivity {
		fmt.Printf("  %s\n", email)
	}

	fmt.Printf("Recent commits (%d):\n", len(result.RecentCommits))
	for _, entry := range result.RecentCommits {
		fmt.Printf("  %s <%s>\n", entry.Name, entry.Email)
	}
}

func valueOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
