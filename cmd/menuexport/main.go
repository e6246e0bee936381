package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/leademy-studio/shusha-rest/internal/config"
	"github.com/leademy-studio/shusha-rest/internal/iiko"
	"github.com/leademy-studio/shusha-rest/internal/service/catalog"
)

func main() {
	var (
		outPath        string
		organizationID string
	)
	flag.StringVar(&outPath, "out", "static-menu.json", "Path to write the simplified menu JSON")
	flag.StringVar(&organizationID, "org", "", "Organization ID to export (defaults to the first one)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}
	cfg := config.FromEnv()
	if cfg.IikoAPILogin == "" {
		log.Fatal("IIKO_API_LOGIN is required")
	}

	ctx := context.Background()
	client := iiko.New(cfg.IikoBaseURL, cfg.IikoAPILogin, nil)

	start := time.Now()
	menu, err := export(ctx, client, organizationID)
	if err != nil {
		log.Fatalf("export menu: %v", err)
	}

	data, err := json.MarshalIndent(menu, "", "  ")
	if err != nil {
		log.Fatalf("encode menu: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", outPath, err)
	}

	fmt.Printf("Exported %d items for organization %s to %s in %s\n",
		len(menu.Items), menu.OrganizationID, outPath, time.Since(start).Truncate(time.Millisecond))
}

func export(ctx context.Context, client *iiko.Client, organizationID string) (*catalog.Menu, error) {
	token, err := client.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}

	if organizationID == "" {
		orgs, err := client.Organizations(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("organizations: %w", err)
		}
		if len(orgs) == 0 {
			return nil, errors.New("no organizations for api login")
		}
		organizationID = orgs[0].ID
	}

	groups, err := client.TerminalGroups(ctx, token, []string{organizationID})
	if err != nil {
		return nil, fmt.Errorf("terminal groups: %w", err)
	}
	terminalGroupID := ""
	for _, g := range groups {
		if g.IsActive {
			terminalGroupID = g.ID
			break
		}
	}
	if terminalGroupID == "" && len(groups) > 0 {
		terminalGroupID = groups[0].ID
	}

	nom, err := client.Nomenclature(ctx, token, organizationID)
	if err != nil {
		return nil, fmt.Errorf("nomenclature: %w", err)
	}

	return &catalog.Menu{
		Items:           iiko.Simplify(nom, organizationID),
		OrganizationID:  organizationID,
		TerminalGroupID: terminalGroupID,
	}, nil
}
