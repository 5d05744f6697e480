package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"siteconf/cmd/siteconf/cmds"
	"siteconf/internal/backends"
	"siteconf/internal/site"
	"siteconf/internal/types"
)

const (
	MultisiteEnvKey = "SITECONF_MULTISITE"
	usage           = `usage:
  siteconf seed <file.yml>
  siteconf tenants
  siteconf info [tenant]
  siteconf get [tenant] <key>
  siteconf set [tenant] <key> <value>

tenant is a numeric id or a slug; omit it for the default tenant.
Backend selection and multisite mode come from the environment
(SETTINGS_BACKEND, SITECONF_MULTISITE).`
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Info("The .env file not found.")
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()

	store, dir, err := backends.FromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize backend: %v", err)
	}
	events, topic, err := backends.EventsFromEnv(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize change-event publisher: %v", err)
	}
	cfg := site.Config{
		Settings:    store,
		Tenants:     backends.NewCachedDirectory(dir),
		Events:      events,
		EventsTopic: topic,
		Multisite:   parseBool(os.Getenv(MultisiteEnvKey)),
	}

	if err := run(ctx, cfg, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg site.Config, cmd string, args []string) error {
	switch cmd {
	case "seed":
		if len(args) != 1 {
			return errors.New(usage)
		}
		return cmds.SeedFromFile(ctx, cfg.Tenants, cfg.Settings, args[0])

	case "tenants":
		tenants, err := cfg.Tenants.List(ctx)
		if err != nil {
			return err
		}
		for _, t := range tenants {
			fmt.Printf("%d\t%s\t%s\n", t.ID, t.Slug, t.Domain)
		}
		return nil

	case "info":
		ref, _, err := splitTenantArg(args, 0)
		if err != nil {
			return err
		}
		out, err := cmds.Info(ctx, cfg, ref)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil

	case "get":
		ref, rest, err := splitTenantArg(args, 1)
		if err != nil {
			return err
		}
		s, err := site.New(ctx, cfg, ref)
		if err != nil {
			return err
		}
		v, err := s.Read(ctx, rest[0])
		if err != nil {
			return err
		}
		if !v.Present {
			fmt.Println("(not set)")
			return nil
		}
		fmt.Println(v.Val)
		return nil

	case "set":
		ref, rest, err := splitTenantArg(args, 2)
		if err != nil {
			return err
		}
		s, err := site.New(ctx, cfg, ref)
		if err != nil {
			return err
		}
		return s.Update(ctx, rest[0], rest[1])

	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

// splitTenantArg peels an optional leading tenant argument off args,
// leaving exactly want positional arguments.
func splitTenantArg(args []string, want int) (types.TenantRef, []string, error) {
	switch len(args) {
	case want:
		return types.TenantRef{}, args, nil
	case want + 1:
		ident := args[0]
		if id, err := strconv.ParseInt(ident, 10, 64); err == nil {
			return types.ByID(id), args[1:], nil
		}
		return types.BySlug(ident), args[1:], nil
	default:
		return types.TenantRef{}, nil, errors.New(usage)
	}
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}
