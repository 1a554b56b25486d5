package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ecosort/ecosort/internal/ui/client"
	"github.com/ecosort/ecosort/internal/ui/config"
)

// apiCall runs one client function with the command arguments
type apiCall struct {
	use   string
	short string
	args  cobra.PositionalArgs
	call  func(ctx context.Context, c *client.Client, args []string) (any, error)
}

var apiCalls = []apiCall{
	{"categories", "List the waste categories", cobra.NoArgs,
		func(ctx context.Context, c *client.Client, _ []string) (any, error) {
			return c.GetCategories(ctx)
		}},
	{"category <name>", "Show one category and its items", cobra.ExactArgs(1),
		func(ctx context.Context, c *client.Client, args []string) (any, error) {
			return c.GetCategoryDetail(ctx, args[0])
		}},
	{"search <keyword>", "Find the category of a piece of waste", cobra.ExactArgs(1),
		func(ctx context.Context, c *client.Client, args []string) (any, error) {
			return c.SearchGarbage(ctx, args[0])
		}},
	{"knowledge [category]", "List knowledge entries, optionally for one category", cobra.MaximumNArgs(1),
		func(ctx context.Context, c *client.Client, args []string) (any, error) {
			return c.GetKnowledge(ctx, optionalArg(args))
		}},
	{"knowledge-detail <id>", "Show one knowledge entry", cobra.ExactArgs(1),
		func(ctx context.Context, c *client.Client, args []string) (any, error) {
			id, err := idArg(args[0])
			if err != nil {
				return nil, err
			}
			return c.GetKnowledgeDetail(ctx, id)
		}},
	{"news [category]", "List news articles, optionally for one category", cobra.MaximumNArgs(1),
		func(ctx context.Context, c *client.Client, args []string) (any, error) {
			return c.GetNews(ctx, optionalArg(args))
		}},
	{"news-detail <id>", "Show one news article", cobra.ExactArgs(1),
		func(ctx context.Context, c *client.Client, args []string) (any, error) {
			id, err := idArg(args[0])
			if err != nil {
				return nil, err
			}
			return c.GetNewsDetail(ctx, id)
		}},
	{"stats", "Show the platform statistics", cobra.NoArgs,
		func(ctx context.Context, c *client.Client, _ []string) (any, error) {
			return c.GetStats(ctx)
		}},
}

func newAPICommand() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Call the ecosort API and print the JSON response data",
	}
	cmd.PersistentFlags().StringVar(&baseURL, "api-base-url", "", "API origin (defaults to API_BASE_URL)")

	for _, call := range apiCalls {
		cmd.AddCommand(&cobra.Command{
			Use:   call.use,
			Short: call.short,
			Args:  call.args,
			RunE: func(cmd *cobra.Command, args []string) error {
				origin, err := apiOrigin(baseURL)
				if err != nil {
					return err
				}

				res, err := call.call(cmd.Context(), client.NewClient(origin), args)
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(res)
			},
		})
	}
	return cmd
}

func apiOrigin(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	cfg, err := config.NewConfig()
	if err != nil {
		return "", err
	}
	return cfg.APIBaseURL, nil
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func idArg(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("id must be a number, got %q", s)
	}
	return id, nil
}
