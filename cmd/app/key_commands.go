package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/ecdc/cmd/app/commands"
	"github.com/allisson/ecdc/internal/app"
	"github.com/allisson/ecdc/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "hash-api-token",
			Usage: "Generate an API bearer token and its Argon2id hash for API_TOKEN_HASH",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "token",
					Aliases: []string{"t"},
					Usage:   "Hash this token instead of generating a new one",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunHashAPIToken(
					container.APITokenService(),
					container.Logger(),
					os.Stdout,
					cmd.String("token"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "wrap-secret",
			Usage: "Encrypt the pseudonymization secret with a KMS key for ECDC_SECRET",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "kms-key-uri",
					Required: true,
					Usage:    "KMS key URI (e.g., base64key://, gcpkms://projects/.../cryptoKeys/...)",
				},
				&cli.StringFlag{
					Name:     "secret",
					Required: true,
					Usage:    "Plaintext secret to wrap",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunWrapSecret(
					ctx,
					container.KMSService(),
					container.Logger(),
					os.Stdout,
					cmd.String("kms-key-uri"),
					cmd.String("secret"),
				)
			},
		},
	}
}
