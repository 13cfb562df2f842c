package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/ecdc/cmd/app/commands"
	"github.com/allisson/ecdc/internal/app"
	"github.com/allisson/ecdc/internal/config"
	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
	pseudonymUseCase "github.com/allisson/ecdc/internal/pseudonym/usecase"
)

// engineFlags are accepted by every command that runs the cipher directly.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "secret",
			Usage: "Passphrase (overrides " + commands.EnvSecret + ")",
		},
		&cli.StringFlag{
			Name:  "tweak",
			Usage: "Domain-separation label (overrides " + commands.EnvTweak + ", default \"default\")",
		},
		&cli.StringFlag{
			Name:  "kdf",
			Usage: "Key derivation hash: sha256 or sha1 (overrides " + commands.EnvKDF + ")",
		},
		&cli.IntFlag{
			Name:  "iter",
			Usage: "PBKDF2 iterations (overrides " + commands.EnvIterations + ", default 200000)",
		},
	}
}

func engineFlagsFrom(cmd *cli.Command) commands.EngineFlags {
	var flags commands.EngineFlags
	if cmd.IsSet("secret") {
		v := cmd.String("secret")
		flags.Secret = &v
	}
	if cmd.IsSet("tweak") {
		v := cmd.String("tweak")
		flags.Tweak = &v
	}
	if cmd.IsSet("kdf") {
		v := cmd.String("kdf")
		flags.KDF = &v
	}
	if cmd.IsSet("iter") {
		v := int(cmd.Int("iter"))
		flags.Iterations = &v
	}
	return flags
}

// withEngineBridge resolves the engine configuration and passes an enabled
// bridge to fn.
func withEngineBridge(
	ctx context.Context,
	cmd *cli.Command,
	fn func(bridge pseudonymUseCase.IDBridge) error,
) error {
	container := app.NewContainer(config.Load())
	defer func() { _ = container.Shutdown(ctx) }()

	cfg, err := commands.ResolveEngineConfig(ctx, engineFlagsFrom(cmd), container.KMSService())
	if err != nil {
		return err
	}
	bridge, err := commands.NewEngineBridge(cfg, container.Logger())
	if err != nil {
		return err
	}
	return fn(bridge)
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func getIDCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "enc",
			Usage: "Encode a raw user ID into its public form",
			Flags: append([]cli.Flag{
				&cli.Int64Flag{Name: "tid", Required: true, Usage: "Raw user ID (0..999999999999)"},
			}, engineFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withEngineBridge(ctx, cmd, func(bridge pseudonymUseCase.IDBridge) error {
					return commands.RunEncodeUser(ctx, bridge, os.Stdout, cmd.Int64("tid"))
				})
			},
		},
		{
			Name:  "dec",
			Usage: "Decode a public user identifier back to the raw user ID",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: "uid", Required: true, Usage: "Public user identifier (XXXX-XXXX-XXXX)"},
			}, engineFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withEngineBridge(ctx, cmd, func(bridge pseudonymUseCase.IDBridge) error {
					return commands.RunDecodeUser(ctx, bridge, os.Stdout, cmd.String("uid"))
				})
			},
		},
		{
			Name:  "encg",
			Usage: "Encode a negative raw chat ID into its public form",
			Flags: append([]cli.Flag{
				&cli.Int64Flag{Name: "tgid", Required: true, Usage: "Raw chat ID, negative (use --tgid=-100...)"},
			}, engineFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withEngineBridge(ctx, cmd, func(bridge pseudonymUseCase.IDBridge) error {
					return commands.RunEncodeChat(ctx, bridge, os.Stdout, cmd.Int64("tgid"))
				})
			},
		},
		{
			Name:  "decg",
			Usage: "Decode a public chat identifier back to the raw chat ID",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:     "ugid",
					Required: true,
					Usage:    "Public chat identifier (-XXXX-XXXX-XXXX-XXXX, use --ugid=-...)",
				},
			}, engineFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withEngineBridge(ctx, cmd, func(bridge pseudonymUseCase.IDBridge) error {
					return commands.RunDecodeChat(ctx, bridge, os.Stdout, cmd.String("ugid"))
				})
			},
		},
		{
			Name:  "selftest",
			Usage: "Check the reference vectors and round trips under the current configuration",
			Flags: engineFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				writer := os.Stdout
				cfg, err := commands.ResolveEngineConfig(ctx, engineFlagsFrom(cmd), container.KMSService())
				// Reference vectors need no secret; the error is returned after them.
				if errors.Is(err, pseudonymDomain.ErrMissingSecret) {
					return commands.RunSelfTest(writer, nil, err)
				}
				if err != nil {
					return err
				}
				return commands.RunSelfTest(writer, &cfg, nil)
			},
		},
		{
			Name:  "resolve-chat",
			Usage: "Resolve a chat reference in raw or public form to the raw chat ID",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "reference",
					Aliases: []string{"r"},
					Usage:   "Chat reference (defaults to LOG_CHANNEL_ID)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				bridge, err := container.IDBridge()
				if err != nil {
					return err
				}

				reference := cfg.LogChannelReference()
				if cmd.IsSet("reference") {
					v := cmd.String("reference")
					reference = &v
				}

				return commands.RunResolveChat(
					ctx,
					bridge,
					os.Stdout,
					reference,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "admin-recipients",
			Usage: "List the raw user IDs of the configured administrators",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				bridge, err := container.IDBridge()
				if err != nil {
					return err
				}

				return commands.RunAdminRecipients(
					ctx,
					bridge,
					cfg.AdminSet(),
					os.Stdout,
					cmd.String("format"),
				)
			},
		},
	}
}
