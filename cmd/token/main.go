package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/saulo-duarte/accountability-buddy/internal/auth"
	"github.com/saulo-duarte/accountability-buddy/internal/config"
)

func main() {
	app := &cli.App{
		Name:  "token",
		Usage: "mint an API token for the goals service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "user",
				Aliases:  []string{"u"},
				Usage:    "user id stored in the token",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "role",
				Value: "user",
				Usage: "role stored in the token",
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Value: 24 * time.Hour,
				Usage: "token lifetime",
			},
			&cli.StringFlag{
				Name:    "secret",
				Usage:   "signing secret",
				EnvVars: []string{"JWT_SECRET"},
			},
		},
		Action: func(cCtx *cli.Context) error {
			if secret := cCtx.String("secret"); secret != "" {
				os.Setenv("JWT_SECRET", secret)
			}
			if os.Getenv("JWT_SECRET") == "" {
				return cli.Exit("JWT_SECRET is required", 1)
			}
			auth.Init()

			token, err := auth.GenerateJWT(cCtx.String("user"), cCtx.String("role"), cCtx.Duration("ttl"))
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}

			fmt.Fprintln(cCtx.App.Writer, token)
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		config.Logger.WithError(err).Fatal("token command failed")
	}
}
