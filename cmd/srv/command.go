package main

import (
	"github.com/urfave/cli/v2"
)

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "nftgallery"
	s.app.Usage = "Achievement NFT gallery and minting service"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the TOML config file",
			EnvVars: []string{"CONFIG_PATH"},
		},
	}
	s.app.Before = s.loadConfig
	s.app.After = s.syncLogger
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Serves the gallery, profile and mint history apis and records mint outcomes.`,
		},
		{
			Action:      s.startBlockchain,
			Name:        "blockchain",
			Usage:       "Start service blockchain",
			Category:    "Blockchain",
			Description: `Serves the rpc which builds and submits create_asset transactions.`,
		},
		{
			Action:   s.startGallery,
			Name:     "gallery",
			Usage:    "Show the gallery of a user and mint an achievement",
			Category: "Client",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "username",
					Usage: "Username on the profile service",
				},
				&cli.StringFlag{
					Name:  "keypair",
					Usage: "Path to the keypair file of the wallet, overrides solana.keypair_path",
				},
				&cli.StringFlag{
					Name:  "mint-data",
					Usage: "Path to a json file with the achievements of every slot",
				},
				&cli.StringFlag{
					Name:  "mint",
					Usage: "Code name of the slot to mint",
				},
				&cli.BoolFlag{
					Name:  "yes",
					Usage: "Confirm the mint without asking",
				},
			},
			Description: `Fetches the profile, prints every slot with its mint decision and optionally mints one slot.`,
		},
		{
			Action:   s.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate database",
			Category: "Database",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "version",
					Value: "auto",
					Usage: "Migration version",
				},
			},
		},
	}
}
