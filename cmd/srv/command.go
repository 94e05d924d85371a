package main

import "github.com/urfave/cli/v2"

var configFlag = &cli.StringFlag{
	Name:  "config",
	Usage: "The path of the configuration file",
	Value: "config.toml",
}

// loadApp creates an app with sane defaults.
func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Pulsefeed"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{configFlag},
			Category:    "Api",
			Description: `Used for start service api, it main service included all apis.`,
		},
		{
			Action:   server.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate the database schema",
			Category: "Database",
			Flags: []cli.Flag{
				configFlag,
				&cli.BoolFlag{
					Name:  "auto",
					Usage: "Create the full schema instead of applying versioned migrations",
				},
			},
		},
	}

	s.app = app
}
