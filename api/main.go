package main

import (
	"os"

	"github.com/rogerio-castellano/stock-manager/internal/config"
	"github.com/rogerio-castellano/stock-manager/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var cfg config.Config

// @title Stock Manager API
// @version 1.0
// @description REST API for the product catalog, categories and dashboard statistics.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := &cli.App{
		Name:  "stock-manager",
		Usage: "Inventory catalog backend with dashboard statistics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML, TOML or JSON config file",
				EnvVars: []string{"STOCK_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Log level (debug, info, warn, error); overrides the config file",
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			cfg, err = config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if c.IsSet("log-level") {
				cfg.LogLevel = c.String("log-level")
			}
			logger.Setup(cfg.LogLevel)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API and the daily stock value recorder",
				Action: serve,
			},
			{
				Name:      "migrate",
				Usage:     "Apply database migrations",
				ArgsUsage: "[up|down|status]",
				Action:    migrate,
			},
			{
				Name:   "snapshot",
				Usage:  "Record today's total stock value once",
				Action: snapshot,
			},
			{
				Name:  "createuser",
				Usage: "Create a user with the given role",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "role", Value: "Admin", Usage: "Admin, Manager or Reader"},
				},
				Action: createUser,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Error("application error")
		os.Exit(1)
	}
}
