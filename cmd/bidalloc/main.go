package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "bidalloc",
		Usage: "Allocate product demand across supplier bids at minimum cost",
		Commands: []*cli.Command{
			solveCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

var solveCmd = &cli.Command{
	Name:    "solve",
	Usage:   "Solve one allocation from products, suppliers and bids tables",
	Aliases: []string{"s"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "products",
			Required: true,
			Usage:    "specify the input products.csv",
		},
		&cli.StringFlag{
			Name:     "suppliers",
			Required: true,
			Usage:    "specify the input suppliers.csv",
		},
		&cli.StringFlag{
			Name:     "bids",
			Required: true,
			Usage:    "specify the input bids.csv",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "write the allocation csv here instead of stdout",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "specify a yaml file with constraint limits",
		},
		&cli.IntFlag{
			Name:  "max-suppliers",
			Usage: "max suppliers per product (1-4)",
		},
		&cli.IntFlag{
			Name:  "capability-limit",
			Value: -1,
			Usage: "max percent of a product's demand per supplier (0-100)",
		},
		&cli.Float64Flag{
			Name:  "time-limit",
			Usage: "solve time limit in seconds",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "parallel search workers",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "log pipeline diagnostics",
		},
	},
	Action: func(ctx *cli.Context) error {
		return doSolve(solveArgs{
			productsFile:    ctx.String("products"),
			suppliersFile:   ctx.String("suppliers"),
			bidsFile:        ctx.String("bids"),
			outFile:         ctx.String("out"),
			configFile:      ctx.String("config"),
			maxSuppliers:    ctx.Int("max-suppliers"),
			capabilityLimit: ctx.Int("capability-limit"),
			timeLimit:       ctx.Float64("time-limit"),
			workers:         ctx.Int("workers"),
			verbose:         ctx.Bool("verbose"),
		})
	},
}
