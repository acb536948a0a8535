// dsim simulates historical dividend and return outcomes for investment
// strategies, replaying real price, dividend and split history.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/hanjk/divsim/cmd"
)

func main() {
	// Shell completion: no-op unless invoked by the completion machinery.
	completion().Complete("dsim")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range cmd.Commands() {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	simFlags := map[string]complete.Predictor{
		"s":              predict.Something,
		"d":              predict.Something,
		"amount":         predict.Something,
		"currency":       predict.Set{"USD", "EUR"},
		"mode":           predict.Set{"lump_sum", "periodic"},
		"cadence":        predict.Set{"month", "quarter", "year"},
		"reinvest":       predict.Nothing,
		"same-day-earns": predict.Nothing,
		"min-reinvest":   predict.Something,
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"fetch":     {Flags: map[string]complete.Predictor{"s": predict.Something, "d": predict.Something}},
			"simulate":  {Flags: simFlags},
			"compare":   {Flags: simFlags},
			"dividends": {Flags: simFlags},
			"export":    {Flags: simFlags},
			"watch":     {Flags: simFlags},
			"assist":    {Flags: simFlags},
			"search":    {},
		},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"db":     predict.Files("*.db"),
			"v":      predict.Nothing,
		},
	}
}
