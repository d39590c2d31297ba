// Command fb is the FinBoard portfolio accounting CLI.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/finboard/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: a no-op unless invoked by the completion hook.
	completion().Complete("fb")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "documentation")
	commander.Register(commander.FlagsCommand(), "documentation")
	commander.Register(commander.CommandsCommand(), "documentation")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	filterFlags := map[string]complete.Predictor{
		"platform": predict.Something,
		"type":     predict.Set{"MKT", "ETF", "CRP", "RSC", "FUN"},
		"from":     predict.Something,
		"to":       predict.Something,
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"db-file":     predict.Files("*.db"),
			"config-file": predict.Files("*.json"),
		},
		Sub: map[string]*complete.Command{
			"import": {
				Flags: map[string]complete.Predictor{"keep": predict.Nothing},
				Args:  predict.Or(predict.Files("*.csv"), predict.Files("*.jsonl")),
			},
			"export": {},
			"prices": {Flags: map[string]complete.Predictor{
				"clear":   predict.Nothing,
				"history": predict.Nothing,
				"range":   predict.Set{"1mo", "3mo", "6mo", "1y", "2y", "5y"},
				"ttl":     predict.Something,
			}},
			"holdings":   {Flags: filterFlags},
			"scoreboard": {Flags: filterFlags},
			"allocation": {Flags: filterFlags},
			"platforms":  {Flags: filterFlags},
			"activity":   {Flags: filterFlags},
			"timeline":   {Flags: filterFlags},
			"topic":      {Args: predict.Set{"readme", "format", "holdings", "scoreboard", "allocation", "platforms", "activity", "timeline", "splits", "prices"}},
		},
	}
}
