// Command srcalc calculates the machines and intermediate items required to
// craft a requested item at a requested rate.
//
// Usage:
//
//	srcalc -item "glass" -count 140
//	srcalc -spec request.json -depth 2
//	srcalc -dump-items
//	srcalc -genspec request.json -item "glass" -use-input
//	srcalc -verify-layout factories.json
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/myron-alexander/srcalc/internal/gamedata"
	"github.com/myron-alexander/srcalc/internal/layout"
	"github.com/myron-alexander/srcalc/internal/overrides"
	"github.com/myron-alexander/srcalc/internal/report"
	"github.com/myron-alexander/srcalc/internal/requestspec"
	"github.com/myron-alexander/srcalc/internal/resolver"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "srcalc:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		itemFlag   = flag.String("item", "", "requested item; mutually exclusive with -spec")
		specFlag   = flag.String("spec", "", "request spec JSON file; mutually exclusive with -item")
		dumpFlag   = flag.Bool("dump-items", false, "list the available items and exit")
		countFlag  = flag.Float64("count", 0, "requested items per minute; mutually exclusive with -machines")
		machFlag   = flag.Int("machines", 0, "calculate for this many machines producing the requested item; mutually exclusive with -count")
		depthFlag  = flag.Int("depth", 0, "limit production chain printing depth; 0 or less means no limit")
		genFlag    = flag.String("genspec", "", "write a request spec template for -item to this file and exit")
		useInFlag  = flag.Bool("use-input", false, "include an inputs section in the generated spec template")
		layoutFlag = flag.String("verify-layout", "", "factory layout JSON file to verify against the recipe database and exit")
		dataFlag   = flag.String("data", "data", "directory holding the recipe database CSV files")
	)
	flag.Parse()

	db, err := gamedata.NewLoader().Load(gamedata.DefaultPaths(*dataFlag))
	if err != nil {
		return err
	}

	if *dumpFlag {
		for _, name := range db.ItemNames() {
			fmt.Println(name)
		}
		return nil
	}

	if *genFlag != "" {
		return generateSpec(db, *genFlag, *itemFlag, *countFlag, *useInFlag)
	}

	if *layoutFlag != "" {
		return verifyLayout(db, *layoutFlag)
	}

	if (*itemFlag == "") == (*specFlag == "") {
		return fmt.Errorf("exactly one of -item or -spec must be given")
	}
	if *countFlag != 0 && *machFlag != 0 {
		return fmt.Errorf("-count and -machines are mutually exclusive")
	}

	item := *itemFlag
	rate := 0.0
	idx := overrides.Empty()

	if *specFlag != "" {
		spec, err := requestspec.LoadFile(*specFlag)
		if err != nil {
			return err
		}
		item = spec.Request.Item
		rate = spec.Request.ItemsPerMinute
		idx, err = overrides.NewIndex(spec.OverrideEntries())
		if err != nil {
			return err
		}
	}

	if *countFlag != 0 {
		rate = *countFlag
	}
	if *machFlag != 0 {
		perMachine, err := db.OneMachineIPM(item)
		if err != nil {
			return err
		}
		rate = perMachine * float64(*machFlag)
	}
	rate, err = requestRate(db, item, rate)
	if err != nil {
		return err
	}

	tree, summary, err := resolver.New(db, idx).Resolve(item, rate)
	if err != nil {
		return err
	}

	rows, err := summary.Rows()
	if err != nil {
		return err
	}

	fmt.Println()
	report.Banner(os.Stdout, item, rate)
	fmt.Println()
	report.RenderSummary(os.Stdout, rows)
	fmt.Println()
	return report.NewTreeRenderer(db).Render(os.Stdout, tree, *depthFlag)
}

// verifyLayout checks a factory layout file against the recipe database.
func verifyLayout(db *gamedata.Database, path string) error {
	defs, err := layout.LoadFile(path)
	if err != nil {
		return err
	}
	if err := layout.NewVerifier(db).Verify(defs); err != nil {
		return err
	}
	fmt.Printf("Layout file '%s' is valid.\n", path)
	return nil
}

// requestRate applies the shared defaulting rule: a rate below 1 means the
// output of a single machine, exactly as the server's planner resolves it.
func requestRate(db *gamedata.Database, item string, rate float64) (float64, error) {
	if rate >= 1 {
		return rate, nil
	}
	return db.OneMachineIPM(item)
}

func generateSpec(db *gamedata.Database, path, item string, count float64, includeInputs bool) error {
	if item == "" {
		return fmt.Errorf("must specify item name with -item when generating a spec file")
	}

	ipm := count
	if ipm == 0 {
		perMachine, err := db.OneMachineIPM(item)
		if err != nil {
			return err
		}
		ipm = perMachine
	}

	if err := requestspec.WriteTemplate(path, item, ipm, includeInputs); err != nil {
		return err
	}
	fmt.Printf("Written spec file '%s'.\n", path)
	return nil
}
