package gamedata

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/myron-alexander/srcalc/internal/domain"
)

// Default data file names, matching the game data export.
const (
	ItemsFileName     = "starrupture_recipe_items.csv"
	InputsFileName    = "starrupture_recipe_input.csv"
	RawFileName       = "starrupture_recipe_raw.csv"
	BuildingsFileName = "starrupture_recipe_buildings.csv"
)

// The data files are semicolon delimited; item names contain spaces.
const csvDelimiter = ';'

// Paths names the four CSV tables the database is built from.
type Paths struct {
	Items     string
	Inputs    string
	Raw       string
	Buildings string
}

// DefaultPaths returns the standard file layout under a data directory.
func DefaultPaths(dir string) Paths {
	return Paths{
		Items:     filepath.Join(dir, ItemsFileName),
		Inputs:    filepath.Join(dir, InputsFileName),
		Raw:       filepath.Join(dir, RawFileName),
		Buildings: filepath.Join(dir, BuildingsFileName),
	}
}

// Loader reads and validates the recipe database from CSV files.
type Loader interface {
	Load(paths Paths) (*Database, error)
}

type csvLoader struct{}

// NewLoader creates a new Loader instance.
func NewLoader() Loader {
	return &csvLoader{}
}

// Load reads the four tables and assembles a validated Database.
func (l *csvLoader) Load(paths Paths) (*Database, error) {
	items, err := loadRows(paths.Items, 5, itemFromRow)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}

	inputs, err := loadRows(paths.Inputs, 5, inputFromRow)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe inputs: %w", err)
	}

	raws, err := loadRows(paths.Raw, 6, rawFromRow)
	if err != nil {
		return nil, fmt.Errorf("failed to load raw items: %w", err)
	}

	buildings, err := loadRows(paths.Buildings, 5, buildingFromRow)
	if err != nil {
		return nil, fmt.Errorf("failed to load buildings: %w", err)
	}

	return NewDatabase(items, inputs, raws, buildings)
}

// loadRows parses one CSV table, skipping the header row.
func loadRows[T any](path string, fields int, conv func([]string) (T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = csvDelimiter
	reader.FieldsPerRecord = fields
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrInvalidConfig, path)
	}

	out := make([]T, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := conv(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// name normalizes an item or machine name for exact lowercase lookup.
func name(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func itemFromRow(row []string) (Item, error) {
	num, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return Item{}, fmt.Errorf("bad num_produced: %w", err)
	}
	period, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return Item{}, fmt.Errorf("bad period_seconds: %w", err)
	}
	ipm, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
	if err != nil {
		return Item{}, fmt.Errorf("bad items_per_minute: %w", err)
	}
	return Item{
		Name:          name(row[0]),
		NumProduced:   num,
		PeriodSeconds: period,
		Machine:       name(row[3]),
		ItemsPerMin:   ipm,
	}, nil
}

func inputFromRow(row []string) (RecipeInput, error) {
	num, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return RecipeInput{}, fmt.Errorf("bad num_required: %w", err)
	}
	period, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil {
		return RecipeInput{}, fmt.Errorf("bad period_seconds: %w", err)
	}
	rpm, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
	if err != nil {
		return RecipeInput{}, fmt.Errorf("bad required_per_minute: %w", err)
	}
	return RecipeInput{
		Item:           name(row[0]),
		Input:          name(row[1]),
		NumRequired:    num,
		PeriodSeconds:  period,
		RequiredPerMin: rpm,
	}, nil
}

func rawFromRow(row []string) (RawItem, error) {
	num, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return RawItem{}, fmt.Errorf("bad num_produced: %w", err)
	}
	period, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil {
		return RawItem{}, fmt.Errorf("bad period_seconds: %w", err)
	}
	ipm, err := strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
	if err != nil {
		return RawItem{}, fmt.Errorf("bad items_per_minute: %w", err)
	}
	return RawItem{
		Name:          name(row[0]),
		Variant:       name(row[1]),
		NumProduced:   num,
		PeriodSeconds: period,
		Machine:       name(row[4]),
		ItemsPerMin:   ipm,
	}, nil
}

// buildingFromRow expects the cost columns bbm;ibm;qbm with exactly one set.
func buildingFromRow(row []string) (Building, error) {
	heat, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return Building{}, fmt.Errorf("bad heat: %w", err)
	}

	material := ""
	cost := 0
	categories := []struct {
		material string
		value    string
	}{
		{MaterialBasic, row[2]},
		{MaterialIntermediate, row[3]},
		{MaterialQuartz, row[4]},
	}
	for _, c := range categories {
		v := strings.TrimSpace(c.value)
		if v == "" {
			continue
		}
		if material != "" {
			return Building{}, fmt.Errorf("%w: building '%s' has multiple cost categories", domain.ErrInvalidConfig, row[0])
		}
		cost, err = strconv.Atoi(v)
		if err != nil {
			return Building{}, fmt.Errorf("bad %s cost: %w", c.material, err)
		}
		material = c.material
	}
	if material == "" {
		return Building{}, fmt.Errorf("%w: no building cost defined for machine '%s'", domain.ErrInvalidConfig, row[0])
	}

	return Building{
		Name:         name(row[0]),
		Heat:         heat,
		MaterialType: material,
		Cost:         cost,
	}, nil
}
