package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/sourcegraph/conc/pool"

	"github.com/cfglint/cfglint/pkg/config"
	"github.com/cfglint/cfglint/pkg/console"
	"github.com/cfglint/cfglint/pkg/schema"
)

// maxConcurrentLints bounds the pool when linting several files.
const maxConcurrentLints = 4

// ErrAlreadyInitialised is returned by InitConfig when a config file
// exists; init never overwrites.
var ErrAlreadyInitialised = errors.New("the config is already initialised")

// InitConfig writes the default config unless one already exists.
func InitConfig() error {
	definition := ConfigDefinition()

	exists, err := definition.Exists()
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyInitialised
	}

	if err := definition.Write(DefaultConfig()); err != nil {
		return err
	}

	fmt.Println(console.FormatSuccessMessage(fmt.Sprintf("created %s", definition.CanonicalPath())))
	return nil
}

// ResetConfig deletes any existing config and writes the defaults.
func ResetConfig() error {
	definition := ConfigDefinition()

	exists, err := definition.Exists()
	if err != nil {
		return err
	}
	if exists {
		if err := definition.Delete(); err != nil {
			return err
		}
	}

	if err := definition.Write(DefaultConfig()); err != nil {
		return err
	}

	fmt.Println(console.FormatSuccessMessage(fmt.Sprintf("reset %s to defaults", definition.CanonicalPath())))
	return nil
}

// ShowSchema prints the schema for a config version, or for the
// latest version when version is empty.
func ShowSchema(version string) error {
	registry := ConfigRegistry()
	if version == "" {
		versions := registry.Versions()
		version = versions[len(versions)-1]
	}

	schemaJSON, ok := registry.Lookup(version)
	if !ok {
		return fmt.Errorf("no schema registered for version %q", version)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, schemaJSON, "", "  "); err != nil {
		return fmt.Errorf("schema for version %q is not valid JSON: %w", version, err)
	}

	fmt.Println(pretty.String())
	return nil
}

// UpdateConfig migrates the config file to the latest version.
func UpdateConfig(verbose bool) error {
	definition := ConfigDefinition()

	updated, changed, err := config.Update[Config](definition)
	if err != nil {
		return err
	}

	if !changed {
		fmt.Println(console.FormatInfoMessage("config is already at the latest version"))
		return nil
	}

	fmt.Println(console.FormatSuccessMessage(fmt.Sprintf("migrated config to version %s", updated.Version)))
	if verbose {
		fmt.Println(console.FormatInfoMessage(fmt.Sprintf("wrote %s", definition.CanonicalPath())))
	}
	return nil
}

// lintResult is one file's outcome; Index preserves input order.
type lintResult struct {
	Index  int
	File   string
	Report string
	Count  int
	Err    error
}

// lintFile runs one load attempt and renders its report. An empty
// path lints the tool's own config at its usual candidates.
func lintFile(path string, mode console.Mode) lintResult {
	definition := ConfigDefinition()
	if path != "" {
		definition = config.Definition{Paths: []string{path}, Registry: definition.Registry}
	}

	result := lintResult{File: path}
	if path == "" {
		result.File = definition.CanonicalPath()
	}

	_, err := definition.Load()
	if err == nil {
		return result
	}
	result.Err = err

	var validationErrs *schema.ValidationErrors
	if errors.As(err, &validationErrs) {
		result.Report = validationErrs.Render(mode)
		result.Count = len(validationErrs.Problems)
	}
	return result
}

// LintConfig validates the given files, or the tool's own config when
// none are named, and prints a diagnostic report per failing file.
// Several files are validated through a bounded pool; reports come out
// in input order.
func LintConfig(files []string, verbose bool, mode console.Mode) error {
	if len(files) <= 1 {
		path := ""
		if len(files) == 1 {
			path = files[0]
		}
		return reportLint(lintFile(path, mode), verbose, mode)
	}

	spin := console.NewSpinner(fmt.Sprintf("Linting %d config files...", len(files)))
	spin.Start()

	p := pool.NewWithResults[lintResult]().WithMaxGoroutines(maxConcurrentLints)
	for i, file := range files {
		i, file := i, file
		p.Go(func() lintResult {
			spin.UpdateMessage(fmt.Sprintf("Linting %s...", file))
			result := lintFile(file, mode)
			result.Index = i
			return result
		})
	}
	results := p.Wait()
	spin.Stop()

	sort.Slice(results, func(a, b int) bool { return results[a].Index < results[b].Index })

	failed := 0
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
		_ = reportLint(result, verbose, mode)
		rows = append(rows, []string{result.File, strconv.Itoa(result.Count), lintStatus(result)})
	}

	fmt.Print(console.RenderTable(console.TableConfig{
		Headers: []string{"file", "problems", "status"},
		Rows:    rows,
	}, mode))

	if failed > 0 {
		return fmt.Errorf("%d of %d config files failed validation", failed, len(results))
	}
	return nil
}

func lintStatus(result lintResult) string {
	if result.Err == nil {
		return "ok"
	}
	return "failed"
}

// reportLint prints one file's outcome and passes its error through.
func reportLint(result lintResult, verbose bool, mode console.Mode) error {
	switch {
	case result.Err == nil:
		if verbose {
			fmt.Println(console.FormatSuccessMessage(fmt.Sprintf("%s is valid", result.File)))
		}
		return nil
	case result.Report != "":
		fmt.Print(result.Report)
		return result.Err
	default:
		fmt.Fprint(os.Stderr, console.FormatReport("config lint", result.Err, mode))
		return result.Err
	}
}
