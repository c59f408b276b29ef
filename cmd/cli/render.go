package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"konverge/internal/bundle"
	"konverge/internal/resource"
	"konverge/internal/template"
)

var (
	renderFile   string
	renderBundle string
	renderParams []string
	renderStrict bool
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a bundle or expand a template file to stdout",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRender(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func runRender() error {
	if (renderFile == "") == (renderBundle == "") {
		return fmt.Errorf("exactly one of --file and --bundle must be given")
	}

	var entity any
	if renderBundle != "" {
		b, err := bundle.Load(renderBundle)
		if err != nil {
			return err
		}
		entity = b.Resources
	} else {
		data, err := os.ReadFile(renderFile)
		if err != nil {
			return err
		}
		entity, err = resource.ParseYAML(data)
		if err != nil {
			return err
		}
		if t, ok := entity.(*resource.Template); ok {
			if err := overrideParameters(t, renderParams); err != nil {
				return err
			}
			entity, err = template.Process(t, template.Options{FailOnMissing: renderStrict})
			if err != nil {
				return err
			}
		}
	}

	out, err := resource.MarshalJSONIndent(entity)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// overrideParameters sets parameter values from key=value pairs. Overriding a
// parameter the template does not declare is an error.
func overrideParameters(t *resource.Template, pairs []string) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid parameter %q, expected name=value", pair)
		}
		found := false
		for i := range t.Parameters {
			if t.Parameters[i].Name == key {
				t.Parameters[i].Value = value
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("template %q declares no parameter %q", t.GetName(), key)
		}
	}
	return nil
}

func init() {
	renderCmd.Flags().StringVarP(&renderFile, "file", "f", "", "Manifest or template file to render")
	renderCmd.Flags().StringVarP(&renderBundle, "bundle", "b", "", "Bundle directory to render")
	renderCmd.Flags().StringArrayVarP(&renderParams, "param", "p", nil, "Template parameter override (name=value, repeatable)")
	renderCmd.Flags().BoolVar(&renderStrict, "strict-parameters", false, "Fail expansion on missing parameter values")

	rootCmd.AddCommand(renderCmd)
}
