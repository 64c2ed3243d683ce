package requestspec

import (
	"fmt"
	"os"
)

const specInputsTemplate = `,

    "inputs": [
        {
            "for_item": [""],
            "provided_item": "",
            "provided_ipm": 0
        }
    ]`

// WriteTemplate writes a request spec template file for the given item and
// rate. When includeInputs is set the template carries an empty inputs
// section ready to be filled in.
func WriteTemplate(path, item string, ipm float64, includeInputs bool) error {
	inputs := ""
	if includeInputs {
		inputs = specInputsTemplate
	}

	content := fmt.Sprintf(`{
    "request": {
        "item": "%s",
        "items_per_minute": %v
    }%s
}
`, item, ipm, inputs)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write spec template: %w", err)
	}
	return nil
}
