package ops

import (
	"github.com/iconforge/iconforge/internal/stylesheet"
)

// CheckOutput contains the result of the CheckFile operation.
type CheckOutput struct {
	Input string `json:"input"`
	OK    bool   `json:"ok"`
	stylesheet.CheckReport
}

// CheckFile lints a stylesheet file. A .json document is serialized first and
// the stylesheet it would produce is checked instead.
func CheckFile(path string) (*CheckOutput, error) {
	kind, err := ValidateInput(path)
	if err != nil {
		return nil, err
	}
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	text := string(data)
	if kind == KindDocument {
		doc, err := DecodeDocument(path, data)
		if err != nil {
			return nil, err
		}
		text = stylesheet.Serialize(doc)
	}

	report := stylesheet.Check(text)
	return &CheckOutput{
		Input:       path,
		OK:          report.OK(),
		CheckReport: report,
	}, nil
}
