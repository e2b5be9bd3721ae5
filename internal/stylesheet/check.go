package stylesheet

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// maxCheckIssues bounds the number of issues collected from one stylesheet.
const maxCheckIssues = 50

// CheckReport summarizes a stylesheet as seen by a full CSS grammar parser.
type CheckReport struct {
	Rules        int      `json:"rules"`
	Keyframes    []string `json:"keyframes"`
	Declarations int      `json:"declarations"`
	Issues       []string `json:"issues"`
}

// OK reports whether the parser found no syntax problems.
func (r CheckReport) OK() bool {
	return len(r.Issues) == 0
}

// Check runs text through the tdewolff CSS parser and reports what it found.
// Serialize never validates its output; Check is how callers find out whether
// the concatenated fragments still form a readable stylesheet.
func Check(text string) CheckReport {
	report := CheckReport{
		Keyframes: make([]string, 0),
		Issues:    make([]string, 0),
	}

	p := css.NewParser(parse.NewInput(strings.NewReader(text)), false)
	depth := 0
	for {
		gt, _, data := p.Next()

		switch gt {
		case css.ErrorGrammar:
			err := p.Err()
			if err == nil || stderrors.Is(err, io.EOF) {
				if depth > 0 {
					report.Issues = append(report.Issues, fmt.Sprintf("%d unclosed block(s) at end of input", depth))
				}
				return report
			}
			report.Issues = append(report.Issues, err.Error())
			if len(report.Issues) >= maxCheckIssues {
				return report
			}

		case css.BeginAtRuleGrammar:
			if strings.EqualFold(string(data), "@keyframes") {
				report.Keyframes = append(report.Keyframes, atRuleName(p.Values()))
			}
			depth++

		case css.BeginRulesetGrammar:
			if depth == 0 {
				report.Rules++
			}
			depth++

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			if depth > 0 {
				depth--
			}

		case css.DeclarationGrammar:
			report.Declarations++
		}
	}
}

// atRuleName returns the first identifier in an at-rule prelude.
func atRuleName(values []css.Token) string {
	for _, v := range values {
		if v.TokenType == css.IdentToken || v.TokenType == css.StringToken {
			return strings.Trim(string(v.Data), `"'`)
		}
	}
	return ""
}
