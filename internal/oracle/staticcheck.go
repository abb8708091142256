package oracle

import "strings"

// staticcheckDiagnostic mirrors one JSON-lines record emitted by
// `staticcheck -f=json`.
type staticcheckDiagnostic struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Location struct {
		File   string `json:"file"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
	} `json:"location"`
	Message string `json:"message"`
}

// decodeStaticcheckJSON parses `staticcheck -f=json` output: one JSON
// object per line, each carrying its own file/line/column location.
// Classification is by check code: U1000 ("is unused") covers both
// unused imports and unused declarations, disambiguated by message
// text; everything else collapses to DeadCode since the wrapper-tool
// format only feeds the lint-driven passes (unused-import deletion,
// dead-item deletion), not the direct-compiler diagnostic path.
func decodeStaticcheckJSON(payload []byte) ([]LintRecord, error) {
	var records []LintRecord
	for _, line := range strings.Split(string(payload), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var d staticcheckDiagnostic
		if err := json.Unmarshal([]byte(line), &d); err != nil {
			continue
		}
		if d.Location.File == "" {
			continue
		}
		records = append(records, LintRecord{
			File:   d.Location.File,
			Line:   d.Location.Line,
			Column: d.Location.Column,
			Kind:   classifyStaticcheck(d.Code, d.Message),
		})
	}
	return records, nil
}

func classifyStaticcheck(code, message string) LintKind {
	lower := strings.ToLower(message)
	if code == "U1000" && strings.Contains(lower, "import") {
		return UnusedImport
	}
	return DeadCode
}
