package oracle

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// govetDiagnostic mirrors one entry of `go vet -json`'s nested
// package -> analyzer -> []diagnostic structure.
type govetDiagnostic struct {
	Posn    string `json:"posn"`
	Message string `json:"message"`
}

// decodeGovetJSON parses `go vet -json` output: a map keyed by package
// import path, then by analyzer name, to a list of diagnostics whose
// Posn field is "file.go:line:column". An analyzer name or message
// mentioning "import" and "not used" routes to UnusedImport; everything
// else routes to DeadCode, matching how the direct-compiler path
// surfaces both "imported and not used" and "declared and not used"
// through the same JSON channel.
func decodeGovetJSON(payload []byte) ([]LintRecord, error) {
	var raw map[string]map[string][]govetDiagnostic
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, err
	}

	var records []LintRecord
	for _, analyzers := range raw {
		for analyzer, diags := range analyzers {
			for _, d := range diags {
				file, line, col, ok := splitPosn(d.Posn)
				if !ok {
					continue
				}
				records = append(records, LintRecord{
					File:   file,
					Line:   line,
					Column: col,
					Kind:   classifyGovet(analyzer, d.Message),
				})
			}
		}
	}
	return records, nil
}

func classifyGovet(analyzer, message string) LintKind {
	lower := strings.ToLower(analyzer + " " + message)
	if strings.Contains(lower, "import") && strings.Contains(lower, "not used") {
		return UnusedImport
	}
	if strings.Contains(lower, "imported and not used") {
		return UnusedImport
	}
	return DeadCode
}

// splitPosn parses a go/token-style "file:line:column" position string.
func splitPosn(posn string) (file string, line, col int, ok bool) {
	parts := strings.Split(posn, ":")
	if len(parts) < 3 {
		return "", 0, 0, false
	}
	col = atoiSafe(parts[len(parts)-1])
	line = atoiSafe(parts[len(parts)-2])
	file = strings.Join(parts[:len(parts)-2], ":")
	if file == "" || line == 0 {
		return "", 0, 0, false
	}
	return file, line, col, true
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}
