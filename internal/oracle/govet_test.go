package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGovetJSONClassifiesUnusedImport(t *testing.T) {
	payload := []byte(`{
		"example.com/pkg": {
			"unusedresult": [
				{"posn": "main.go:4:2", "message": "\"fmt\" imported and not used"}
			]
		}
	}`)

	records, err := decodeGovetJSON(payload)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "main.go", records[0].File)
	assert.Equal(t, 4, records[0].Line)
	assert.Equal(t, 2, records[0].Column)
	assert.Equal(t, UnusedImport, records[0].Kind)
}

func TestDecodeGovetJSONClassifiesDeadCode(t *testing.T) {
	payload := []byte(`{
		"example.com/pkg": {
			"unreachable": [
				{"posn": "main.go:10:1", "message": "unreachable code"}
			]
		}
	}`)

	records, err := decodeGovetJSON(payload)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, DeadCode, records[0].Kind)
}

func TestSplitPosnHandlesWindowsDrivePaths(t *testing.T) {
	file, line, col, ok := splitPosn("C:/src/main.go:7:3")
	require.True(t, ok)
	assert.Equal(t, "C:/src/main.go", file)
	assert.Equal(t, 7, line)
	assert.Equal(t, 3, col)
}

func TestSplitPosnRejectsMalformed(t *testing.T) {
	_, _, _, ok := splitPosn("not-a-position")
	assert.False(t, ok)
}
