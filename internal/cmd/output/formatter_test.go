package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/depsync"
	"github.com/agentstation/depsync/pkg/events"
)

func sampleResult() *depsync.Result {
	return &depsync.Result{
		Events: []events.Event{
			{Kind: events.AddedToCatalog, New: "g:a:1.0"},
			{Kind: events.UpdatedBuildFileVersion, Old: "g:b:1.0", New: "g:b:2.0"},
		},
		BuildFile:        "build.gradle.kts",
		CatalogFile:      "gradle/libs.versions.toml",
		BuildFileChanged: true,
		CatalogChanged:   true,
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", "", false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"Markdown", FormatMarkdown, false},
		{"wide", "", true},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestResultData(t *testing.T) {
	data := ResultData("Sync", sampleResult())

	assert.Equal(t, "Sync", data.Title)
	assert.Equal(t, []string{"Change", "From", "To"}, data.Headers)
	assert.Equal(t, [][]string{
		{"catalog +", "-", "g:a:1.0"},
		{"build file ~", "g:b:1.0", "g:b:2.0"},
	}, data.Rows)
	assert.Equal(t, "1 added to catalog, 1 build file versions updated", data.Footer)
}

func TestWriteResult(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteResult(&buf, FormatJSON, "Sync", sampleResult()))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "build.gradle.kts", decoded["build_file"])
		assert.Len(t, decoded["events"], 2)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteResult(&buf, FormatYAML, "Sync", sampleResult()))

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, true, decoded["catalog_changed"])
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteResult(&buf, FormatTable, "Sync", sampleResult()))

		out := buf.String()
		assert.Contains(t, out, "g:b:2.0")
		assert.Contains(t, out, "build file versions updated")
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteResult(&buf, FormatMarkdown, "Sync", sampleResult()))

		out := buf.String()
		assert.Contains(t, out, "## Sync")
		assert.Contains(t, out, "catalog +")
		assert.Contains(t, out, "g:a:1.0")
	})
}

func TestTableFormatterStruct(t *testing.T) {
	info := struct {
		Version string `json:"version"`
		BuiltBy string `json:"built_by"`
	}{"1.2.3", "ci"}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, info))

	out := buf.String()
	assert.Contains(t, out, "Built By")
	assert.Contains(t, out, "1.2.3")
}
