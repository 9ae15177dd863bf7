package schemas_test

import (
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobsearch-tracker/internal/schemas"
	docs "github.com/jonathan/jobsearch-tracker/schemas"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	files, err := fs.Glob(docs.Files, "*.schema.json")
	require.NoError(t, err)
	require.Len(t, files, len(schemas.Names))

	for _, schemaFile := range files {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := docs.Files.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON: %s", schemaFile)

			_, hasSchema := schemaObj["$schema"]
			_, hasTitle := schemaObj["title"]
			assert.True(t, hasSchema, "schema should declare $schema")
			assert.True(t, hasTitle, "schema should have a title")
		})
	}
}

func TestEveryNamedSchemaIsEmbedded(t *testing.T) {
	for _, name := range schemas.Names {
		_, err := docs.Files.ReadFile(name + ".schema.json")
		assert.NoError(t, err, name)
	}
}
