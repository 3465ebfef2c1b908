package configbinder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/wpgen/pkg/generator/support/util/configbinder"
)

type options struct {
	PostType  string `yaml:"post_type"`
	Number    int    `yaml:"number"`
	ChunkSize int    `yaml:"chunk_size"`
	SQL       bool   `yaml:"sql"`
}

func TestBindStrings_CoercesTypes(t *testing.T) {
	var o options
	err := configbinder.BindStrings(map[string]string{
		"post_type":  "comment",
		"number":     "250",
		"chunk_size": "100",
		"sql":        "yes",
	}, &o)

	require.NoError(t, err)
	assert.Equal(t, options{PostType: "comment", Number: 250, ChunkSize: 100, SQL: true}, o)
}

func TestBindStrings_CheckboxValues(t *testing.T) {
	for in, want := range map[string]bool{"yes": true, "on": true, "1": true, "no": false, "off": false, "0": false, "": false} {
		var o options
		require.NoError(t, configbinder.BindStrings(map[string]string{"sql": in}, &o), in)
		assert.Equal(t, want, o.SQL, in)
	}
}

func TestBindStrings_InvalidNumber(t *testing.T) {
	var o options
	err := configbinder.BindStrings(map[string]string{"number": "many"}, &o)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "options")
}

func TestBindProperties_EmptyIsNoop(t *testing.T) {
	o := options{Number: 7}
	require.NoError(t, configbinder.BindProperties(nil, &o))
	assert.Equal(t, 7, o.Number)
}
