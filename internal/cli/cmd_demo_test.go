package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"reprise"
	"reprise/demo"
	"reprise/internal/capstore"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Execute(&stdout, &stderr, args)
	return stdout.String(), stderr.String(), err
}

func TestDemoSweep_FindsCanonicalFailure(t *testing.T) {
	c := demoSweep()

	require.NotNil(t, c)
	require.EqualError(t, c.Err, "Whoopsie")
	require.Equal(t, demo.Args{3, 0}, c.Args)

	snapshot, ok := c.Snapshot.(*demo.ImportantAction)
	require.True(t, ok)
	require.Equal(t, &demo.ImportantAction{Var1: 0, Var2: 0}, snapshot)
}

func TestDemoCommand_AppendsGeneratedTest(t *testing.T) {
	out := filepath.Join(t.TempDir(), "regression_test.go")

	stdout, _, err := runCLI(t, "demo", "--out", out)
	require.NoError(t, err)
	require.Contains(t, stdout, "oh no we failed!")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, "func TestRegression_")
	require.Contains(t, content, "\"var_1\": 0")
	require.Contains(t, content, "// failure was \"Whoopsie\"")
	require.Contains(t, content, "var obj demo.ImportantAction")
}

func TestDemoCommand_AppendsAcrossRuns(t *testing.T) {
	out := filepath.Join(t.TempDir(), "regression_test.go")

	_, _, err := runCLI(t, "demo", "--out", out)
	require.NoError(t, err)
	first, err := os.ReadFile(out)
	require.NoError(t, err)

	_, _, err = runCLI(t, "demo", "--out", out)
	require.NoError(t, err)
	second, err := os.ReadFile(out)
	require.NoError(t, err)

	require.True(t, len(second) > len(first), "second run must append, not truncate")
	require.Equal(t, string(first), string(second[:len(first)]))
}

func TestDemoCommand_SaveStoresRecord(t *testing.T) {
	out := filepath.Join(t.TempDir(), "regression_test.go")
	storeDir := t.TempDir()

	stdout, _, err := runCLI(t, "demo", "--out", out, "--save", "--dir", storeDir)
	require.NoError(t, err)
	require.Contains(t, stdout, "capture saved to")

	summaries, err := capstore.NewStore(storeDir).List()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, "demo.ImportantAction", summaries[0].FullPath)
	require.Equal(t, "Whoopsie", summaries[0].Error)
}

func TestDemoCommand_YAMLCodec(t *testing.T) {
	out := filepath.Join(t.TempDir(), "regression_test.go")

	_, _, err := runCLI(t, "demo", "--out", out, "--codec", "yaml")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "reprise.MustDecode(t, reprise.YAML, objText, &obj)")
}

func TestDemoCommand_UnknownCodecRefused(t *testing.T) {
	_, _, err := runCLI(t, "demo", "--codec", "xml")
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown codec "xml"`)
}

func TestCodecByFlag(t *testing.T) {
	enc, err := codecByFlag("json")
	require.NoError(t, err)
	require.Equal(t, reprise.JSON, enc)

	enc, err = codecByFlag("yaml")
	require.NoError(t, err)
	require.Equal(t, reprise.YAML, enc)

	_, err = codecByFlag("toml")
	require.Error(t, err)
}
