package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
	"git.home.luguber.info/inful/simwiki/internal/snapshot/snapshottest"
)

// runCLI parses args like main does and runs the selected command inside a fresh working directory.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	prev := stdout
	stdout = &out
	t.Cleanup(func() { stdout = prev })

	var cli CLI
	globals := &Global{}
	parser, err := kong.New(&cli,
		kong.Name("simwiki"),
		kong.Bind(globals),
		kong.Vars{"version": "test"},
		kong.Exit(func(code int) { t.Fatalf("unexpected exit %d", code) }),
	)
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	err = ctx.Run(&cli)
	return out.String(), err
}

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prevDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prevDir) })
	return dir
}

func writeWorld(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "world.json")
	require.NoError(t, os.WriteFile(path, snapshottest.WorldBuilder(t).JSON(), 0o600))
	return path
}

func TestGenerate_DefaultCommand(t *testing.T) {
	dir := inTempDir(t)
	writeWorld(t, dir)

	out, err := runCLI(t, "world.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 8 pages (10 entities skipped)")

	assert.FileExists(t, filepath.Join(dir, "output", "index.html"))
	assert.FileExists(t, filepath.Join(dir, "output", "gameobjects", "1.html"))
	assert.NoFileExists(t, filepath.Join(dir, "output", "gameobjects", "40.html"))
}

func TestGenerate_ExplicitCommand(t *testing.T) {
	dir := inTempDir(t)
	writeWorld(t, dir)

	_, err := runCLI(t, "generate", "world.json")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "output", "gameobjects", "30.html"))
}

func TestGenerate_MissingSnapshot(t *testing.T) {
	dir := inTempDir(t)

	_, err := runCLI(t, "missing.json")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategorySnapshot))
	assert.NoDirExists(t, filepath.Join(dir, "output"))
}

func TestGenerate_ExplicitConfigMustExist(t *testing.T) {
	dir := inTempDir(t)
	writeWorld(t, dir)

	_, err := runCLI(t, "-c", "custom.yaml", "world.json")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestGenerate_MetricsTextfile(t *testing.T) {
	dir := inTempDir(t)
	writeWorld(t, dir)
	cfg := "site:\n  title: Ashton Wiki\nmetrics:\n  textfile: simwiki.prom\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "simwiki.yaml"), []byte(cfg), 0o600))

	_, err := runCLI(t, "world.json")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "simwiki.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "simwiki_snapshot_entities 18")

	index, err := os.ReadFile(filepath.Join(dir, "output", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "<h1>Ashton Wiki</h1>")
}

func TestVerify(t *testing.T) {
	dir := inTempDir(t)
	writeWorld(t, dir)

	_, err := runCLI(t, "world.json")
	require.NoError(t, err)

	out, err := runCLI(t, "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "links in 9 pages resolve")

	require.NoError(t, os.Remove(filepath.Join(dir, "output", "gameobjects", "2.html")))
	out, err = runCLI(t, "verify")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	assert.Contains(t, out, "gameobjects/2.html")
}

func TestVerify_NoOutput(t *testing.T) {
	inTempDir(t)

	_, err := runCLI(t, "verify")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestInit(t *testing.T) {
	dir := inTempDir(t)

	out, err := runCLI(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")
	assert.FileExists(t, filepath.Join(dir, "simwiki.yaml"))

	_, err = runCLI(t, "init")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	_, err = runCLI(t, "init", "--force")
	require.NoError(t, err)
}

func TestInit_CustomPath(t *testing.T) {
	dir := inTempDir(t)

	_, err := runCLI(t, "-c", "wiki.yaml", "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "wiki.yaml"))

	writeWorld(t, dir)
	_, err = runCLI(t, "-c", "wiki.yaml", "world.json")
	require.NoError(t, err)
}
