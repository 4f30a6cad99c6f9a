package wiki

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/simwiki/internal/config"
	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
	"git.home.luguber.info/inful/simwiki/internal/linkverify"
	"git.home.luguber.info/inful/simwiki/internal/metrics"
	"git.home.luguber.info/inful/simwiki/internal/snapshot/snapshottest"
	"git.home.luguber.info/inful/simwiki/internal/templates"
	"git.home.luguber.info/inful/simwiki/internal/workspace"
)

type countingRecorder struct {
	metrics.NoopRecorder
	results  map[string]int
	outcomes map[metrics.OutcomeLabel]int
	entities int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{results: map[string]int{}, outcomes: map[metrics.OutcomeLabel]int{}}
}

func (c *countingRecorder) IncPageResult(kind string, result metrics.ResultLabel) {
	c.results[kind+"/"+string(result)]++
}
func (c *countingRecorder) IncRunOutcome(o metrics.OutcomeLabel) { c.outcomes[o]++ }
func (c *countingRecorder) SetEntities(n int)                    { c.entities = n }

func newTestGenerator(t *testing.T, root string, opts ...Option) *Generator {
	t.Helper()
	r, err := templates.NewRenderer(templates.Options{SiteTitle: "Test Wiki", Markdown: true})
	require.NoError(t, err)
	return NewGenerator(r, workspace.NewManager(root), opts...)
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, p)
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestGenerator_Run_World(t *testing.T) {
	root := filepath.Join(t.TempDir(), "output")
	rec := newCountingRecorder()
	g := newTestGenerator(t, root, WithRecorder(rec))

	report, err := g.Run(context.Background(), snapshottest.World(t))
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 18, report.Entities)
	assert.Equal(t, 8, report.Pages)
	assert.Equal(t, 10, report.Skipped)
	assert.Zero(t, report.Failed)

	files := readTree(t, root)
	want := []int{
		snapshottest.AshtonID, snapshottest.OldTownID, snapshottest.IvyRowID,
		snapshottest.KettleID, snapshottest.OldMillID,
		snapshottest.AdaID, snapshottest.BenID, snapshottest.CoraID,
	}
	assert.Len(t, files, len(want)+1)
	assert.Contains(t, files, "index.html")
	for _, id := range want {
		assert.Contains(t, files, "gameobjects/"+strconv.Itoa(id)+".html")
	}
	for _, id := range []int{snapshottest.CozyTraitID, snapshottest.CookingSkillID, snapshottest.IvyRowUnitA, snapshottest.ClockID} {
		assert.NotContains(t, files, "gameobjects/"+strconv.Itoa(id)+".html")
	}

	assert.Equal(t, 18, rec.entities)
	assert.Equal(t, 1, rec.outcomes[metrics.OutcomeSuccess])
	assert.Equal(t, 3, rec.results["character/success"])
	assert.Equal(t, 3, rec.results["trait/skipped"])
	assert.Equal(t, 2, rec.results["skill/skipped"])
	assert.Equal(t, 5, rec.results["none/skipped"])
}

func TestGenerator_Run_AshtonScenario(t *testing.T) {
	root := t.TempDir()
	g := newTestGenerator(t, root)

	_, err := g.Run(context.Background(), snapshottest.World(t))
	require.NoError(t, err)
	files := readTree(t, root)

	settlement := files["gameobjects/1.html"]
	assert.Contains(t, settlement, "<h1>Ashton</h1>")
	assert.Contains(t, settlement, "<dd>500</dd>")
	assert.Contains(t, settlement, `<a href="../gameobjects/2.html">Old Town</a>`)

	district := files["gameobjects/2.html"]
	assert.Contains(t, district, `<a href="../gameobjects/1.html">Ashton</a>`)
	assert.Contains(t, district, "<strong>oldest</strong>")
	ben := strings.Index(district, "Ben Hale")
	ada := strings.Index(district, "Ada Hale")
	cora := strings.Index(district, "Cora Finch")
	assert.True(t, ben >= 0 && ben < ada && ada < cora, "residents out of order")

	mill := files["gameobjects/21.html"]
	assert.Contains(t, mill, "<dd>Inactive</dd>")
	assert.Contains(t, mill, `<a href="#">TBD</a>`)

	cora2 := files["gameobjects/32.html"]
	assert.Contains(t, cora2, `<a href="#">N/A</a>`)

	index := files["index.html"]
	assert.Contains(t, index, `<a href="/gameobjects/1.html">Ashton</a>`)
	assert.Contains(t, index, "Old Mill (inactive)")
	assert.Contains(t, index, "Cora Finch (inactive)")
}

func TestGenerator_Run_Idempotent(t *testing.T) {
	root := t.TempDir()
	g := newTestGenerator(t, root)
	snap := snapshottest.World(t)

	_, err := g.Run(context.Background(), snap)
	require.NoError(t, err)
	first := readTree(t, root)

	_, err = g.Run(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, first, readTree(t, root))
}

func TestGenerator_Run_LinksResolve(t *testing.T) {
	root := t.TempDir()
	g := newTestGenerator(t, root)

	_, err := g.Run(context.Background(), snapshottest.World(t))
	require.NoError(t, err)

	report, err := linkverify.VerifyTree(context.Background(), root)
	require.NoError(t, err)
	assert.True(t, report.OK(), "broken links: %+v", report.Broken)
	assert.Equal(t, 9, report.Pages)
}

func TestGenerator_Run_WithLinkVerification(t *testing.T) {
	root := t.TempDir()
	g := newTestGenerator(t, root, WithLinkVerification(true))

	report, err := g.Run(context.Background(), snapshottest.World(t))
	require.NoError(t, err)
	assert.Empty(t, report.BrokenLinks)
}

func brokenWorld(t *testing.T) *snapshottest.Builder {
	t.Helper()
	return snapshottest.NewBuilder(t).
		Add(1, "Ashton", map[string]any{"Settlement": map[string]any{"districts": []int{2}}}).
		Add(2, "Old Town", map[string]any{
			"District": map[string]any{"settlement": 99, "residences": []int{}, "businesses": []int{3}},
		}).
		Add(3, "Mill", map[string]any{"Business": map[string]any{"district": 2}})
}

func TestGenerator_Run_AbortOnMissingReference(t *testing.T) {
	root := t.TempDir()
	rec := newCountingRecorder()
	g := newTestGenerator(t, root, WithRecorder(rec))

	report, err := g.Run(context.Background(), brokenWorld(t).Build())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
	assert.Equal(t, 1, report.Failed)

	files := readTree(t, root)
	assert.Contains(t, files, "gameobjects/1.html")
	assert.NotContains(t, files, "gameobjects/3.html", "abort stops at the first failure")
	assert.NotContains(t, files, "index.html")
	assert.Equal(t, 1, rec.outcomes[metrics.OutcomeFailed])
}

func TestGenerator_Run_SkipPolicyContinues(t *testing.T) {
	root := t.TempDir()
	g := newTestGenerator(t, root, WithPolicy(config.OnErrorSkip))

	report, err := g.Run(context.Background(), brokenWorld(t).Build())
	require.Error(t, err, "skipped failures still fail the run")
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 2, report.Pages)

	files := readTree(t, root)
	assert.Contains(t, files, "gameobjects/1.html")
	assert.Contains(t, files, "gameobjects/3.html")
	assert.Contains(t, files, "index.html")
	assert.NotContains(t, files, "gameobjects/2.html")
}

func TestGenerator_Run_Canceled(t *testing.T) {
	root := t.TempDir()
	rec := newCountingRecorder()
	g := newTestGenerator(t, root, WithRecorder(rec))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Run(ctx, snapshottest.World(t))
	require.Error(t, err)
	assert.NotContains(t, readTree(t, root), "index.html")
	assert.Equal(t, 1, rec.outcomes[metrics.OutcomeCanceled])
}

func TestGenerator_GenerateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.json")
	require.NoError(t, os.WriteFile(path, snapshottest.WorldBuilder(t).JSON(), 0o600))

	root := filepath.Join(dir, "output")
	report, err := newTestGenerator(t, root).GenerateFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 8, report.Pages)
	assert.Greater(t, report.Duration, time.Duration(0))
}

func TestGenerator_GenerateFile_MissingSnapshotWritesNothing(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "output")

	_, err := newTestGenerator(t, root).GenerateFile(context.Background(), filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategorySnapshot))

	_, statErr := os.Stat(root)
	assert.True(t, os.IsNotExist(statErr), "output directory must not be created")
}

func TestGenerator_GenerateFile_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"gameobjects": `), 0o600))
	root := filepath.Join(dir, "output")

	_, err := newTestGenerator(t, root).GenerateFile(context.Background(), path)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategorySnapshot))

	_, statErr := os.Stat(root)
	assert.True(t, os.IsNotExist(statErr))
}
