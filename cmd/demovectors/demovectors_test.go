package demovectors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yammerjp/demovectors/internal/handler"
	"github.com/yammerjp/demovectors/internal/storage"
	"github.com/yammerjp/demovectors/internal/testhelper"
	"github.com/yammerjp/demovectors/internal/testvectors"
	"github.com/yammerjp/demovectors/internal/util"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "24h", want: 24 * time.Hour},
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: "90m", want: 90 * time.Minute},
		{in: "xd", wantErr: true},
		{in: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadNamedSet(t *testing.T) {
	ctx := context.Background()
	db := storage.NewMockDB()
	require.NoError(t, db.StoreSet(ctx, testhelper.DummySet(t)))

	set, err := loadNamedSet(ctx, db, "")
	require.NoError(t, err)
	assert.Same(t, testvectors.Demo(), set)

	set, err = loadNamedSet(ctx, db, "dummy")
	require.NoError(t, err)
	assert.Equal(t, 4, set.Len())

	_, err = loadNamedSet(ctx, db, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreSet(t *testing.T) {
	ctx := context.Background()
	db := storage.NewMockDB()

	require.NoError(t, storeSet(ctx, db, testvectors.Demo()))
	v, err := db.GetVector(ctx, testvectors.DemoSetName, 4)
	require.NoError(t, err)
	assert.InDelta(t, 0.24380071, v[2], 1e-7)
}

func TestRunGet(t *testing.T) {
	ctx := context.Background()

	t.Run("embedded float", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runGet(ctx, &out, GetCmd{Index: 0, Encoding: "float"}, ":memory:"))

		var got []float32
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		want, _ := testvectors.Get(0)
		assert.Equal(t, want, got)
	})

	t.Run("embedded base64", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runGet(ctx, &out, GetCmd{Index: 4, Encoding: "base64"}, ":memory:"))

		got, err := util.Base64ToFloat32Slice(util.EmbeddedVectorBase64(strings.TrimSpace(out.String())))
		require.NoError(t, err)
		want, _ := testvectors.Get(4)
		assert.Equal(t, util.EmbeddedVectorFloat32(want), got)
	})

	t.Run("out of range", func(t *testing.T) {
		err := runGet(ctx, &bytes.Buffer{}, GetCmd{Index: 5, Encoding: "float"}, ":memory:")
		assert.ErrorIs(t, err, testvectors.ErrOutOfRange)
	})

	t.Run("remote", func(t *testing.T) {
		server := httptest.NewServer(handler.NewHandler(testvectors.Demo()))
		defer server.Close()

		var out bytes.Buffer
		require.NoError(t, runGet(ctx, &out, GetCmd{Index: 2, Encoding: "float", Remote: server.URL}, ":memory:"))

		var got []float32
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		want, _ := testvectors.Get(2)
		assert.Equal(t, want, got)

		err := runGet(ctx, &out, GetCmd{Index: 100, Encoding: "float", Remote: server.URL}, ":memory:")
		assert.True(t, errors.Is(err, testvectors.ErrOutOfRange))
	})
}

func TestParseNegativeIndex(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("demovectors"))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"get", "-1"})
	assert.Error(t, err)

	kctx, err := parser.Parse([]string{"get", "--", "-1"})
	require.NoError(t, err)
	assert.Equal(t, "get <index>", kctx.Command())
	assert.Equal(t, -1, cli.Get.Index)

	err = runGet(context.Background(), &bytes.Buffer{}, cli.Get, ":memory:")
	assert.ErrorIs(t, err, testvectors.ErrOutOfRange)
}

func TestLoadFvecs(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fvecsPath := filepath.Join(dir, "fixture.fvecs")
	dsn := filepath.Join(dir, "vectors.db")

	require.NoError(t, runExport(ctx, &bytes.Buffer{}, ExportCmd{Format: "fvecs", Output: fvecsPath}, dsn))

	t.Run("default name", func(t *testing.T) {
		require.NoError(t, runLoad(ctx, LoadCmd{Fvecs: fvecsPath}, dsn))

		var out bytes.Buffer
		require.NoError(t, runGet(ctx, &out, GetCmd{Index: 4, Encoding: "float", Set: "fixture"}, dsn))
		var got []float32
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		want, _ := testvectors.Get(4)
		assert.Equal(t, want, got)
	})

	t.Run("explicit name", func(t *testing.T) {
		require.NoError(t, runLoad(ctx, LoadCmd{Fvecs: fvecsPath, Name: "copy"}, dsn))

		var out bytes.Buffer
		require.NoError(t, runList(ctx, &out, ListCmd{Stored: true}, dsn))
		assert.Contains(t, out.String(), "name=copy count=5 dimension=10")
		assert.Contains(t, out.String(), "name=fixture count=5 dimension=10")
	})

	t.Run("corrupt dimension", func(t *testing.T) {
		badPath := filepath.Join(dir, "bad.fvecs")
		require.NoError(t, os.WriteFile(badPath, []byte{0xff, 0xff, 0xff, 0x7f}, 0o644))
		err := runLoad(ctx, LoadCmd{Fvecs: badPath}, dsn)
		assert.ErrorContains(t, err, "invalid dimension")
	})
}

func TestExportLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	headerPath := filepath.Join(dir, "demo_test_vectors.h")
	dsn := filepath.Join(dir, "vectors.db")

	require.NoError(t, runExport(ctx, &bytes.Buffer{}, ExportCmd{Format: "header", Output: headerPath}, dsn))
	_, err := os.Stat(headerPath)
	require.NoError(t, err)

	require.NoError(t, runLoad(ctx, LoadCmd{Header: headerPath}, dsn))

	var out bytes.Buffer
	require.NoError(t, runGet(ctx, &out, GetCmd{Index: 3, Encoding: "float", Set: "demo"}, dsn))
	var got []float32
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	want, _ := testvectors.Get(3)
	assert.Equal(t, want, got)

	out.Reset()
	require.NoError(t, runList(ctx, &out, ListCmd{Stored: true}, dsn))
	assert.Equal(t, "name=demo count=5 dimension=10\n", out.String())

	out.Reset()
	require.NoError(t, runExport(ctx, &out, ExportCmd{Format: "json", Set: "demo"}, dsn))
	assert.Contains(t, out.String(), `"count": 5`)

	err = runGet(ctx, &out, GetCmd{Index: 0, Encoding: "float", Set: "missing"}, dsn)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRunList(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runList(context.Background(), &out, ListCmd{}, ":memory:"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1+testvectors.NTestVectors)
	assert.Equal(t, "name=demo count=5 dimension=10", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0\t[-0.167118"), lines[1])
}

func TestRunExportUnknownFormat(t *testing.T) {
	err := runExport(context.Background(), &bytes.Buffer{}, ExportCmd{Format: "csv"}, ":memory:")
	assert.Error(t, err)
}

func TestRunMigrationAndGC(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "vectors.db")

	require.NoError(t, runMigration(dsn))
	require.NoError(t, runLoad(ctx, LoadCmd{}, dsn))

	require.NoError(t, runGarbageCollection(GCCmd{Before: "7d", Batch: 100}, dsn))
	var out bytes.Buffer
	require.NoError(t, runList(ctx, &out, ListCmd{Stored: true}, dsn))
	assert.Equal(t, "name=demo count=5 dimension=10\n", out.String())

	require.NoError(t, runGarbageCollection(GCCmd{Before: "-1h", Batch: 2}, dsn))
	out.Reset()
	require.NoError(t, runList(ctx, &out, ListCmd{Stored: true}, dsn))
	assert.Empty(t, out.String())

	assert.Error(t, runGarbageCollection(GCCmd{Before: "later", Batch: 1}, dsn))
}

func TestRunVersion(t *testing.T) {
	buildInfo = BuildInfo{Version: "1.2.3", Commit: "abc", Date: "2026-10-18", BuiltBy: "test"}
	t.Cleanup(func() { buildInfo = BuildInfo{} })

	var out bytes.Buffer
	runVersion(&out)
	assert.Contains(t, out.String(), "demovectors version 1.2.3")
	assert.Contains(t, out.String(), "commit: abc")
}
