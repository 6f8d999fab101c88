package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".packmule", "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("tool.dir", "/work/tool"))

	val, ok := store.Get("tool.dir")
	assert.True(t, ok)
	assert.Equal(t, "/work/tool", val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("tool.runner", "uv"))
	require.NoError(t, store.Set("runs.limit", 42))
	require.NoError(t, store.Set("logging.verbose", true))

	assert.Equal(t, "uv", store.GetString("tool.runner"))
	assert.Equal(t, 42, store.GetInt("runs.limit"))
	assert.True(t, store.GetBool("logging.verbose"))

	// Missing keys fall back to zero values
	assert.Equal(t, "", store.GetString("absent"))
	assert.Equal(t, 0, store.GetInt("absent"))
	assert.False(t, store.GetBool("absent"))

	// Type mismatches also fall back
	assert.Equal(t, "", store.GetString("runs.limit"))
	assert.Equal(t, 0, store.GetInt("tool.runner"))
	assert.False(t, store.GetBool("tool.runner"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("tool.dir", "/work/tool"))
	require.NoError(t, store1.Set("runs.limit", 15))
	require.NoError(t, store1.Set("logging.verbose", true))

	// A fresh instance loads from the same file
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/work/tool", store2.GetString("tool.dir"))
	assert.Equal(t, 15, store2.GetInt("runs.limit"))
	assert.True(t, store2.GetBool("logging.verbose"))
}

func TestConfigStore_SavesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("tool.dir", "/work/tool"))
	require.NoError(t, store.Set("tool.runner", "uv"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	// Dotted keys land as a [tool] table, not quoted flat keys
	assert.Contains(t, string(data), "[tool]")
	assert.NotContains(t, string(data), `"tool.dir"`)
}

func TestConfigStore_LoadsHandWrittenTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[tool]\ndir = \"/work/tool\"\nrunner = \"uvx\"\n\n[runs]\nlimit = 9\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/work/tool", store.GetString("tool.dir"))
	assert.Equal(t, "uvx", store.GetString("tool.runner"))
	assert.Equal(t, 9, store.GetInt("runs.limit"))
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("tool.dir")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("tool.dir")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("tool.dir", "/work/tool"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_OverwriteValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("tool.dir", "/old"))
	require.NoError(t, store.Set("tool.dir", "/new"))

	assert.Equal(t, "/new", store.GetString("tool.dir"))
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(tmpDir, "config.toml"),
		[]byte("this is not valid TOML {{{[["),
		0600,
	))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "deep", "path")

	store, err := NewConfigStore(nestedPath)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nestedPath, "config.toml"), store.Path())

	info, err := os.Stat(nestedPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestConfigStore_GetInt_Int64Type(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	// TOML unmarshals integers as int64
	store.mu.Lock()
	store.tree["runs"] = map[string]any{"limit": int64(9999)}
	store.mu.Unlock()

	assert.Equal(t, 9999, store.GetInt("runs.limit"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestConfigStore_Get_TableKeyReportsAbsence(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("tool.dir", "/work/tool"))

	// "tool" names a table, not a value.
	_, ok := store.Get("tool")
	assert.False(t, ok)

	// Paths through a scalar report absence rather than panicking.
	_, ok = store.Get("tool.dir.deeper")
	assert.False(t, ok)
}

func TestConfigStore_Set_DeepKeyCreatesTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("ingest.fab.download_strategy", "cache"))

	assert.Equal(t, "cache", store.GetString("ingest.fab.download_strategy"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[ingest.fab]")
}
