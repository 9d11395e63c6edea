package cli

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mvp-joe/cartographer/internal/config"
	"github.com/stretchr/testify/require"
)

const testMappings = `a net/minecraft/util/Direction
	a DOWN
	b UP
	c field_176754_o
	a (I)La; func_82600_a
b net/minecraft/world/World
	a field_72995_K
	a (JLa;D)V func_72838_d
	b (Lb;)V tick
`

const testStatics = "func_82600_a\n"

const testConstructors = "1000 net/minecraft/world/World (La;)V\n"

const testFields = `searge,name,side,desc
field_72995_K,isRemote,2,True if the world is a client world
`

const testMethods = `searge,name,side,desc
func_72838_d,spawnEntity,2,Called when an entity is spawned
`

const testParams = `param,name,side
p_72838_1_,time,2
p_72838_3_,direction,2
`

// setupTestProject writes the raw mapping and overlay files into a temp
// directory and returns a session reading them. Results go to out; load
// summaries and logs are discarded.
func setupTestProject(t *testing.T) (s *session, out *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	cfg := config.Default()
	cfg.Inputs.Mappings = write("config/joined.tsrg", testMappings)
	cfg.Inputs.Statics = write("config/static_methods.txt", testStatics)
	cfg.Inputs.Constructors = write("config/constructors.txt", testConstructors)
	cfg.Overlay.Fields = write("mcp/fields.csv", testFields)
	cfg.Overlay.Methods = write("mcp/methods.csv", testMethods)
	cfg.Overlay.Params = write("mcp/params.csv", testParams)
	cfg.Database.Path = filepath.Join(dir, "srg_database.txt")
	require.NoError(t, config.Validate(cfg))

	out = &bytes.Buffer{}
	return &session{
		cfg:    cfg,
		out:    out,
		status: io.Discard,
		logger: log.New(io.Discard, "", 0),
	}, out
}

// readFile returns the lines of path.
func readFile(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}
