package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

// cliEnv is an isolated config and data directory pair.
type cliEnv struct {
	configDir string
	dataDir   string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(envPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), "")
	}
	dir := t.TempDir()
	return cliEnv{
		configDir: filepath.Join(dir, "config"),
		dataDir:   filepath.Join(dir, "data"),
	}
}

type result struct {
	stdout string
	stderr string
	code   int
}

func (e cliEnv) run(t *testing.T, args ...string) result {
	t.Helper()
	var out, errb bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errb)
	full := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	code := run(root, full, &errb)
	return result{stdout: out.String(), stderr: errb.String(), code: code}
}

// mustRun runs args and requires a zero exit code.
func (e cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	r := e.run(t, args...)
	require.Equal(t, exitSuccess, r.code, "args %v: stderr %s", args, r.stderr)
	return r.stdout
}

func decode[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), "output: %s", s)
	return v
}

type hobbyJSON struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type personJSON struct {
	ID      string            `json:"_id"`
	Name    string            `json:"name"`
	Hobbies []json.RawMessage `json:"hobbies"`
}

func TestVersion(t *testing.T) {
	e := newCLIEnv(t)
	out := e.mustRun(t, "version")
	assert.Contains(t, out, "hobbyist v")
	assert.Contains(t, out, modulePath)

	_, err := os.Stat(e.configDir)
	assert.True(t, os.IsNotExist(err), "version must not create the config dir")
}

func TestInit(t *testing.T) {
	e := newCLIEnv(t)
	out := e.mustRun(t, "init")
	assert.Contains(t, out, "hobbyist initialized")

	cfg, err := os.ReadFile(filepath.Join(e.configDir, configFileExt))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "backend: sqlite")
	assert.Contains(t, string(cfg), "data_dir: "+e.dataDir)

	for _, name := range []string{"hobbies.jsonl", "persons.jsonl"} {
		_, err := os.Stat(filepath.Join(e.dataDir, name))
		assert.NoError(t, err, name)
	}

	// Idempotent.
	e.mustRun(t, "init")
}

func TestInit_RecordsBackend(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun(t, "--backend", "memory", "init")

	cfg, err := os.ReadFile(filepath.Join(e.configDir, configFileExt))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "backend: memory")
	assert.Contains(t, string(cfg), "# hobbyist configuration")
}

func TestHobbyLifecycle(t *testing.T) {
	e := newCLIEnv(t)

	created := decode[hobbyJSON](t, e.mustRun(t, "--json", "hobby", "create", "chess"))
	assert.Len(t, created.ID, types.IdentifierLen)
	assert.Equal(t, "chess", created.Name)

	got := decode[hobbyJSON](t, e.mustRun(t, "--json", "hobby", "get", created.ID))
	assert.Equal(t, created, got)

	e.mustRun(t, "hobby", "create", "go")
	list := decode[[]hobbyJSON](t, e.mustRun(t, "--json", "hobby", "list", "name=chess"))
	assert.Equal(t, []hobbyJSON{created}, list)

	all := decode[[]hobbyJSON](t, e.mustRun(t, "--json", "hobby", "list"))
	require.Len(t, all, 2)
	assert.Equal(t, created.ID, all[0].ID)

	updated := decode[hobbyJSON](t, e.mustRun(t, "--json", "hobby", "update", created.ID, "--name", "xiangqi"))
	assert.Equal(t, hobbyJSON{ID: created.ID, Name: "xiangqi"}, updated)

	deleted := decode[hobbyJSON](t, e.mustRun(t, "--json", "hobby", "delete", created.ID))
	assert.Equal(t, updated, deleted)

	r := e.run(t, "hobby", "get", created.ID)
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, types.ErrNotFound.Error())
}

func TestPersonPopulate(t *testing.T) {
	e := newCLIEnv(t)

	h1 := decode[hobbyJSON](t, e.mustRun(t, "--json", "hobby", "create", "chess"))
	h2 := decode[hobbyJSON](t, e.mustRun(t, "--json", "hobby", "create", "go"))

	p := decode[personJSON](t, e.mustRun(t, "--json", "person", "create", "Ada", "--hobby", h1.ID, "--hobby", h2.ID))
	require.Len(t, p.Hobbies, 2)
	assert.JSONEq(t, fmt.Sprintf("%q", h1.ID), string(p.Hobbies[0]))
	assert.JSONEq(t, fmt.Sprintf("%q", h2.ID), string(p.Hobbies[1]))

	e.mustRun(t, "hobby", "delete", h2.ID)

	raw := decode[personJSON](t, e.mustRun(t, "--json", "person", "get", p.ID))
	assert.JSONEq(t, fmt.Sprintf("%q", h2.ID), string(raw.Hobbies[1]), "deleting a hobby leaves the reference")

	populated := decode[personJSON](t, e.mustRun(t, "--json", "person", "get", p.ID, "--populate"))
	require.Len(t, populated.Hobbies, 2)
	assert.JSONEq(t, fmt.Sprintf(`{"_id":%q,"name":"chess"}`, h1.ID), string(populated.Hobbies[0]))
	assert.JSONEq(t, "null", string(populated.Hobbies[1]))

	table := e.mustRun(t, "person", "get", p.ID, "--populate")
	assert.Contains(t, table, "HOBBIES")
	assert.Contains(t, table, "chess,-")
}

func TestPersonListAndUpdate(t *testing.T) {
	e := newCLIEnv(t)
	h1 := decode[hobbyJSON](t, e.mustRun(t, "--json", "hobby", "create", "chess"))
	h2 := decode[hobbyJSON](t, e.mustRun(t, "--json", "hobby", "create", "go"))

	ada := decode[personJSON](t, e.mustRun(t, "--json", "person", "create", "Ada", "--hobby", h1.ID, "--hobby", h2.ID))
	bob := decode[personJSON](t, e.mustRun(t, "--json", "person", "create", "Bob", "--hobby", h2.ID, "--hobby", h1.ID))

	exact := decode[[]personJSON](t, e.mustRun(t, "--json", "person", "list",
		fmt.Sprintf(`hobbies=[%q,%q]`, h1.ID, h2.ID)))
	require.Len(t, exact, 1)
	assert.Equal(t, ada.ID, exact[0].ID)

	subset := decode[[]personJSON](t, e.mustRun(t, "--json", "person", "list", fmt.Sprintf(`hobbies=[%q]`, h1.ID)))
	assert.Empty(t, subset, "hobbies filter is not a containment test")

	renamed := decode[personJSON](t, e.mustRun(t, "--json", "person", "update", bob.ID, "--name", "Robert"))
	assert.Equal(t, "Robert", renamed.Name)
	assert.Len(t, renamed.Hobbies, 2, "untouched hobbies survive a name update")

	cleared := decode[personJSON](t, e.mustRun(t, "--json", "person", "update", bob.ID, "--clear-hobbies"))
	assert.Empty(t, cleared.Hobbies)

	empty := decode[[]personJSON](t, e.mustRun(t, "--json", "person", "list", "hobbies=[]"))
	require.Len(t, empty, 1)
	assert.Equal(t, bob.ID, empty[0].ID)

	e.mustRun(t, "person", "delete", ada.ID)
	r := e.run(t, "person", "delete", ada.ID)
	assert.Equal(t, exitUserError, r.code)
}

func TestUserErrors(t *testing.T) {
	e := newCLIEnv(t)
	valid := types.NewIdentifier().String()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"invalid hobby id", []string{"hobby", "get", "nope"}, "invalid identifier"},
		{"invalid person id", []string{"person", "update", "zz", "--name", "x"}, "invalid identifier"},
		{"invalid hobby reference", []string{"person", "create", "Ada", "--hobby", "123"}, "invalid identifier"},
		{"invalid filter id", []string{"hobby", "list", "_id=xyz"}, "invalid identifier"},
		{"malformed filter", []string{"hobby", "list", "name"}, "expected key=value"},
		{"unknown filter key", []string{"hobby", "list", "hobbies=[]"}, "unknown filter key"},
		{"hobbies filter not json", []string{"person", "list", "hobbies=abc"}, "JSON array"},
		{"conflicting hobby flags", []string{"person", "update", valid, "--hobby", valid, "--clear-hobbies"}, "mutually exclusive"},
		{"missing person", []string{"person", "get", valid}, "record not found"},
		{"missing args", []string{"hobby", "create"}, "accepts 1 arg"},
		{"unknown backend", []string{"--backend", "postgres", "hobby", "list"}, "unknown backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.run(t, tt.args...)
			assert.Equal(t, exitUserError, r.code)
			assert.Contains(t, r.stderr, tt.wantErr)
		})
	}
}

func TestSystemError(t *testing.T) {
	e := newCLIEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(e.dataDir), "file"), []byte("x"), 0o644))
	e.dataDir = filepath.Join(filepath.Dir(e.dataDir), "file")

	r := e.run(t, "hobby", "list")
	assert.Equal(t, exitSysError, r.code)
	assert.Contains(t, r.stderr, types.ErrStorageUnavailable.Error())
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitSuccess},
		{"plain", errors.New("bad flag"), exitUserError},
		{"invalid id", fmt.Errorf("x: %w", types.ErrInvalidIdentifier), exitUserError},
		{"not found", fmt.Errorf("x: %w", types.ErrNotFound), exitUserError},
		{"storage", fmt.Errorf("x: %w", types.ErrStorageUnavailable), exitSysError},
		{"system", fmt.Errorf("wrapped: %w", sysErr(errors.New("disk"))), exitSysError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestDebugLogging(t *testing.T) {
	e := newCLIEnv(t)
	r := e.run(t, "--log-level", "debug", "hobby", "list")
	require.Equal(t, exitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stderr, `"message":"backend attached"`)
	assert.Contains(t, r.stderr, `"message":"backend detached"`)

	r = e.run(t, "hobby", "list")
	assert.NotContains(t, r.stderr, "backend attached")
}

func TestEnvOverridesConfig(t *testing.T) {
	e := newCLIEnv(t)
	e.mustRun(t, "init")
	e.mustRun(t, "hobby", "create", "chess")

	t.Setenv("HOBBYIST_BACKEND", "memory")
	list := decode[[]hobbyJSON](t, e.mustRun(t, "--json", "hobby", "list"))
	assert.Empty(t, list, "memory backend starts empty")
}

func TestTableOutput(t *testing.T) {
	e := newCLIEnv(t)
	h := decode[hobbyJSON](t, e.mustRun(t, "--json", "hobby", "create", "chess"))

	out := e.mustRun(t, "hobby", "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, `^ID\s+NAME$`, lines[0])
	assert.Regexp(t, "^"+h.ID+`\s+chess$`, lines[1])
}

func TestUpdateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileExt)

	require.NoError(t, updateConfigFile(path, map[string]string{cfgKeyBackend: "memory"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "backend: memory\n", string(data))

	require.NoError(t, os.WriteFile(path, []byte(defaultConfigYAML), 0o644))
	require.NoError(t, updateConfigFile(path, map[string]string{
		cfgKeyBackend: "surrealdb",
		cfgKeyDataDir: "/srv/hobbyist",
	}))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: surrealdb")
	assert.Contains(t, string(data), "data_dir: /srv/hobbyist")
	assert.Contains(t, string(data), "namespace: hobbyist")

	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o644))
	assert.Error(t, updateConfigFile(path, map[string]string{cfgKeyBackend: "memory"}))
}

func TestParseFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    map[string]string
		wantErr string
	}{
		{name: "none", want: map[string]string{}},
		{name: "value may contain equals", args: []string{"name=a=b"}, want: map[string]string{"name": "a=b"}},
		{name: "empty value", args: []string{"name="}, want: map[string]string{"name": ""}},
		{name: "duplicate", args: []string{"name=a", "name=b"}, wantErr: "given twice"},
		{name: "unknown", args: []string{"age=3"}, wantErr: "unknown filter key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFilterArgs(tt.args, filterID, filterName)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
