package loader

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/nathoo/bossrush/engine/catalog"
	"github.com/nathoo/bossrush/logging"
	lua "github.com/yuin/gopher-lua"
)

//go:embed content/*.lua
var defaultContent embed.FS

// collector accumulates Lua definitions during file execution.
type collector struct {
	game     *lua.LTable
	kits     []rawDef
	items    []rawDef
	talents  []rawDef
	handlers []rawHandler
	clips    []*lua.LTable
}

// Option configures a load.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger sets the logger validation warnings are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// Load reads all .lua files from dir, compiles them into catalog
// definitions, validates them, and returns the immutable Defs.
func Load(dir string, opts ...Option) (*catalog.Defs, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir), opts...)
}

// LoadDefault loads the content compiled into the binary.
func LoadDefault(opts ...Option) (*catalog.Defs, error) {
	sub, err := fs.Sub(defaultContent, "content")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub, opts...)
}

// LoadFS loads every .lua file at the root of fsys. The Lua VM is
// discarded after loading.
func LoadFS(fsys fs.FS, opts ...Option) (*catalog.Defs, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	log := logging.Component(o.log, "loader")

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found")
	}

	// Sort: game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		src, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		if err := runChunk(L, src, path.Base(f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	defs, issues, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling content: %w", err)
	}

	ve := validate(defs, issues)
	for _, w := range ve.Warnings {
		log.Warn("content warning", "detail", w)
	}
	if len(ve.Errors) > 0 {
		return nil, ve
	}

	log.Debug("content loaded",
		"files", len(luaFiles),
		"items", len(defs.Items),
		"talents", len(defs.Talents),
		"kits", len(defs.Kits),
		"handlers", len(defs.Handlers))
	return defs, nil
}

func runChunk(L *lua.LState, src []byte, name string) error {
	fn, err := L.Load(bytes.NewReader(src), name)
	if err != nil {
		return err
	}
	L.Push(fn)
	return L.PCall(0, lua.MultRet, nil)
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "require",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Content must be deterministic.
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("random", lua.LNil)
		tbl.RawSetString("randomseed", lua.LNil)
	}
}
