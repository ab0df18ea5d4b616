package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/chazu/polyview/pkg/catalog"
	"github.com/chazu/polyview/pkg/config"
	"github.com/chazu/polyview/pkg/engine"
	"github.com/chazu/polyview/pkg/export"
	"github.com/chazu/polyview/pkg/mesh"
	"github.com/chazu/polyview/pkg/polyhedron"
	"github.com/chazu/polyview/pkg/tessellate"
)

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	log    *logrus.Logger

	mu      sync.Mutex
	conf    config.Config
	palette []string
	state   viewState
}

// viewState is what the viewer currently shows. Every load replaces it.
type viewState struct {
	descs  []*polyhedron.Description
	meshes []*mesh.Mesh
}

// GroupData is one material group of a mesh, with its resolved color.
type GroupData struct {
	Start    int    `json:"start"`
	Count    int    `json:"count"`
	Material int    `json:"material"`
	Face     int    `json:"face"`
	Color    string `json:"color"`
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Name          string      `json:"name"`
	Vertices      []float32   `json:"vertices"`
	Indices       []uint32    `json:"indices"`
	Groups        []GroupData `json:"groups"`
	Edges         []uint32    `json:"edges"` // flat vertex pairs
	FaceNormals   []float32   `json:"faceNormals"`
	Bounds        mesh.Bounds `json:"bounds"`
	VertexCount   int         `json:"vertexCount"`
	TriangleCount int         `json:"triangleCount"`
	EdgeCount     int         `json:"edgeCount"`
	FaceCount     int         `json:"faceCount"`
}

// MessageData is an error or warning for the frontend. Line is set for
// script errors, Face for findings tied to one face (-1 otherwise).
type MessageData struct {
	Line       int    `json:"line"`
	Col        int    `json:"col"`
	Message    string `json:"message"`
	Polyhedron string `json:"polyhedron,omitempty"`
	Face       int    `json:"face"`
}

// ViewResult is the full result returned to the frontend.
type ViewResult struct {
	Meshes   []MeshData    `json:"meshes"`
	Errors   []MessageData `json:"errors"`
	Warnings []MessageData `json:"warnings"`
}

// CatalogEntry describes one polytope the frontend can load by key.
type CatalogEntry struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Family      string `json:"family"`
}

func newViewResult() ViewResult {
	return ViewResult{
		Meshes:   []MeshData{},
		Errors:   []MessageData{},
		Warnings: []MessageData{},
	}
}

func (r *ViewResult) addError(name string, face int, format string, args ...interface{}) {
	r.Errors = append(r.Errors, MessageData{Message: fmt.Sprintf(format, args...), Polyhedron: name, Face: face})
}

func (r *ViewResult) addWarning(name string, face int, message string) {
	r.Warnings = append(r.Warnings, MessageData{Message: message, Polyhedron: name, Face: face})
}

// NewApp creates an App with the default configuration.
func NewApp() *App {
	return newApp(config.Default())
}

func newApp(conf config.Config) *App {
	palette, ok := config.Palette(conf.ColorScheme)
	if !ok {
		palette, _ = config.Palette(config.DefaultScheme)
	}
	return &App{
		engine:  engine.NewEngine(),
		log:     conf.NewLogger(),
		conf:    conf,
		palette: palette,
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.log.WithField("scheme", a.conf.ColorScheme).Info("viewer started")
}

// LoadJSON decodes a description document and shows it.
func (a *App) LoadJSON(text string) ViewResult {
	d, err := polyhedron.Decode(strings.NewReader(text))
	if err != nil {
		return a.fail("decode failed: %v", err)
	}
	return a.show([]*polyhedron.Description{d})
}

// LoadFile reads a description file and shows it.
func (a *App) LoadFile(path string) ViewResult {
	d, err := polyhedron.Load(path)
	if err != nil {
		return a.fail("%v", err)
	}
	return a.show([]*polyhedron.Description{d})
}

// LoadCatalog builds a catalog polytope and shows it.
func (a *App) LoadCatalog(key string) ViewResult {
	d, err := catalog.Build(key)
	if err != nil {
		return a.fail("%v", err)
	}
	return a.show([]*polyhedron.Description{d})
}

// Catalog lists the polytopes LoadCatalog accepts.
func (a *App) Catalog() []CatalogEntry {
	entries := catalog.Entries()
	out := make([]CatalogEntry, len(entries))
	for i, e := range entries {
		out[i] = CatalogEntry{Key: e.Key, DisplayName: e.DisplayName, Family: e.Family}
	}
	return out
}

// Evaluate runs a script and shows every polyhedron it passes to show.
// This is the binding called by the frontend editor.
func (a *App) Evaluate(source string) ViewResult {
	scene, evalErrs, err := a.engine.Evaluate(source)
	if errors.Cause(err) == engine.ErrSuperseded {
		// The newer evaluation owns the view.
		result := newViewResult()
		result.addError("", -1, "%v", err)
		return result
	}
	if err != nil {
		a.log.WithError(err).Error("evaluate failed")
		return a.fail("%v", err)
	}

	if len(evalErrs) > 0 {
		a.clear()
		result := newViewResult()
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, MessageData{Line: e.Line, Col: e.Col, Message: e.Message, Face: -1})
		}
		return result
	}

	return a.show(scene.Polyhedra)
}

// View returns the current state again, colored with the current scheme.
func (a *App) View() ViewResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := newViewResult()
	for i, m := range a.state.meshes {
		result.Meshes = append(result.Meshes, a.meshData(a.state.descs[i], m))
	}
	return result
}

// SetColorScheme selects the palette used for material slots.
func (a *App) SetColorScheme(name string) error {
	palette, ok := config.Palette(name)
	if !ok {
		return errors.Errorf("unknown color scheme %q", name)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.conf.ColorScheme = name
	a.palette = palette
	return nil
}

// ColorSchemes lists the accepted color scheme names.
func (a *App) ColorSchemes() []string {
	return config.SchemeNames()
}

// ExportSTL writes mesh i as binary STL and returns the written path. An
// empty path writes to the configured output directory.
func (a *App) ExportSTL(i int, path string) (string, error) {
	return a.export(i, path, ".stl", func(path string, d *polyhedron.Description, m *mesh.Mesh) error {
		return export.SaveSTL(path, m)
	})
}

// ExportOBJ writes mesh i as Wavefront OBJ and returns the written path.
func (a *App) ExportOBJ(i int, path string) (string, error) {
	return a.export(i, path, ".obj", export.SaveOBJ)
}

// ExportJSON writes the description of mesh i and returns the written path.
func (a *App) ExportJSON(i int, path string) (string, error) {
	return a.export(i, path, ".json", func(path string, d *polyhedron.Description, m *mesh.Mesh) error {
		return polyhedron.Save(path, d)
	})
}

func (a *App) export(i int, path, ext string, save func(string, *polyhedron.Description, *mesh.Mesh) error) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if i < 0 || i >= len(a.state.meshes) {
		return "", errors.Errorf("no mesh at position %d, %d shown", i, len(a.state.meshes))
	}
	d, m := a.state.descs[i], a.state.meshes[i]
	if path == "" {
		path = filepath.Join(a.conf.OutDir, polyhedron.Slug(d.Name, i)+ext)
	}

	if err := save(path, d, m); err != nil {
		a.log.WithError(err).WithField("path", path).Error("export failed")
		return "", err
	}
	a.log.WithFields(logrus.Fields{"polyhedron": d.Name, "path": path}).Info("exported")
	return path, nil
}

// fail clears the view and reports a single error.
func (a *App) fail(format string, args ...interface{}) ViewResult {
	a.clear()
	result := newViewResult()
	result.addError("", -1, format, args...)
	return result
}

func (a *App) clear() {
	a.mu.Lock()
	a.state = viewState{}
	a.mu.Unlock()
}

// show builds every description, replaces the view state with the ones
// that produced geometry, and reports the rest.
func (a *App) show(descs []*polyhedron.Description) ViewResult {
	result := newViewResult()
	var next viewState

	for _, d := range descs {
		name := d.Name
		m := tessellate.Build(d)
		entry := a.log.WithField("polyhedron", name)

		for _, diag := range m.Diagnostics {
			entry.WithFields(logrus.Fields{
				"pass": diag.Pass,
				"face": diag.Face,
				"kind": diag.Kind.String(),
			}).Debug("skipped malformed input")
			result.addWarning(name, diag.Face, diag.String())
		}
		if n := len(m.Diagnostics); n > 0 {
			entry.WithField("count", n).Warn("description has malformed faces")
		}

		errs, warns := d.Validate()
		for _, w := range warns {
			if w.Face < 0 {
				result.addWarning(name, -1, w.String())
			}
		}

		if m.IsEmpty() {
			entry.Warn(mesh.ErrNothingToRender.Error())
			result.addError(name, -1, "%s: nothing to render", d)
			for _, e := range errs {
				result.addError(name, e.Face, "%s", e.Message)
			}
			continue
		}

		next.descs = append(next.descs, d)
		next.meshes = append(next.meshes, m)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = next
	for i, m := range next.meshes {
		result.Meshes = append(result.Meshes, a.meshData(next.descs[i], m))
	}
	return result
}

// meshData converts a built mesh for the frontend. Callers hold a.mu.
func (a *App) meshData(d *polyhedron.Description, m *mesh.Mesh) MeshData {
	groups := make([]GroupData, len(m.Groups))
	for i, g := range m.Groups {
		groups[i] = GroupData{
			Start:    g.Start,
			Count:    g.Count,
			Material: g.Material,
			Face:     g.Face,
			Color:    config.SlotColor(a.palette, g.Material),
		}
	}

	edges := make([]uint32, 0, 2*len(m.Edges))
	for _, e := range m.Edges {
		edges = append(edges, e[0], e[1])
	}

	return MeshData{
		Name:          d.Name,
		Vertices:      nonNil(m.Vertices),
		Indices:       nonNil(m.Indices),
		Groups:        groups,
		Edges:         edges,
		FaceNormals:   nonNil(m.FaceNormals),
		Bounds:        m.Bounds,
		VertexCount:   m.VertexCount(),
		TriangleCount: m.TriangleCount(),
		EdgeCount:     m.EdgeCount(),
		FaceCount:     m.GroupCount(),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
