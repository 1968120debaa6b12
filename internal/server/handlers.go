package server

import (
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/protoboard/protoboard/pkg/buildinfo"
	"github.com/protoboard/protoboard/pkg/catalog"
	perrors "github.com/protoboard/protoboard/pkg/errors"
	"github.com/protoboard/protoboard/pkg/scene"
	"github.com/protoboard/protoboard/pkg/schematic"
	"github.com/protoboard/protoboard/pkg/workspace"
)

// =============================================================================
// Catalog
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.writeJSON(w, http.StatusOK, s.store.Catalog().FilterBoards(catalog.BoardCategory(q.Get("category")), q.Get("q")))
}

func (s *Server) board(r *http.Request) (catalog.Board, error) {
	id := chi.URLParam(r, "id")
	b, ok := s.store.Catalog().Board(id)
	if !ok {
		return catalog.Board{}, perrors.New(perrors.ErrCodeNotFound, "board %q not found", id)
	}
	return b, nil
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	b, err := s.board(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleFootprint(w http.ResponseWriter, r *http.Request) {
	b, err := s.board(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.write(w, "image/svg+xml", []byte(catalog.FootprintSVG(b)))
}

func (s *Server) handleListModules(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mods := s.store.Catalog().SearchModules(q.Get("q"), catalog.ModuleCategory(q.Get("category")), q.Get("compatible"))
	s.writeJSON(w, http.StatusOK, mods)
}

// =============================================================================
// Workspace
// =============================================================================

func (s *Server) handleGetWorkspace(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleSetBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BoardID string `json:"boardId"`
	}
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := perrors.ValidateID("board", req.BoardID); err != nil {
		s.writeError(w, err)
		return
	}
	if _, ok := s.store.Catalog().Board(req.BoardID); !ok {
		s.writeError(w, perrors.New(perrors.ErrCodeInvalidBoard, "unknown board %q", req.BoardID))
		return
	}
	s.store.SetBoard(req.BoardID)
	s.writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	var req struct {
		View string `json:"view"`
	}
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	v, err := workspace.ParseView(req.View)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.store.SetWorkspaceView(v)
	s.writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleSetSplit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ratio *float64 `json:"ratio"`
	}
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Ratio == nil {
		s.writeError(w, perrors.New(perrors.ErrCodeInvalidInput, "ratio is required"))
		return
	}
	s.store.SetSplitRatio(*req.Ratio)
	s.writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.store.Reset()
	s.writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	st := s.store.Stats()
	s.writeJSON(w, http.StatusOK, struct {
		workspace.Stats
		OverBudget bool `json:"overBudget"`
	}{st, st.OverBudget()})
}

// =============================================================================
// Placed Modules
// =============================================================================

func (s *Server) handleAddModule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ModuleID string `json:"moduleId"`
	}
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := perrors.ValidateID("module", req.ModuleID); err != nil {
		s.writeError(w, err)
		return
	}
	m, ok := s.store.Catalog().Module(req.ModuleID)
	if !ok {
		s.writeError(w, perrors.New(perrors.ErrCodeNotFound, "module %q not found", req.ModuleID))
		return
	}
	s.writeJSON(w, http.StatusCreated, s.store.AddModule(m))
}

func (s *Server) handleRemoveModule(w http.ResponseWriter, r *http.Request) {
	s.store.RemoveModule(chi.URLParam(r, "instanceID"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "instanceID")
	var patch workspace.TransformPatch
	if err := decode(w, r, &patch); err != nil {
		s.writeError(w, err)
		return
	}
	if patch.Empty() {
		s.writeError(w, perrors.New(perrors.ErrCodeInvalidInput, "transform needs a position or rotation"))
		return
	}
	if !finite(patch.Position) || !finite(patch.Rotation) {
		s.writeError(w, perrors.New(perrors.ErrCodeInvalidInput, "transform values must be finite"))
		return
	}
	m, ok := s.store.TransformModule(id, patch)
	if !ok {
		s.writeError(w, perrors.New(perrors.ErrCodeNotFound, "placed module %q not found", id))
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

func finite(a *workspace.AxisPatch) bool {
	if a == nil {
		return true
	}
	for _, v := range []*float64{a.X, a.Y, a.Z} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return false
		}
	}
	return true
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := perrors.ValidateURL(req.URL); err != nil {
		s.writeError(w, err)
		return
	}
	res := s.importer.Import(r.Context(), req.URL, s.store.BoardID(), s.store)
	s.writeJSON(w, http.StatusCreated, res)
}

// =============================================================================
// Views
// =============================================================================

func (s *Server) handleSchematicSVG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var opts []schematic.SVGOption
	if grid, err := strconv.ParseBool(q.Get("grid")); err == nil && !grid {
		opts = append(opts, schematic.WithoutGrid())
	}
	if id := q.Get("highlight"); id != "" {
		opts = append(opts, schematic.WithHighlight(id))
	}
	s.write(w, "image/svg+xml", schematic.RenderSVG(s.store.Snapshot(), s.store.Board(), opts...))
}

// handleSchematicDOT returns the pinned DOT source, or with ?render= the
// graph laid out by neato in that format.
func (s *Server) handleSchematicDOT(w http.ResponseWriter, r *http.Request) {
	dot := schematic.ToDOT(s.store.Snapshot(), s.store.Board())
	render := r.URL.Query().Get("render")
	if render == "" {
		s.write(w, "text/vnd.graphviz", []byte(dot))
		return
	}
	format, err := schematic.ParseFormat(render)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out, err := schematic.RenderGraphviz(r.Context(), dot, format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.write(w, contentTypes[format], out)
}

var contentTypes = map[schematic.Format]string{
	schematic.FormatSVG: "image/svg+xml",
	schematic.FormatPNG: "image/png",
	schematic.FormatDOT: "text/vnd.graphviz",
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, scene.Project(s.store.Snapshot(), s.store.Board()))
}
