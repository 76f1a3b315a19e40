package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quadviz/quadviz/pkg/cache"
	qerrors "github.com/quadviz/quadviz/pkg/errors"
	"github.com/quadviz/quadviz/pkg/layout"
	"github.com/quadviz/quadviz/pkg/quadtree"
	"github.com/quadviz/quadviz/pkg/render"
	"github.com/quadviz/quadviz/pkg/store"
	"github.com/quadviz/quadviz/pkg/treeio"
)

type createRequest struct {
	Name   string           `json:"name"`
	Region quadtree.Rect    `json:"region"`
	Points []quadtree.Point `json:"points"`
	Grid   *layout.Grid     `json:"grid,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, qerrors.New(qerrors.ErrCodeInvalidInput, "malformed request body"))
		return
	}
	if req.Name == "" {
		req.Name = "layout"
	}
	if err := qerrors.ValidateLayoutName(req.Name); err != nil {
		writeError(w, err)
		return
	}

	grid := layout.DefaultGrid()
	if req.Grid != nil {
		grid = *req.Grid
	}
	if err := grid.Validate(); err != nil {
		writeError(w, qerrors.Wrap(qerrors.ErrCodeInvalidGrid, err, "invalid grid"))
		return
	}

	tree, err := quadtree.New(req.Region)
	if err != nil {
		writeError(w, qerrors.Wrap(qerrors.ErrCodeInvalidTree, err, "invalid region"))
		return
	}
	for i, p := range req.Points {
		if err := tree.Insert(p); err != nil {
			writeError(w, qerrors.Wrap(qerrors.ErrCodeInvalidTree, err, "point %d (%g, %g)", i, p.X, p.Y))
			return
		}
	}

	root := layout.Build(layout.TreeAdapter{Node: tree.Root()}, layout.SizeLabel)
	root.Layout()

	doc := store.NewDocument(req.Name, treeio.FromLayout(root, grid))
	if err := s.store.Put(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info("layout stored", "id", doc.ID, "name", doc.Name, "nodes", len(doc.Layout.Nodes))
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []*store.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	styleName := r.URL.Query().Get("style")
	if styleName == "" {
		styleName = "classic"
	}
	style, err := render.StyleByName(styleName)
	if err != nil {
		writeError(w, err)
		return
	}

	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	layoutJSON, err := json.Marshal(doc.Layout)
	if err != nil {
		writeError(w, err)
		return
	}
	key := s.keyer.ArtifactKey(cache.Hash(layoutJSON), cache.ArtifactKeyOpts{
		Format:  "svg",
		Style:   styleName,
		VizType: "grid",
	})

	svg, hit, err := s.cache.Get(r.Context(), key)
	if err != nil {
		s.logger.Warn("artifact cache read failed", "err", err)
	}
	if err != nil || !hit {
		svg = render.RenderSVG(doc.Layout, render.WithStyle(style))
		if err := s.cache.Set(r.Context(), key, svg, cache.TTLArtifact); err != nil {
			s.logger.Warn("artifact cache write failed", "err", err)
		}
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case isValidationCode(qerrors.GetCode(err)):
		status = http.StatusBadRequest
	}

	msg := qerrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: string(qerrors.GetCode(err))})
}

func isValidationCode(code qerrors.Code) bool {
	switch code {
	case qerrors.ErrCodeInvalidInput,
		qerrors.ErrCodeInvalidFormat,
		qerrors.ErrCodeInvalidStyle,
		qerrors.ErrCodeInvalidVizType,
		qerrors.ErrCodeInvalidGrid,
		qerrors.ErrCodeInvalidTree:
		return true
	}
	return false
}
