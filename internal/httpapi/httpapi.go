// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package httpapi is an optional debug/introspection HTTP surface over a
// registry of finalized op lists, explicitly outside the core (the core
// takes no files or environment, spec §6 "CLI / environment: None").
// Mirrors the shape of the teacher's internal/rest/serve.go, which also
// exposes a gin server in front of an otherwise file/flag-free pipeline.
package httpapi

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/mlnoga/ocio-core/internal/oplist"
	"github.com/mlnoga/ocio-core/internal/processor"
)

// Registry holds finalized OpLists by caller-assigned id, so HTTP
// handlers can look one up without the core ever touching global state
// (spec §5 "Global state: None in the core").
type Registry struct {
	mu   sync.RWMutex
	list map[string]*oplist.OpList
}

func NewRegistry() *Registry {
	return &Registry{list: make(map[string]*oplist.OpList)}
}

// Put registers a finalized OpList under id, replacing any previous
// entry. Returns an error if list is not finalized.
func (r *Registry) Put(id string, list *oplist.OpList) error {
	if !list.Finalized() {
		return errFinalizationRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list[id] = list
	return nil
}

func (r *Registry) get(id string) (*oplist.OpList, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.list[id]
	return l, ok
}

var errFinalizationRequired = &finalizationRequiredError{}

type finalizationRequiredError struct{}

func (e *finalizationRequiredError) Error() string {
	return "op list must be finalized before it can be registered"
}

// applyRequest is the POST /oplist/:id/apply body: a packed RGB(A)
// buffer plus its geometry, matching processor.PackedImageDesc.
type applyRequest struct {
	Data     []float32 `json:"data" binding:"required"`
	Width    int       `json:"width" binding:"required"`
	Height   int       `json:"height" binding:"required"`
	Channels int       `json:"channels" binding:"required"`
}

type applyResponse struct {
	Data []float32 `json:"data"`
}

// Serve registers the debug routes on r. Mirrors the teacher's
// api/v1 grouping in internal/rest/serve.go.
func (reg *Registry) Serve(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	{
		v1.GET("/oplist/:id/cacheid", reg.getCacheID)
		v1.POST("/oplist/:id/apply", reg.postApply)
	}
}

func (reg *Registry) getCacheID(c *gin.Context) {
	l, ok := reg.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such op list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cache_id": l.CacheID()})
}

func (reg *Registry) postApply(c *gin.Context) {
	l, ok := reg.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such op list"})
		return
	}
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := processor.From(l)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	desc := &processor.PackedImageDesc{
		Data:     req.Data,
		Width:    req.Width,
		Height:   req.Height,
		Channels: req.Channels,
	}
	if err := p.ApplyPacked(desc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, applyResponse{Data: desc.Data})
}
