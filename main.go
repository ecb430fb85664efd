package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/o0olele/detour-go/builder"
	"github.com/o0olele/detour-go/detour"
	"github.com/o0olele/detour-go/math32"
	"github.com/o0olele/detour-go/query"
)

// 全局实例
var meshEngine = detour.New()
var navQuery *query.NavQuery
var navData *builder.NavMeshData

// 路径查找请求结构
type PathfindRequest struct {
	Start        math32.Vector3 `json:"start"`
	End          math32.Vector3 `json:"end"`
	SearchRadius float32        `json:"search_radius"`
}

// 路径查找响应结构
type PathfindResponse struct {
	Waypoint math32.Vector3 `json:"waypoint"`
	Found    bool           `json:"found"`
	Error    string         `json:"error,omitempty"`
}

// 保存和加载请求结构
type SaveRequest struct {
	Filename string `json:"filename"`
}

type LoadRequest struct {
	Filename string `json:"filename"`
}

// 构建导航查询器
func buildMeshHandler(w http.ResponseWriter, r *http.Request) {
	var req builder.NavMeshData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	q, err := query.NewNavQuery(meshEngine, &req)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create nav query: %v", err), http.StatusBadRequest)
		return
	}

	// 释放旧的查询器
	if navQuery != nil {
		navQuery.Release()
	}
	navQuery = q
	navData = &req

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "built"})
}

// 释放导航查询器
func releaseMeshHandler(w http.ResponseWriter, r *http.Request) {
	if navQuery != nil {
		navQuery.Release()
		navQuery = nil
		navData = nil
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "released"})
}

// 路径查找
func findPathHandler(w http.ResponseWriter, r *http.Request) {
	if navQuery == nil {
		http.Error(w, "Nav query not built", http.StatusBadRequest)
		return
	}

	var req PathfindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.SearchRadius <= 0 {
		http.Error(w, "search_radius must be > 0", http.StatusBadRequest)
		return
	}

	response := PathfindResponse{}

	waypoint, err := navQuery.FindPath(req.Start, req.End, req.SearchRadius)
	if err != nil {
		response.Error = err.Error()
	} else {
		response.Waypoint = waypoint
		response.Found = true
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// 保存导航数据
func saveHandler(w http.ResponseWriter, r *http.Request) {
	if navData == nil {
		http.Error(w, "Nav query not built", http.StatusBadRequest)
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := builder.Save(navData, req.Filename); err != nil {
		http.Error(w, fmt.Sprintf("Failed to save nav mesh data: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "saved"})
}

// 加载导航数据
func loadHandler(w http.ResponseWriter, r *http.Request) {
	var req LoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	data, err := builder.Load(req.Filename)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load nav mesh data: %v", err), http.StatusInternalServerError)
		return
	}

	q, err := query.NewNavQuery(meshEngine, data)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create nav query: %v", err), http.StatusInternalServerError)
		return
	}

	if navQuery != nil {
		navQuery.Release()
	}
	navQuery = q
	navData = data

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "loaded",
		"vertices":  data.VertexCount(),
		"triangles": data.TriangleCount(),
	})
}

// 引擎版本
func versionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"version": meshEngine.Version()})
}

func main() {
	r := mux.NewRouter()

	// API 路由
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/mesh", buildMeshHandler).Methods("POST")
	api.HandleFunc("/mesh", releaseMeshHandler).Methods("DELETE")
	api.HandleFunc("/pathfind", findPathHandler).Methods("POST")
	api.HandleFunc("/save", saveHandler).Methods("POST")
	api.HandleFunc("/load", loadHandler).Methods("POST")
	api.HandleFunc("/version", versionHandler).Methods("GET")

	// 配置CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	handler := c.Handler(r)

	fmt.Println("Server starting on http://localhost:8080")
	log.Fatal(http.ListenAndServe(":8080", handler))
}
