package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/config"
	"git.fiblab.net/sim/transit/request"
	"git.fiblab.net/sim/transit/router"
	"git.fiblab.net/sim/transit/store"
	"github.com/bluele/gcache"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
)

const (
	SERVICE_NAME     = "transit.v1.TransitService"
	QUERY_PROCEDURE  = "/" + SERVICE_NAME + "/Query"
	RELOAD_PROCEDURE = "/" + SERVICE_NAME + "/Reload"
)

var ErrNoNetwork = errors.New("no network loaded")

type QueryRequest struct {
	StatRequests []request.StatRequest `json:"stat_requests"`
}

type QueryResponse struct {
	BatchID   string `json:"batch_id"`
	Responses []any  `json:"responses"`
}

// 用新的网络替换当前网络
// Base非空时从mongo的{db}.{coll}读取构建请求，否则使用文档中的base_requests
type ReloadRequest struct {
	request.Document
	Base string `json:"base,omitempty"`
}

type ReloadResponse struct {
	StopCount int `json:"stop_count"`
	LineCount int `json:"line_count"`
	EdgeCount int `json:"edge_count"`
}

type routeKey struct {
	from, to string
}

// 一次构建的结果，构建后只读
type snapshot struct {
	handler *request.Handler
	// 路径查询结果，随网络一起替换
	routes gcache.Cache
}

func newSnapshot(h *request.Handler, cacheSize int) *snapshot {
	return &snapshot{
		handler: h,
		routes: gcache.New(cacheSize).LRU().LoaderFunc(func(key any) (any, error) {
			k := key.(routeKey)
			return h.Route(k.from, k.to)
		}).Build(),
	}
}

type TransitServer struct {
	cfg config.AppConfig

	// 读多写少：查询持有读锁取快照，Reload持有写锁替换快照
	mu   *xsync.RBMutex
	snap *snapshot

	queries *xsync.Counter
	reloads *xsync.Counter
}

func NewTransitServer(cfg config.AppConfig, h *request.Handler) *TransitServer {
	s := &TransitServer{
		cfg:     cfg,
		mu:      xsync.NewRBMutex(),
		queries: xsync.NewCounter(),
		reloads: xsync.NewCounter(),
	}
	if h != nil {
		s.snap = newSnapshot(h, cfg.RouteCacheSize)
	}
	return s
}

func (s *TransitServer) current() *snapshot {
	t := s.mu.RLock()
	defer s.mu.RUnlock(t)
	return s.snap
}

func (s *TransitServer) swap(snap *snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

// 应答一个查询，Route查询经过缓存
func (s *TransitServer) answer(snap *snapshot, req request.StatRequest) any {
	if req.Type != request.TYPE_ROUTE {
		return snap.handler.Answer(req)
	}
	v, err := snap.routes.Get(routeKey{from: req.From, to: req.To})
	if err != nil {
		if !errors.Is(err, router.ErrNoRoute) && !errors.Is(err, catalogue.ErrStopNotFound) {
			log.Warnf("route request %d: %v", req.ID, err)
		}
		return request.ErrorResponse{RequestID: req.ID, ErrorMessage: request.NOT_FOUND}
	}
	return request.NewRouteResponse(req.ID, v.(*router.Route))
}

func (s *TransitServer) Query(
	ctx context.Context,
	req *connect.Request[QueryRequest],
) (*connect.Response[QueryResponse], error) {
	snap := s.current()
	if snap == nil {
		return nil, connect.NewError(connect.CodeUnavailable, ErrNoNetwork)
	}
	batchID := uuid.NewString()
	logger := log.WithFields(logrus.Fields{"batch": batchID, "count": len(req.Msg.StatRequests)})
	logger.Debug("query")
	start := time.Now()
	out := &QueryResponse{
		BatchID:   batchID,
		Responses: make([]any, 0, len(req.Msg.StatRequests)),
	}
	for _, r := range req.Msg.StatRequests {
		if err := ctx.Err(); err != nil {
			return nil, connect.NewError(connect.CodeCanceled, err)
		}
		out.Responses = append(out.Responses, s.answer(snap, r))
	}
	s.queries.Add(int64(len(req.Msg.StatRequests)))
	logger.Debugf("query done in %v", time.Since(start))
	return connect.NewResponse(out), nil
}

func (s *TransitServer) Reload(
	ctx context.Context,
	req *connect.Request[ReloadRequest],
) (*connect.Response[ReloadResponse], error) {
	in := req.Msg
	doc := in.Document
	if in.Base != "" {
		// 不允许通过接口读取本地文件
		path, err := store.NewCollPath(in.Base)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		reqs, err := loadBaseRequests(ctx, s.cfg, path)
		if err != nil {
			return nil, connect.NewError(connect.CodeUnavailable, err)
		}
		doc.BaseRequests = reqs
	}
	h, err := request.Build(&doc, s.cfg.Routing, s.cfg.Render)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	// 整体替换，不修改旧网络
	s.swap(newSnapshot(h, s.cfg.RouteCacheSize))
	s.reloads.Inc()
	log.Infof("network reloaded: %d stops, %d lines", h.Catalogue().StopCount(), h.Catalogue().LineCount())
	return connect.NewResponse(&ReloadResponse{
		StopCount: h.Catalogue().StopCount(),
		LineCount: h.Catalogue().LineCount(),
		EdgeCount: h.Router().EdgeCount(),
	}), nil
}

func (s *TransitServer) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	snap := s.current()
	if snap == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{
			"status": "error",
			"error":  ErrNoNetwork.Error(),
		})
		return
	}
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"stops":   snap.handler.Catalogue().StopCount(),
		"lines":   snap.handler.Catalogue().LineCount(),
		"queries": s.queries.Value(),
		"reloads": s.reloads.Value(),
	})
}

func (s *TransitServer) mapSVG(w http.ResponseWriter, r *http.Request) {
	snap := s.current()
	if snap == nil {
		http.Error(w, ErrNoNetwork.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(snap.handler.RenderMap()))
}

// 全部HTTP接口：connect服务、/health与/map.svg
func (s *TransitServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Get("/health", s.health)
	r.Get("/map.svg", s.mapSVG)

	codec := connect.WithCodec(jsonCodec{})
	r.Handle(QUERY_PROCEDURE, connect.NewUnaryHandler(QUERY_PROCEDURE, s.Query, codec))
	r.Handle(RELOAD_PROCEDURE, connect.NewUnaryHandler(RELOAD_PROCEDURE, s.Reload, codec))
	return r
}

// connect客户端，供benchmark与测试使用
type TransitClient struct {
	query  *connect.Client[QueryRequest, QueryResponse]
	reload *connect.Client[ReloadRequest, ReloadResponse]
}

func NewTransitClient(httpClient connect.HTTPClient, baseURL string) *TransitClient {
	codec := connect.WithCodec(jsonCodec{})
	return &TransitClient{
		query:  connect.NewClient[QueryRequest, QueryResponse](httpClient, baseURL+QUERY_PROCEDURE, codec),
		reload: connect.NewClient[ReloadRequest, ReloadResponse](httpClient, baseURL+RELOAD_PROCEDURE, codec),
	}
}

func (c *TransitClient) Query(ctx context.Context, reqs []request.StatRequest) (*QueryResponse, error) {
	res, err := c.query.CallUnary(ctx, connect.NewRequest(&QueryRequest{StatRequests: reqs}))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

func (c *TransitClient) Reload(ctx context.Context, req *ReloadRequest) (*ReloadResponse, error) {
	res, err := c.reload.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}
