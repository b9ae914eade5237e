package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"marketbrief/internal/domain"
	"marketbrief/internal/symbols"
	"marketbrief/internal/usecase"
)

// Server exposes the brief pipeline over HTTP.
type Server struct {
	Brief  *usecase.BriefUseCase
	Logger *logrus.Entry
	Router *mux.Router
}

func NewServer(brief *usecase.BriefUseCase, logger *logrus.Entry) *Server {
	s := &Server{
		Brief:  brief,
		Logger: logger,
		Router: mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.Use(s.requestID)
	s.Router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/v1/retrieve", s.handleRetrieve).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/v1/brief", s.handleBrief).Methods(http.MethodPost)
}

func (s *Server) Start(addr string) error {
	s.Logger.Infof("Starting API server on %s", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// Responses

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type RetrieveResponse struct {
	Query      string                   `json:"query"`
	Symbols    []string                 `json:"symbols"`
	MarketData map[string]domain.Series `json:"market_data"`
	Context    []domain.ScoredResult    `json:"context"`
}

type BriefRequest struct {
	Query   string `json:"query"`
	Symbols string `json:"symbols,omitempty"`
}

type BriefResponse struct {
	Query    string                          `json:"query"`
	Symbols  []string                        `json:"symbols"`
	Summary  string                          `json:"summary"`
	Context  []domain.ScoredResult           `json:"context"`
	Exposure []domain.Position               `json:"exposure"`
	Earnings map[string][]domain.EarningsRow `json:"earnings"`
}

// Handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'q' is required"})
		return
	}

	req := usecase.Request{Query: query}
	if raw := r.URL.Query().Get("symbols"); raw != "" {
		req.Symbols = symbols.Parse(raw)
	}

	// Optional result-count override.
	if raw := r.URL.Query().Get("k"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil || k <= 0 {
			jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'k' must be a positive integer"})
			return
		}
		req.TopK = k
	}

	res, err := s.Brief.RetrieveContext(r.Context(), req)
	if err != nil {
		s.Logger.WithError(err).Error("retrieve failed")
		jsonResponse(w, http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}

	jsonResponse(w, http.StatusOK, RetrieveResponse{
		Query:      res.Query,
		Symbols:    res.Symbols,
		MarketData: res.MarketData,
		Context:    res.Context,
	})
}

func (s *Server) handleBrief(w http.ResponseWriter, r *http.Request) {
	var req BriefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}
	if req.Query == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Field 'query' is required"})
		return
	}

	ucReq := usecase.Request{Query: req.Query}
	if req.Symbols != "" {
		ucReq.Symbols = symbols.Parse(req.Symbols)
	}

	res, err := s.Brief.Run(r.Context(), ucReq)
	if err != nil {
		s.Logger.WithError(err).Error("brief failed")
		jsonResponse(w, http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}

	jsonResponse(w, http.StatusOK, BriefResponse{
		Query:    res.Query,
		Symbols:  res.Symbols,
		Summary:  res.Summary,
		Context:  res.Context,
		Exposure: res.Exposure,
		Earnings: res.Earnings,
	})
}

func jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
