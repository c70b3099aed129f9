package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	ai "regress-core/ai"
	"regress-core/db"
	svc "regress-core/svc"
	svcmodels "regress-core/svc/models"
)

// Server exposes the scenario driver over a small JSON API. The engine
// itself has no wire surface; this layer only supplies scenarios and
// reports each check's result.
type Server struct {
	ssvc    *svc.ScenarioService
	kvStore *db.KeyValueStore
}

func validateAPIKey(r *http.Request) error {
	apiKey := r.Header.Get("x-api-key")
	if apiKey == "" {
		return fmt.Errorf("missing API key")
	}

	// Verify the API key format (should be a UUID)
	if _, err := uuid.Parse(apiKey); err != nil {
		return fmt.Errorf("invalid API key format")
	}

	// TODO: Add actual API key validation against the store
	// For now, we'll consider any well-formed UUID as valid

	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleCreateScenario(w http.ResponseWriter, r *http.Request) {
	if err := validateAPIKey(r); err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	var input svcmodels.CreateScenarioInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %v", err))
		return
	}

	log.Printf("CreateScenario called with scenario %q", input.Name)

	output, err := s.ssvc.CreateScenario(&input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, output)
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	if err := validateAPIKey(r); err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	output, err := s.ssvc.ListScenarios(&svcmodels.ListScenariosInput{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleRunScenario(w http.ResponseWriter, r *http.Request) {
	if err := validateAPIKey(r); err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	input := svcmodels.RunScenarioInput{ScenarioID: r.PathValue("id")}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %v", err))
			return
		}
		input.ScenarioID = r.PathValue("id")
	}

	log.Printf("RunScenario called for scenario %s", input.ScenarioID)

	output, err := s.ssvc.RunScenario(&input)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if err := validateAPIKey(r); err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	output, err := s.ssvc.GetScenarioReport(&svcmodels.GetScenarioReportInput{
		ScenarioID: r.PathValue("id"),
	})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, output)
}

func NewServer(kvStore *db.KeyValueStore) *Server {
	if kvStore == nil {
		log.Fatal("KeyValueStore is nil in NewServer")
	}

	narrator := ai.NewNarrativeHelper(os.Getenv("OPENAI_API_KEY"))
	ssvc := svc.NewScenarioService(kvStore, narrator)

	return &Server{
		ssvc:    ssvc,
		kvStore: kvStore,
	}
}

func RunServer(kvStore *db.KeyValueStore, port string) (*http.Server, *sync.WaitGroup, string) {
	svcServer := NewServer(kvStore)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/scenarios", svcServer.handleCreateScenario)
	mux.HandleFunc("GET /v1/scenarios", svcServer.handleListScenarios)
	mux.HandleFunc("POST /v1/scenarios/{id}/run", svcServer.handleRunScenario)
	mux.HandleFunc("GET /v1/scenarios/{id}/report", svcServer.handleGetReport)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:8081", "http://localhost:3001", "http://localhost:3000", "http://localhost"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"x-api-key",
			"Origin",
		},
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
	})

	var listener net.Listener
	var err error

	if port == "" {
		// For testing, use a dynamic port
		listener, err = net.Listen("tcp", ":0")
		if err != nil {
			log.Fatalf("Failed to listen: %v", err)
		}
		port = strconv.Itoa(listener.Addr().(*net.TCPAddr).Port)
	} else {
		listener, err = net.Listen("tcp", ":"+port)
		if err != nil {
			log.Fatalf("Failed to listen on port %s: %v", port, err)
		}
	}

	srv := &http.Server{
		Handler: h2c.NewHandler(corsHandler.Handler(mux), &http2.Server{}),
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("Server is running on port %s", port)
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	return srv, &wg, port
}
