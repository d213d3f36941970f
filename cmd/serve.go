package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/dosrevive/constants"
	"github.com/jsphweid/dosrevive/db"
	"github.com/jsphweid/dosrevive/dos"
	"github.com/jsphweid/dosrevive/model"
	"github.com/jsphweid/dosrevive/store"
	"github.com/jsphweid/dosrevive/summary"
	"github.com/jsphweid/dosrevive/timing"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

// request bodies are chart text, which stays small
const maxBodyBytes = 4 << 20

var servePort string
var serveLibrary bool

var charts *store.Store
var serveDecoder *dos.Decoder
var library *db.Library

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", constants.GetPort(), "port to listen on")
	serveCmd.Flags().BoolVar(&serveLibrary, "library", false, "serve summaries from the DynamoDB chart library")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the decoder over HTTP",
	Long:  `Serves chart decoding and position conversion over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := LoadServeState(serveLibrary); err != nil {
			return err
		}
		return serve()
	},
}

// LoadServeState prepares the decoder, the chart store and, when asked,
// the library client used by the handlers.
func LoadServeState(withLibrary bool) error {
	d, err := newDecoder()
	if err != nil {
		return err
	}
	serveDecoder = d
	charts = store.New()
	library = nil
	if withLibrary {
		library, err = db.NewLibrary()
		if err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("could not encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

// decodeBody decodes the chart in the request body. ok is false when an
// error response has already been written.
func decodeBody(w http.ResponseWriter, r *http.Request) (*model.Chart, bool) {
	reqBody, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read request body: "+err.Error())
		return nil, false
	}

	var input model.DecodeRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Could not unmarshal request body: "+err.Error())
		return nil, false
	}

	decoder := *serveDecoder
	if input.KeyKind != "" {
		decoder.KeyKind = input.KeyKind
	}
	chart, err := decoder.Decode(input.Text)
	if errors.Is(err, dos.ErrInvalidChart) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return chart, true
}

func HandleDecode(w http.ResponseWriter, r *http.Request) {
	chart, ok := decodeBody(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, model.CreateChartResponse{
		Chart:   chart,
		Summary: summary.Create("", chart),
	})
}

func HandleCreateChart(w http.ResponseWriter, r *http.Request) {
	chart, ok := decodeBody(w, r)
	if !ok {
		return
	}
	id := charts.Add(chart)
	writeJSON(w, http.StatusCreated, model.CreateChartResponse{
		Id:      id,
		Chart:   chart,
		Summary: summary.Create(id, chart),
	})
}

func HandleGetChart(w http.ResponseWriter, r *http.Request) {
	chart, ok := charts.Get(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "No such chart")
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func HandlePosition(w http.ResponseWriter, r *http.Request) {
	chart, ok := charts.Get(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "No such chart")
		return
	}

	query := r.URL.Query()
	page, err := strconv.Atoi(query.Get("page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	position, err := parsePosition(query.Get("position"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p := timing.Describe(chart.Timings, page, position, chart.BlankFrame)
	writeJSON(w, http.StatusOK, model.PositionResponse{
		Page:     page,
		Position: position,
		Frame:    p.Frame,
		Seconds:  p.Seconds,
		Time:     p.Time,
	})
}

func HandleLibrary(w http.ResponseWriter, r *http.Request) {
	if library == nil {
		writeError(w, http.StatusServiceUnavailable, "Chart library is not enabled")
		return
	}
	id := mux.Vars(r)["id"]
	summaries, err := library.GetChartSummaries([]string{id})
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s, ok := summaries[id]
	if !ok {
		writeError(w, http.StatusNotFound, "No such chart in the library")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(logRequests)
	router.HandleFunc("/decode", HandleDecode).Methods("POST")
	router.HandleFunc("/charts", HandleCreateChart).Methods("POST")
	router.HandleFunc("/charts/{id}", HandleGetChart).Methods("GET")
	router.HandleFunc("/charts/{id}/position", HandlePosition).Methods("GET")
	router.HandleFunc("/library/{id}", HandleLibrary).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(router)
}

func serve() error {
	addr := ":" + servePort
	slog.Info("serving", "addr", addr, "library", library != nil)
	return http.ListenAndServe(addr, NewRouter())
}
