package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/chordmap/config"
	"github.com/jsphweid/chordmap/generator"
	"github.com/jsphweid/chordmap/model"
	"github.com/jsphweid/chordmap/table"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the table over HTTP",
	Long:  `Serves the generated rules as JSON (/rules, /rules/{octave}) and as text (/table)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, serveAddr, cfg)
	},
}

// NewRouter serves cfg's table. Every request runs its own generator.
func NewRouter(cfg *config.Config) http.Handler {
	s := &server{cfg: cfg}
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/rules", s.handleRules).Methods("GET")
	router.HandleFunc("/rules/{octave}", s.handleOctave).Methods("GET")
	router.HandleFunc("/table", s.handleTable).Methods("GET")
	return cors.Default().Handler(router)
}

type server struct {
	cfg *config.Config
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Could not encode response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func toResponse(r model.Rule) model.RuleResponse {
	notes := make([]int, len(r.Outputs))
	for i, n := range r.Outputs {
		notes[i] = int(n)
	}
	return model.RuleResponse{
		Trigger: r.TriggerName,
		Degree:  r.Degree,
		Notes:   notes,
		Names:   r.OutputNames,
	}
}

func (s *server) rules(keep func(model.Rule) bool) (model.RulesResponse, error) {
	g, err := generator.New(s.cfg)
	if err != nil {
		return model.RulesResponse{}, err
	}
	res := model.RulesResponse{NoteRoot: s.cfg.NoteRoot, Rules: make([]model.RuleResponse, 0)}
	// every rule must be generated, the inversions depend on earlier octaves
	for r := range g.Rules() {
		if keep(r) {
			res.Rules = append(res.Rules, toResponse(r))
		}
	}
	res.Count = len(res.Rules)
	return res, nil
}

func (s *server) handleRules(w http.ResponseWriter, r *http.Request) {
	res, err := s.rules(func(model.Rule) bool { return true })
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleOctave(w http.ResponseWriter, r *http.Request) {
	octave, err := strconv.Atoi(mux.Vars(r)["octave"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "octave must be an integer")
		return
	}
	if octave < s.cfg.Octaves.First || octave > s.cfg.Octaves.Last {
		writeError(w, http.StatusNotFound, "octave "+strconv.Itoa(octave)+" is not in the table")
		return
	}

	res, err := s.rules(func(rule model.Rule) bool { return rule.Trigger.Octave() == octave })
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleTable(w http.ResponseWriter, r *http.Request) {
	g, err := generator.New(s.cfg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := table.Render(w, s.cfg.Header, s.cfg.NamePrefix, g.Rules()); err != nil {
		logger.Warn("Could not write table", slog.String("error", err.Error()))
	}
}

func serve(ctx context.Context, addr string, cfg *config.Config) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving table", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
