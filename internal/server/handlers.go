package server

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"github.com/davichuder/volatility-explorer/internal/chart"
	"github.com/davichuder/volatility-explorer/internal/recorder"
	"github.com/davichuder/volatility-explorer/internal/session"
)

const dateLayout = "2006-01-02"

type loadRequest struct {
	Ticker string `json:"ticker"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type loadResponse struct {
	Message          string `json:"message"`
	CalculateEnabled bool   `json:"calculate_enabled"`
	Points           int    `json:"points,omitempty"`
}

type calculateRequest struct {
	// The window arrives as whatever the input field held; validation happens
	// in the session so non-numeric values produce a message, not a 400.
	Window interface{} `json:"window"`
}

type calculateResponse struct {
	Message string        `json:"message"`
	Updated bool          `json:"updated"`
	Figure  *chart.Figure `json:"figure,omitempty"`
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req loadRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, loadResponse{Message: "Invalid request body."})
		return
	}

	start, err := time.Parse(dateLayout, req.Start)
	if err != nil {
		render.JSON(w, r, loadResponse{Message: fmt.Sprintf("Invalid start date %q, expected YYYY-MM-DD.", req.Start)})
		return
	}
	end, err := time.Parse(dateLayout, req.End)
	if err != nil {
		render.JSON(w, r, loadResponse{Message: fmt.Sprintf("Invalid end date %q, expected YYYY-MM-DD.", req.End)})
		return
	}

	began := time.Now()
	res := sess.Load(s.fetcher, req.Ticker, start, end)

	if err := s.recorder.RecordLoad(&recorder.LoadEvent{
		Ticker:   req.Ticker,
		Start:    req.Start,
		End:      req.End,
		Source:   s.fetcher.Name(),
		Outcome:  string(res.Outcome),
		Points:   res.Points,
		Duration: time.Since(began),
	}); err != nil {
		log.Printf("[WARN] record load event: %v", err)
	}

	render.JSON(w, r, loadResponse{
		Message:          res.Message,
		CalculateEnabled: res.CalculateEnabled,
		Points:           res.Points,
	})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req calculateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, calculateResponse{Message: "Invalid request body."})
		return
	}

	windowRaw := rawWindow(req.Window)

	began := time.Now()
	res := sess.Calculate(windowRaw)

	if err := s.recorder.RecordCalculate(&recorder.CalculateEvent{
		Ticker:    sess.Ticker(),
		WindowRaw: windowRaw,
		Outcome:   string(res.Outcome),
		Duration:  time.Since(began),
	}); err != nil {
		log.Printf("[WARN] record calculate event: %v", err)
	}

	render.JSON(w, r, calculateResponse{
		Message: res.Message,
		Updated: res.Updated,
		Figure:  res.Figure,
	})
}

// rawWindow normalizes the decoded window field back to the literal the user
// typed: JSON numbers render without a trailing ".0" when whole.
func rawWindow(v interface{}) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		if n == math.Trunc(n) {
			return strconv.FormatInt(int64(n), 10)
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", n)
	}
}
