package main

import (
	"context"
	"encoding/json"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/safing/portbase/log"
	"github.com/spf13/cobra"

	astar "github.com/pdrpinto/gridastar"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a JSON API that steps through searches on random grids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			log.Infof("astar: serving step API on %s", ln.Addr())
			srv := &http.Server{Handler: newStepServer(cmd.Context()).routes()}
			return srv.Serve(ln)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	return cmd
}

type snapshot struct {
	Step    int          `json:"step"`
	Rows    int          `json:"rows"`
	Cols    int          `json:"cols"`
	Walls   []astar.Cell `json:"walls"`
	Open    []astar.Cell `json:"open,omitempty"`
	Closed  []astar.Cell `json:"closed,omitempty"`
	Current astar.Cell   `json:"current"`
	Start   astar.Cell   `json:"start"`
	Goal    astar.Cell   `json:"goal"`
	Done    bool         `json:"done"`
	Found   bool         `json:"found"`
	Path    []astar.Cell `json:"path,omitempty"`
}

// stepServer holds the search currently being stepped through.
type stepServer struct {
	ctx context.Context

	mu          sync.Mutex
	grid        *astar.Grid
	walls       []astar.Cell
	start, goal astar.Cell
	stepper     *astar.Stepper[astar.Cell]
}

func newStepServer(ctx context.Context) *stepServer {
	return &stepServer{ctx: ctx}
}

func (s *stepServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/init", s.handleInit)
	mux.HandleFunc("/next", s.handleNext)
	return mux
}

// genWalls builds clustered random walls via random walks.
func genWalls(r *rand.Rand, rows, cols, clusters, steps int, density float64, start, goal astar.Cell) [][]int {
	values := make([][]int, rows)
	for i := range values {
		values[i] = make([]int, cols)
	}
	for c := 0; c < clusters; c++ {
		p := astar.Cell{Row: r.Intn(rows), Col: r.Intn(cols)}
		for i := 0; i < steps; i++ {
			if r.Float64() < density && p != start && p != goal {
				values[p.Row][p.Col] = astar.Obstacle
			}
			d := [4]astar.Cell{{Row: 1}, {Row: -1}, {Col: 1}, {Col: -1}}[r.Intn(4)]
			next := astar.Cell{Row: p.Row + d.Row, Col: p.Col + d.Col}
			if next.Row >= 0 && next.Row < rows && next.Col >= 0 && next.Col < cols {
				p = next
			}
		}
	}
	return values
}

func queryInt(r *http.Request, key string, def, least int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && v >= least {
		return v
	}
	return def
}

func (s *stepServer) handleInit(w http.ResponseWriter, r *http.Request) {
	rows := queryInt(r, "rows", 24, 5)
	cols := queryInt(r, "cols", 40, 5)
	clusters := queryInt(r, "clusters", 8, 1)
	steps := queryInt(r, "steps", 200, 1)
	density := 0.25
	if v, err := strconv.ParseFloat(r.URL.Query().Get("density"), 64); err == nil && v >= 0 && v <= 1 {
		density = v
	}

	// random start/goal, kept free of walls by genWalls
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	var start, goal astar.Cell
	for start == goal {
		start = astar.Cell{Row: rnd.Intn(rows), Col: rnd.Intn(cols)}
		goal = astar.Cell{Row: rnd.Intn(rows), Col: rnd.Intn(cols)}
	}
	grid, err := astar.NewGrid(genWalls(rnd, rows, cols, clusters, steps, density, start, goal))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	stepper, err := astar.NewGridStepper(s.ctx, grid, start, goal, astar.WithHeuristic(astar.Manhattan))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	walls := make(map[astar.Cell]bool)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if cell := (astar.Cell{Row: row, Col: col}); !grid.Passable(cell) {
				walls[cell] = true
			}
		}
	}

	s.mu.Lock()
	// stop previous stepper if any
	if s.stepper != nil {
		s.stepper.Close()
	}
	s.grid, s.walls, s.start, s.goal, s.stepper = grid, astar.SortedCells(walls), start, goal, stepper
	s.mu.Unlock()

	log.Debugf("astar: new %dx%d step session from %s to %s", rows, cols, start, goal)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "rows": rows, "cols": cols})
}

func (s *stepServer) handleNext(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stepper == nil {
		http.Error(w, "engine not initialized", http.StatusBadRequest)
		return
	}
	st, err := s.stepper.Step()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resp := snapshot{
		Step:    st.StepIndex,
		Rows:    s.grid.Rows(),
		Cols:    s.grid.Cols(),
		Walls:   s.walls,
		Open:    astar.SortedCells(st.Open),
		Closed:  astar.SortedCells(st.Closed),
		Current: st.Current,
		Start:   s.start,
		Goal:    s.goal,
		Done:    st.Done,
		Found:   st.Found,
		Path:    st.Path,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
