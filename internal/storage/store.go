package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/helixviz/internal/export"
	"github.com/san-kum/helixviz/internal/helix"
	"github.com/san-kum/helixviz/internal/plotly"
	"github.com/san-kum/helixviz/internal/scene"
)

const (
	MetadataFile = "metadata.json"
	SceneFile    = "scene.json"
	PointsFile   = "points.csv"
	HTMLFile     = "index.html"
)

var ErrNotFound = errors.New("storage: render not found")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// RenderMetadata describes one saved render.
type RenderMetadata struct {
	ID           string    `json:"id"`
	Preset       string    `json:"preset,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	ThetaMax     float64   `json:"theta_max"`
	NumFrames    int       `json:"num_frames"`
	Frames       int       `json:"frames"`
	SliderSteps  int       `json:"slider_steps"`
	FrameDelayMs int64     `json:"frame_delay_ms"`
}

// Save writes the scene, its page and the sampled points under a fresh
// render directory and returns the render id.
func (s *Store) Save(preset string, sc *scene.Scene, c *helix.Curve, page plotly.PageOptions) (string, error) {
	ts := s.now()
	name := preset
	if name == "" {
		name = "render"
	}
	id := fmt.Sprintf("%s_%d", name, ts.UnixNano())
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := RenderMetadata{
		ID:           id,
		Preset:       preset,
		Timestamp:    ts,
		ThetaMax:     c.Params.ThetaMax,
		NumFrames:    c.Params.NumFrames,
		Frames:       len(sc.Frames),
		SliderSteps:  len(sc.SliderSteps()),
		FrameDelayMs: sc.FrameDuration().Milliseconds(),
	}
	if err := writeJSON(filepath.Join(dir, MetadataFile), meta); err != nil {
		return "", err
	}

	sf, err := os.Create(filepath.Join(dir, SceneFile))
	if err != nil {
		return "", err
	}
	if err := plotly.WriteJSON(sf, sc, false); err != nil {
		sf.Close()
		return "", err
	}
	if err := sf.Close(); err != nil {
		return "", err
	}

	if err := export.WritePointsCSVFile(filepath.Join(dir, PointsFile), c); err != nil {
		return "", err
	}

	if err := plotly.WriteHTMLFile(filepath.Join(dir, HTMLFile), sc, page); err != nil {
		return "", err
	}

	return id, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns the saved renders, newest first.
func (s *Store) List() ([]RenderMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RenderMetadata{}, nil
		}
		return nil, err
	}

	renders := make([]RenderMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		renders = append(renders, *meta)
	}

	sort.Slice(renders, func(i, j int) bool {
		return renders[i].Timestamp.After(renders[j].Timestamp)
	})
	return renders, nil
}

func (s *Store) Load(id string) (*RenderMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, MetadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta RenderMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadScene decodes the stored figure JSON back into a scene.
func (s *Store) LoadScene(id string) (*scene.Scene, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, SceneFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	return plotly.UnmarshalFigure(data)
}

// LoadCurve rebuilds the sampled curve from the stored points.
func (s *Store) LoadCurve(id string) (*helix.Curve, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, id, PointsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer f.Close()

	theta, points, err := export.ReadPointsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read points of %s: %w", id, err)
	}
	if len(points) != meta.NumFrames {
		return nil, fmt.Errorf("render %s: expected %d points, found %d", id, meta.NumFrames, len(points))
	}

	return &helix.Curve{
		Params: helix.Params{ThetaMax: meta.ThetaMax, NumFrames: meta.NumFrames},
		Theta:  theta,
		Points: points,
	}, nil
}

func (s *Store) HTMLPath(id string) (string, error) {
	path := filepath.Join(s.baseDir, id, HTMLFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return "", err
	}
	return path, nil
}

// Latest returns the id of the newest render.
func (s *Store) Latest() (string, error) {
	renders, err := s.List()
	if err != nil {
		return "", err
	}
	if len(renders) == 0 {
		return "", ErrNotFound
	}
	return renders[0].ID, nil
}
