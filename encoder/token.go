// Package encoder converts mazes to and from the shareable text token.
//
// A token is the standard padded base64 of a JSON object
//
//	{"w":W,"h":H,"s":[x,y],"g":[x,y],"walls":[mask,...]}
//
// where walls lists one 4-bit wall mask per cell in row-major order.
package encoder

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/beka-birhanu/mazeshare/maze"
)

var (
	ErrMalformedToken = errors.New("malformed maze token")
)

// payload mirrors the JSON object inside a token.
type payload struct {
	W     *int  `json:"w"`
	H     *int  `json:"h"`
	S     []int `json:"s"`
	G     []int `json:"g"`
	Walls []int `json:"walls"`
}

// Encode packs the maze into a token.
func Encode(m *maze.Maze) string {
	walls := make([]int, 0, m.Width*m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			walls = append(walls, m.Grid[y][x].Mask())
		}
	}

	w, h := m.Width, m.Height
	data, _ := json.Marshal(payload{
		W:     &w,
		H:     &h,
		S:     []int{m.Start.X, m.Start.Y},
		G:     []int{m.Goal.X, m.Goal.Y},
		Walls: walls,
	})

	return base64.StdEncoding.EncodeToString(data)
}

// Decode rebuilds a maze from a token. Whitespace anywhere in the token is
// ignored, so wrapped or indented pastes still load. Any failure wraps
// ErrMalformedToken and no maze is returned.
func Decode(token string) (*maze.Maze, error) {
	token = strings.Join(strings.Fields(token), "")
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	m, err := p.toMaze()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	return m, nil
}

func (p payload) toMaze() (*maze.Maze, error) {
	if p.W == nil || p.H == nil {
		return nil, errors.New("missing dimensions")
	}
	if len(p.S) != 2 {
		return nil, errors.New("start must hold two coordinates")
	}
	if len(p.G) != 2 {
		return nil, errors.New("goal must hold two coordinates")
	}

	// NewBlank validates the dimensions before anything is sized by them.
	m, err := maze.NewBlank(*p.W, *p.H)
	if err != nil {
		return nil, err
	}

	if len(p.Walls) != m.Width*m.Height {
		return nil, fmt.Errorf("expected %d wall masks, got %d", m.Width*m.Height, len(p.Walls))
	}
	for i, mask := range p.Walls {
		if mask < 0 || mask > maze.FullMask {
			return nil, fmt.Errorf("wall mask %d at index %d out of range", mask, i)
		}
		m.Grid[i/m.Width][i%m.Width] = maze.CellFromMask(mask)
	}

	m.Start = maze.CellPosition{X: p.S[0], Y: p.S[1]}
	m.Goal = maze.CellPosition{X: p.G[0], Y: p.G[1]}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}
