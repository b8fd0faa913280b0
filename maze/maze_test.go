package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlank(t *testing.T) {
	t.Run("fully walled with corner markers", func(t *testing.T) {
		m, err := NewBlank(4, 3)
		require.NoError(t, err)

		assert.Equal(t, 4, m.Width)
		assert.Equal(t, 3, m.Height)
		assert.Equal(t, CellPosition{X: 0, Y: 0}, m.Start)
		assert.Equal(t, CellPosition{X: 3, Y: 2}, m.Goal)
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				assert.True(t, m.Grid[y][x].IsClosed(), "cell (%d,%d)", x, y)
			}
		}
		assert.NoError(t, m.Validate())
	})

	t.Run("rejects bad dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {MaxDimension + 1, 2}} {
			_, err := NewBlank(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimensions, "dims %v", dims)
		}
	})

	t.Run("single cell maze has start on goal", func(t *testing.T) {
		m, err := NewBlank(1, 1)
		require.NoError(t, err)
		assert.Equal(t, m.Start, m.Goal)
	})
}

func TestSetWallMirrors(t *testing.T) {
	cases := []struct {
		name     string
		x, y     int
		side     Side
		nx, ny   int
		opposite Side
	}{
		{"right to left", 1, 1, Right, 2, 1, Left},
		{"left to right", 2, 1, Left, 1, 1, Right},
		{"bottom to top", 1, 1, Bottom, 1, 2, Top},
		{"top to bottom", 1, 2, Top, 1, 1, Bottom},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewBlank(3, 3)
			require.NoError(t, err)

			require.NoError(t, m.SetWall(tc.x, tc.y, tc.side, false))
			assert.False(t, m.Grid[tc.y][tc.x].HasWall(tc.side))
			assert.False(t, m.Grid[tc.ny][tc.nx].HasWall(tc.opposite))
			assert.NoError(t, m.Validate())

			require.NoError(t, m.SetWall(tc.x, tc.y, tc.side, true))
			assert.True(t, m.Grid[tc.y][tc.x].HasWall(tc.side))
			assert.True(t, m.Grid[tc.ny][tc.nx].HasWall(tc.opposite))
		})
	}
}

func TestSetWallEitherSideAgrees(t *testing.T) {
	a, _ := NewBlank(2, 2)
	b, _ := NewBlank(2, 2)

	require.NoError(t, a.SetWall(0, 0, Right, false))
	require.NoError(t, b.SetWall(1, 0, Left, false))
	assert.True(t, a.Equal(b))

	require.NoError(t, a.SetWall(0, 1, Top, false))
	require.NoError(t, b.SetWall(0, 0, Bottom, false))
	assert.True(t, a.Equal(b))
}

func TestSetWallBoundary(t *testing.T) {
	m, _ := NewBlank(2, 2)

	t.Run("outer edge has no mirror", func(t *testing.T) {
		require.NoError(t, m.SetWall(0, 0, Top, false))
		require.NoError(t, m.SetWall(1, 1, Right, false))
		assert.False(t, m.Grid[0][0].Top)
		assert.False(t, m.Grid[1][1].Right)
		assert.NoError(t, m.Validate())
	})

	t.Run("out of range is rejected", func(t *testing.T) {
		before := m.Clone()
		assert.ErrorIs(t, m.SetWall(2, 0, Left, false), ErrOutOfBounds)
		assert.ErrorIs(t, m.SetWall(0, -1, Top, false), ErrOutOfBounds)
		assert.ErrorIs(t, m.SetWall(0, 0, Side(9), false), ErrInvalidSide)
		assert.True(t, before.Equal(m))
	})
}

func TestMoveMarkers(t *testing.T) {
	m, _ := NewBlank(3, 3)

	require.NoError(t, m.MoveStart(1, 2))
	require.NoError(t, m.MoveGoal(0, 1))
	assert.Equal(t, CellPosition{X: 1, Y: 2}, m.Start)
	assert.Equal(t, CellPosition{X: 0, Y: 1}, m.Goal)

	assert.ErrorIs(t, m.MoveStart(3, 0), ErrOutOfBounds)
	assert.ErrorIs(t, m.MoveGoal(0, -1), ErrOutOfBounds)
	assert.Equal(t, CellPosition{X: 1, Y: 2}, m.Start)
	assert.Equal(t, CellPosition{X: 0, Y: 1}, m.Goal)
}

func TestCanMove(t *testing.T) {
	m, _ := NewBlank(2, 1)
	start := CellPosition{X: 0, Y: 0}

	_, ok := m.CanMove(start, Right)
	assert.False(t, ok, "blocked by wall")

	require.NoError(t, m.SetWall(0, 0, Right, false))
	next, ok := m.CanMove(start, Right)
	assert.True(t, ok)
	assert.Equal(t, CellPosition{X: 1, Y: 0}, next)

	require.NoError(t, m.SetWall(0, 0, Left, false))
	_, ok = m.CanMove(start, Left)
	assert.False(t, ok, "open outer edge leads nowhere")
}

func TestValidateDetectsInconsistency(t *testing.T) {
	m, _ := NewBlank(2, 2)
	m.Grid[0][0].Right = false

	assert.ErrorIs(t, m.Validate(), ErrInconsistentWalls)

	m.Grid[0][0].Right = true
	m.Start = CellPosition{X: 5, Y: 5}
	assert.ErrorIs(t, m.Validate(), ErrOutOfBounds)
}

func TestMaskRoundTrip(t *testing.T) {
	for mask := 0; mask <= FullMask; mask++ {
		assert.Equal(t, mask, CellFromMask(mask).Mask())
	}
	assert.Equal(t, Cell{Top: true, Left: true}, CellFromMask(TopBit|LeftBit))
}

func TestCloneIsDeep(t *testing.T) {
	m, _ := NewBlank(2, 2)
	c := m.Clone()

	require.NoError(t, c.SetWall(0, 0, Right, false))
	assert.True(t, m.Grid[0][0].Right)
	assert.False(t, m.Equal(c))
}

func TestString(t *testing.T) {
	m, _ := NewBlank(2, 1)
	require.NoError(t, m.SetWall(0, 0, Right, false))

	expected := "" +
		"+---+---+\n" +
		"| S   G |\n" +
		"+---+---+\n"
	assert.Equal(t, expected, m.String())
}

func TestSideOpposite(t *testing.T) {
	for _, s := range Sides {
		assert.Equal(t, s, s.Opposite().Opposite())
		assert.NotEqual(t, s, s.Opposite())
	}
}

func TestCellAccess(t *testing.T) {
	m, err := NewBlank(2, 1)
	require.NoError(t, err)
	require.NoError(t, m.SetWall(0, 0, Right, false))

	c, err := m.Cell(1, 0)
	require.NoError(t, err)
	assert.False(t, c.HasWall(Left))
	assert.True(t, c.HasWall(Right))

	_, err = m.Cell(2, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = m.Cell(0, -1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}
