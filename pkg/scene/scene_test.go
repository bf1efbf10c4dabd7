package scene

// Shared test fixtures: a renderer that hands out monotonically increasing
// symbol ids and a few shape kinds with known static ordering.

type testRenderer struct {
	next SymbolID
}

func newTestRenderer() *testRenderer {
	return &testRenderer{next: 100}
}

func (r *testRenderer) AllocateSymbol() SymbolID {
	id := r.next
	r.next++
	return id
}

type testSystem struct {
	id        ShapeSystemID
	symbol    SymbolID
	instances InstanceIndex
}

func (s *testSystem) SystemID() ShapeSystemID { return s.id }
func (s *testSystem) SymbolID() SymbolID      { return s.symbol }

func (s *testSystem) Instantiate() InstanceIndex {
	idx := s.instances
	s.instances++
	return idx
}

func testSpec(id ShapeSystemID, above, below []ShapeSystemID) SystemSpec {
	return SystemSpec{
		ID:    id,
		Above: above,
		Below: below,
		New: func(r Renderer) ShapeSystem {
			return &testSystem{id: id, symbol: r.AllocateSymbol()}
		},
	}
}

const (
	rectKind    ShapeSystemID = 1
	circleKind  ShapeSystemID = 2
	underKind   ShapeSystemID = 3
	overlayKind ShapeSystemID = 4
)

type rectShape struct{}

func (rectShape) SystemSpec() SystemSpec { return testSpec(rectKind, nil, nil) }

type circleShape struct{}

func (circleShape) SystemSpec() SystemSpec { return testSpec(circleKind, nil, nil) }

// underShape is statically drawn below rectangles.
type underShape struct{}

func (underShape) SystemSpec() SystemSpec {
	return testSpec(underKind, nil, []ShapeSystemID{rectKind})
}

// overlayShape is statically drawn above rectangles.
type overlayShape struct{}

func (overlayShape) SystemSpec() SystemSpec {
	return testSpec(overlayKind, []ShapeSystemID{rectKind}, nil)
}
